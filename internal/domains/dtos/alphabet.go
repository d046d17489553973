package dtos

import "github.com/sign-vn/slsign/internal/domains/entities"

type AlphabetResponse struct {
	Letter               string `json:"letter"`
	ImageUrl             string `json:"imageUrl,omitempty"`
	VideoUrl             string `json:"videoUrl,omitempty"`
	HandshapeDescription string `json:"handshapeDescription,omitempty"`
	ExampleWord          string `json:"exampleWord,omitempty"`
	WordVideoUrl         string `json:"wordVideoUrl,omitempty"`
}

func AlphabetResponseFromEntity(entry entities.AlphabetEntry) AlphabetResponse {
	return AlphabetResponse{
		Letter:               entry.Letter,
		ImageUrl:             entry.ImageUrl,
		VideoUrl:             entry.VideoUrl,
		HandshapeDescription: entry.HandshapeDescription,
		ExampleWord:          entry.ExampleWord,
		WordVideoUrl:         entry.WordVideoUrl,
	}
}

func AlphabetListResponseFromEntities(entries []entities.AlphabetEntry) []AlphabetResponse {
	responses := make([]AlphabetResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, AlphabetResponseFromEntity(entry))
	}
	return responses
}
