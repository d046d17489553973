package entities

// AlphabetEntry is one letter of the ASL reference table.
type AlphabetEntry struct {
	Letter               string `dynamodbav:"Letter"`
	ImageUrl             string `dynamodbav:"ImageUrl,omitempty"`
	VideoUrl             string `dynamodbav:"VideoUrl,omitempty"`
	HandshapeDescription string `dynamodbav:"HandshapeDescription,omitempty"`
	ExampleWord          string `dynamodbav:"ExampleWord,omitempty"`
	WordVideoUrl         string `dynamodbav:"WordVideoUrl,omitempty"`
}
