package dtos

import (
	"time"

	"github.com/sign-vn/slsign/internal/domains/entities"
)

type CreateMatchRequest struct {
	Difficulty string `json:"difficulty"`
}

type JoinMatchRequest struct {
	MatchId string `json:"matchId"`
}

type GameResultRequest struct {
	MatchId string `json:"matchId"`
	UserId  string `json:"userId"`
}

type MatchResponse struct {
	Id              string     `json:"id"`
	PlayerAUsername string     `json:"playerAUsername"`
	PlayerBUsername string     `json:"playerBUsername,omitempty"`
	WinnerUsername  string     `json:"winnerUsername,omitempty"`
	Sentence        string     `json:"sentence,omitempty"`
	Difficulty      string     `json:"difficulty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	IsActive        bool       `json:"isActive"`
}

func MatchResponseFromEntity(match entities.Match, playerAName, playerBName, winnerName string) MatchResponse {
	if playerAName == "" {
		playerAName = "Unknown"
	}
	return MatchResponse{
		Id:              match.Id,
		PlayerAUsername: playerAName,
		PlayerBUsername: playerBName,
		WinnerUsername:  winnerName,
		Sentence:        match.Sentence,
		Difficulty:      match.Difficulty,
		StartTime:       match.StartTime,
		EndTime:         match.EndTime,
		IsActive:        match.IsActive,
	}
}
