package dtos

import (
	"time"

	"github.com/sign-vn/slsign/internal/domains/entities"
)

type UserResponse struct {
	Id          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	DateJoined  time.Time `json:"dateJoined"`
	GamesPlayed int       `json:"gamesPlayed"`
	GamesWon    int       `json:"gamesWon"`
}

// UserResponseFromEntity builds the profile response. Email is only
// included when users request their own record.
func UserResponseFromEntity(user entities.User, full bool) UserResponse {
	resp := UserResponse{
		Id:          user.Id,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateJoined:  user.DateJoined,
		GamesPlayed: user.GamesPlayed,
		GamesWon:    user.GamesWon,
	}
	if full {
		resp.Email = user.Email
	}
	return resp
}
