package entities

import "time"

type User struct {
	Id          string    `dynamodbav:"Id"`
	Username    string    `dynamodbav:"Username"`
	Email       string    `dynamodbav:"Email,omitempty"`
	FirstName   string    `dynamodbav:"FirstName,omitempty"`
	LastName    string    `dynamodbav:"LastName,omitempty"`
	DateJoined  time.Time `dynamodbav:"DateJoined"`
	GamesPlayed int       `dynamodbav:"GamesPlayed"`
	GamesWon    int       `dynamodbav:"GamesWon"`
}
