package entities

import "time"

// Match is one signing race, from creation until a winner is declared.
// PlayerBId and Sentence stay empty until a second player joins; WinnerId
// and EndTime stay empty until completion. Once IsActive flips to false the
// record is frozen history.
type Match struct {
	Id         string     `dynamodbav:"Id"`
	PlayerAId  string     `dynamodbav:"PlayerAId"`
	PlayerBId  string     `dynamodbav:"PlayerBId,omitempty"`
	WinnerId   string     `dynamodbav:"WinnerId,omitempty"`
	Sentence   string     `dynamodbav:"Sentence,omitempty"`
	Difficulty string     `dynamodbav:"Difficulty"`
	StartTime  time.Time  `dynamodbav:"StartTime"`
	EndTime    *time.Time `dynamodbav:"EndTime,omitempty"`
	IsActive   bool       `dynamodbav:"IsActive"`
}

// HasPlayer reports whether userId occupies either player slot.
func (m Match) HasPlayer(userId string) bool {
	return m.PlayerAId == userId || m.PlayerBId == userId
}
