package storage

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type Config struct {
	MatchesTableName  *string
	UsersTableName    *string
	AlphabetTableName *string
}

func DefaultConfig() Config {
	return Config{
		MatchesTableName:  aws.String("Matches"),
		UsersTableName:    aws.String("Users"),
		AlphabetTableName: aws.String("AslAlphabet"),
	}
}

type Client struct {
	dynamodb *dynamodb.Client
	cfg      Config
}

func NewClient(dynamoClient *dynamodb.Client, cfg Config) *Client {
	return &Client{
		dynamodb: dynamoClient,
		cfg:      cfg,
	}
}
