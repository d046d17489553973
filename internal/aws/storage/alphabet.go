package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sign-vn/slsign/internal/domains/entities"
)

var ErrLetterNotFound = fmt.Errorf("letter not found")

func (client *Client) GetLetter(ctx context.Context, letter string) (entities.AlphabetEntry, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.AlphabetTableName,
		Key: map[string]types.AttributeValue{
			"Letter": &types.AttributeValueMemberS{
				Value: letter,
			},
		},
	})
	if err != nil {
		return entities.AlphabetEntry{}, err
	}
	if output.Item == nil {
		return entities.AlphabetEntry{}, ErrLetterNotFound
	}
	var entry entities.AlphabetEntry
	if err := attributevalue.UnmarshalMap(output.Item, &entry); err != nil {
		return entities.AlphabetEntry{}, err
	}
	return entry, nil
}

func (client *Client) FetchAlphabet(ctx context.Context) ([]entities.AlphabetEntry, error) {
	output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName: client.cfg.AlphabetTableName,
	})
	if err != nil {
		return nil, err
	}
	var entries []entities.AlphabetEntry
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &entries); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Letter < entries[j].Letter
	})
	return entries, nil
}

func (client *Client) SearchAlphabet(ctx context.Context, term string) ([]entities.AlphabetEntry, error) {
	output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName: client.cfg.AlphabetTableName,
		FilterExpression: aws.String(
			"contains(#letter, :term) OR contains(HandshapeDescription, :term) OR contains(ExampleWord, :term)",
		),
		ExpressionAttributeNames: map[string]string{
			"#letter": "Letter",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":term": &types.AttributeValueMemberS{Value: term},
		},
	})
	if err != nil {
		return nil, err
	}
	var entries []entities.AlphabetEntry
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &entries); err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Letter < entries[j].Letter
	})
	return entries, nil
}

// SeedAlphabet populates the reference table on first start. Entries that
// already exist are left untouched.
func (client *Client) SeedAlphabet(ctx context.Context, entries []entities.AlphabetEntry) error {
	for _, entry := range entries {
		av, err := attributevalue.MarshalMap(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal alphabet entry: %w", err)
		}
		_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           client.cfg.AlphabetTableName,
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#letter)"),
			ExpressionAttributeNames: map[string]string{
				"#letter": "Letter",
			},
		})
		if err != nil {
			var conditionFailed *types.ConditionalCheckFailedException
			if errors.As(err, &conditionFailed) {
				continue
			}
			return fmt.Errorf("failed to seed letter %s: %w", entry.Letter, err)
		}
	}
	return nil
}
