package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sign-vn/slsign/internal/domains/entities"
	"github.com/sign-vn/slsign/internal/game"
)

func (client *Client) GetMatch(ctx context.Context, matchId string) (entities.Match, error) {
	output, err := client.dynamodb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: client.cfg.MatchesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{
				Value: matchId,
			},
		},
	})
	if err != nil {
		return entities.Match{}, err
	}
	if output.Item == nil {
		return entities.Match{}, game.ErrMatchNotFound
	}
	var match entities.Match
	if err := attributevalue.UnmarshalMap(output.Item, &match); err != nil {
		return entities.Match{}, err
	}
	return match, nil
}

func (client *Client) PutMatch(ctx context.Context, match entities.Match) error {
	av, err := attributevalue.MarshalMap(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}
	_, err = client.dynamodb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: client.cfg.MatchesTableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put match: %w", err)
	}
	return nil
}

// AssignPlayerB claims the second player slot and stores the sentence in one
// conditional update. The condition is the compare-and-swap that keeps two
// concurrent joins from both succeeding.
func (client *Client) AssignPlayerB(ctx context.Context, matchId, playerBId, sentence string) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.MatchesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression:    aws.String("SET PlayerBId = :playerBId, Sentence = :sentence"),
		ConditionExpression: aws.String("attribute_exists(Id) AND attribute_not_exists(PlayerBId) AND IsActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":playerBId": &types.AttributeValueMemberS{Value: playerBId},
			":sentence":  &types.AttributeValueMemberS{Value: sentence},
			":active":    &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return game.ErrMatchFull
		}
		return err
	}
	return nil
}

// SetWinner completes the match. The IsActive condition makes a second
// completion attempt lose the race instead of overwriting the winner.
func (client *Client) SetWinner(ctx context.Context, matchId, winnerId string, endTime time.Time) error {
	_, err := client.dynamodb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: client.cfg.MatchesTableName,
		Key: map[string]types.AttributeValue{
			"Id": &types.AttributeValueMemberS{Value: matchId},
		},
		UpdateExpression:    aws.String("SET WinnerId = :winnerId, EndTime = :endTime, IsActive = :inactive"),
		ConditionExpression: aws.String("attribute_exists(Id) AND IsActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":winnerId": &types.AttributeValueMemberS{Value: winnerId},
			":endTime":  &types.AttributeValueMemberS{Value: endTime.Format(time.RFC3339Nano)},
			":inactive": &types.AttributeValueMemberBOOL{Value: false},
			":active":   &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return game.ErrMatchNotActive
		}
		return err
	}
	return nil
}

func (client *Client) FetchActiveMatches(ctx context.Context) ([]entities.Match, error) {
	output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName:        client.cfg.MatchesTableName,
		FilterExpression: aws.String("IsActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
	})
	if err != nil {
		return nil, err
	}
	var matches []entities.Match
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (client *Client) FetchUserMatches(ctx context.Context, userId string) ([]entities.Match, error) {
	output, err := client.dynamodb.Scan(ctx, &dynamodb.ScanInput{
		TableName:        client.cfg.MatchesTableName,
		FilterExpression: aws.String("PlayerAId = :userId OR PlayerBId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userId},
		},
	})
	if err != nil {
		return nil, err
	}
	var matches []entities.Match
	if err := attributevalue.UnmarshalListOfMaps(output.Items, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
