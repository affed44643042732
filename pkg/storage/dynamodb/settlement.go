package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
)

// SettlePayout atomically moves a payout entry from PENDING to SETTLED.
// A repeated call for the same entry is a no-op that returns false, so the
// settlement worker can safely see the same SQS message more than once.
func (s *Store) SettlePayout(ctx context.Context, entryID string) (bool, error) {
	now, err := formatTime(time.Now().UTC())
	if err != nil {
		return false, err
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.LedgerTableName),
		Key: map[string]types.AttributeValue{
			"entry_id": &types.AttributeValueMemberS{Value: entryID},
		},
		UpdateExpression:    aws.String("SET #status = :settled, settled_at = :now"),
		ConditionExpression: aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":settled": &types.AttributeValueMemberS{Value: string(models.SETTLED)},
			":pending": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":now":     &types.AttributeValueMemberS{Value: now},
		},
	})
	if err == nil {
		return true, nil
	}

	var condCheckFailed *types.ConditionalCheckFailedException
	if !errors.As(err, &condCheckFailed) {
		return false, fmt.Errorf("failed to update payout status to SETTLED: %w", err)
	}

	// Either already settled or not a payout at all.
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.LedgerTableName),
		Key: map[string]types.AttributeValue{
			"entry_id": &types.AttributeValueMemberS{Value: entryID},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	if result.Item == nil {
		return false, fmt.Errorf("payout %s: %w", entryID, storage.ErrNotFound)
	}
	var entry models.LedgerEntry
	if err := attributevalue.UnmarshalMap(result.Item, &entry); err != nil {
		return false, fmt.Errorf("failed to unmarshal ledger entry: %w", err)
	}
	if !entry.IsPayout() {
		return false, fmt.Errorf("payout %s: %w", entryID, storage.ErrNotFound)
	}
	return false, nil
}

// GetStalePayouts returns payouts that have been pending for longer than maxAge.
func (s *Store) GetStalePayouts(ctx context.Context, maxAge time.Duration) ([]models.LedgerEntry, error) {
	cutoff, err := formatTime(time.Now().UTC().Add(-maxAge))
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.LedgerTableName),
		IndexName:              aws.String(pendingPayoutsIndex),
		KeyConditionExpression: aws.String("#status = :status AND #ts < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
			"#ts":     "timestamp",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.PENDING)},
			":cutoff": &types.AttributeValueMemberS{Value: cutoff},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale payouts: %w", err)
	}

	var entries []models.LedgerEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stale payouts: %w", err)
	}

	return entries, nil
}
