package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
)

// GetWallet retrieves the payout wallet of an address.
// received is stored as a DynamoDB number so it can be incremented with ADD,
// which is why the item is decoded by hand.
func (s *Store) GetWallet(ctx context.Context, address string) (*models.Wallet, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.WalletsTableName),
		Key:       map[string]types.AttributeValue{"address": &types.AttributeValueMemberS{Value: address}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("wallet %s: %w", address, storage.ErrNotFound)
	}

	return decodeWallet(result.Item)
}

func decodeWallet(item map[string]types.AttributeValue) (*models.Wallet, error) {
	w := &models.Wallet{Received: "0"}
	if v, ok := item["address"].(*types.AttributeValueMemberS); ok {
		w.Address = v.Value
	}
	if v, ok := item["received"].(*types.AttributeValueMemberN); ok {
		w.Received = v.Value
	}
	if v, ok := item["frozen"].(*types.AttributeValueMemberBOOL); ok {
		w.Frozen = v.Value
	}
	if v, ok := item["version"].(*types.AttributeValueMemberN); ok {
		version, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse wallet version: %w", err)
		}
		w.Version = version
	}
	if v, ok := item["updated_at"].(*types.AttributeValueMemberS); ok {
		if err := w.UpdatedAt.UnmarshalText([]byte(v.Value)); err != nil {
			return nil, fmt.Errorf("failed to parse wallet updated_at: %w", err)
		}
	}
	return w, nil
}

// SetWalletFrozen blocks or unblocks payouts to an address, creating the wallet if needed.
func (s *Store) SetWalletFrozen(ctx context.Context, address string, frozen bool) error {
	now, err := formatTime(time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.WalletsTableName),
		Key:              map[string]types.AttributeValue{"address": &types.AttributeValueMemberS{Value: address}},
		UpdateExpression: aws.String("SET frozen = :frozen, updated_at = :now, received = if_not_exists(received, :zero) ADD version :inc"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":frozen": &types.AttributeValueMemberBOOL{Value: frozen},
			":now":    &types.AttributeValueMemberS{Value: now},
			":zero":   &types.AttributeValueMemberN{Value: "0"},
			":inc":    &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update wallet frozen flag: %w", err)
	}

	return nil
}
