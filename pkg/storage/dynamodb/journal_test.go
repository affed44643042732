package dynamodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/chris/polyfunds-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(client DynamoDBAPI) *Store {
	return New(client, "journal", "ledger", "wallets", "connections")
}

func investmentJournal() *models.JournalEntry {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id := uint64(0)
	return &models.JournalEntry{
		Seq:       7,
		Command:   models.Command{Type: models.CommandInvest, Caller: "0xinvestor", BusinessID: 0, TokenAmount: 100, Amount: "100"},
		Event:     models.Event{ID: "evt-7", Seq: 7, Type: models.EventInvestmentMade, BusinessID: &id, Account: "0xinvestor", Timestamp: now},
		Timestamp: now,
		Entries: []models.LedgerEntry{
			{EntryID: "e1", Seq: 7, AccountID: "0xinvestor", Debit: "100", Timestamp: now},
			{EntryID: "e2", Seq: 7, AccountID: "0xowner", Credit: "97", Status: models.PENDING, Timestamp: now},
			{EntryID: "e3", Seq: 7, AccountID: "0xfee", Credit: "3", Status: models.PENDING, Timestamp: now},
		},
	}
}

func canceled(codes ...string) error {
	reasons := make([]types.CancellationReason, len(codes))
	for i, c := range codes {
		reasons[i] = types.CancellationReason{Code: aws.String(c)}
	}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func TestAppend(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		var captured *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.TransactWriteItemsInput) }).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		err := store.Append(context.Background(), investmentJournal())

		require.NoError(t, err)
		mockClient.AssertExpectations(t)

		// journal + 3 ledger entries + 2 payee wallets
		require.Len(t, captured.TransactItems, 6)
		assert.Equal(t, "journal", *captured.TransactItems[0].Put.TableName)
		assert.Equal(t, "attribute_not_exists(seq)", *captured.TransactItems[0].Put.ConditionExpression)
		for _, item := range captured.TransactItems[1:4] {
			assert.Equal(t, "ledger", *item.Put.TableName)
		}

		feeUpdate := captured.TransactItems[4].Update
		require.NotNil(t, feeUpdate)
		assert.Equal(t, "wallets", *feeUpdate.TableName)
		assert.Equal(t, &types.AttributeValueMemberS{Value: "0xfee"}, feeUpdate.Key["address"])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "3"}, feeUpdate.ExpressionAttributeValues[":amount"])
		ownerUpdate := captured.TransactItems[5].Update
		assert.Equal(t, &types.AttributeValueMemberN{Value: "97"}, ownerUpdate.ExpressionAttributeValues[":amount"])

		var stored models.JournalEntry
		require.NoError(t, attributevalue.UnmarshalMap(captured.TransactItems[0].Put.Item, &stored))
		assert.Equal(t, uint64(7), stored.Seq)
		assert.Equal(t, "JOURNAL", stored.GSI1PK)
		assert.Len(t, stored.Entries, 3)
	})

	t.Run("Sequence Conflict", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, canceled("ConditionalCheckFailed", "None", "None", "None", "None", "None")).Once()

		err := store.Append(context.Background(), investmentJournal())

		assert.ErrorIs(t, err, storage.ErrSequenceConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Frozen Payee", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, canceled("None", "None", "None", "None", "None", "ConditionalCheckFailed")).Once()

		err := store.Append(context.Background(), investmentJournal())

		assert.ErrorIs(t, err, storage.ErrPayeeRejected)
		assert.Contains(t, err.Error(), "0xowner")
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).
			Return(nil, errors.New("service unavailable")).Once()

		err := store.Append(context.Background(), investmentJournal())

		assert.Error(t, err)
		assert.NotErrorIs(t, err, storage.ErrSequenceConflict)
		assert.Contains(t, err.Error(), "failed to execute journal transaction")
	})
}

func TestListJournal(t *testing.T) {
	entry := investmentJournal()
	item, err := attributevalue.MarshalMap(entry)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
			after := in.ExpressionAttributeValues[":after"].(*types.AttributeValueMemberN)
			return *in.IndexName == "gsi1pk-seq-index" && after.Value == "6" && *in.ScanIndexForward
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil).Once()

		journal, err := store.ListJournal(context.Background(), 6, 100)

		require.NoError(t, err)
		require.Len(t, journal, 1)
		assert.Equal(t, entry.Command, journal[0].Command)
		assert.Equal(t, uint64(0), *journal[0].Event.BusinessID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Follows Pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		lastKey := map[string]types.AttributeValue{"seq": &types.AttributeValueMemberN{Value: "7"}}
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey == nil })).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}, LastEvaluatedKey: lastKey}, nil).Once()
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool { return in.ExclusiveStartKey != nil })).
			Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil).Once()

		journal, err := store.ListJournal(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Len(t, journal, 2)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		_, err := store.ListJournal(context.Background(), 0, 10)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query journal")
	})
}
