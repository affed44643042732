package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/polyfunds-ledger/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                        DynamoDBAPI
	JournalTableName              string
	LedgerTableName               string
	WalletsTableName              string
	WebsocketConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, journalTable, ledgerTable, walletsTable, connectionsTable string) *Store {
	return &Store{
		Client:                        client,
		JournalTableName:              journalTable,
		LedgerTableName:               ledgerTable,
		WalletsTableName:              walletsTable,
		WebsocketConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	journalGSI1PK       = "JOURNAL"
	ledgerGSI1PK        = "LEDGER_ENTRIES"
	journalGSI          = "gsi1pk-seq-index"
	ledgerGSI           = "gsi1pk-timestamp-index"
	ledgerAccountIndex  = "account_id-timestamp-index"
	pendingPayoutsIndex = "status-timestamp-index"
)
