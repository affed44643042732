package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/polyfunds-ledger/pkg/config"
	"github.com/chris/polyfunds-ledger/pkg/scheduler"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	dydbstore "github.com/chris/polyfunds-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.SettlementStore

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Require("DYNAMODB_LEDGER_TABLE_NAME"); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.JournalTable, cfg.LedgerTable, cfg.WalletsTable, cfg.ConnectionsTable)
}

// HandleRequest processes SQS payout messages and marks the payouts settled.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var payout scheduler.PayoutMessage
		if err := json.Unmarshal([]byte(message.Body), &payout); err != nil {
			log.Printf("ERROR: failed to unmarshal payout from SQS message %s: %v", message.MessageId, err)
			return err
		}

		settled, err := store.SettlePayout(ctx, payout.EntryID)
		if errors.Is(err, storage.ErrNotFound) {
			// Nothing to retry; the entry is not a payout of this ledger.
			log.Printf("ERROR: payout %s not found, dropping message %s", payout.EntryID, message.MessageId)
			continue
		}
		if err != nil {
			log.Printf("ERROR: failed to settle payout %s: %v", payout.EntryID, err)
			return err
		}

		if settled {
			log.Printf("Settled payout %s of %s wei to %s", payout.EntryID, payout.Amount, payout.AccountID)
		} else {
			log.Printf("Payout %s was already settled", payout.EntryID)
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
