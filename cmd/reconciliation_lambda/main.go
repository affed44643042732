package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/polyfunds-ledger/pkg/config"
	"github.com/chris/polyfunds-ledger/pkg/ledger"
	"github.com/chris/polyfunds-ledger/pkg/scheduler"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	dydbstore "github.com/chris/polyfunds-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage
var sqsScheduler scheduler.Scheduler
var ledgerCfg ledger.Config

const stalePayoutThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Require("SQS_QUEUE_URL", "DYNAMODB_JOURNAL_TABLE_NAME", "DYNAMODB_LEDGER_TABLE_NAME"); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	ledgerCfg, err = cfg.LedgerConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	sqsScheduler = scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	store = dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.JournalTable, cfg.LedgerTable, cfg.WalletsTable, cfg.ConnectionsTable)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	if err := requeueStalePayouts(ctx); err != nil {
		return err
	}
	return verifyJournal(ctx)
}

func requeueStalePayouts(ctx context.Context) error {
	log.Println("Starting reconciliation process for stale payouts...")

	stale, err := store.GetStalePayouts(ctx, stalePayoutThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stale payouts: %v", err)
		return err
	}

	if len(stale) == 0 {
		log.Println("No stale payouts found.")
		return nil
	}

	log.Printf("Found %d stale payouts. Re-enqueuing them...", len(stale))

	for _, entry := range stale {
		if err := sqsScheduler.SchedulePayout(ctx, entry); err != nil {
			log.Printf("ERROR: failed to re-enqueue payout %s: %v", entry.EntryID, err)
			// Continue to the next payout, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully re-enqueued payout %s", entry.EntryID)
	}

	return nil
}

// verifyJournal replays the whole journal into a scratch engine and reports
// any broken ledger invariant.
func verifyJournal(ctx context.Context) error {
	engine, err := ledger.New(ledgerCfg, store)
	if err != nil {
		return err
	}
	if err := engine.Restore(ctx); err != nil {
		log.Printf("ERROR: failed to replay journal: %v", err)
		return err
	}

	violations := engine.CheckInvariants(ctx)
	for _, v := range violations {
		log.Printf("CRITICAL: ledger invariant violated at seq %d: %s", engine.Seq(), v)
	}
	if len(violations) == 0 {
		log.Printf("Journal replayed to seq %d, all invariants hold.", engine.Seq())
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
