package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/polyfunds-ledger/pkg/config"
	"github.com/chris/polyfunds-ledger/pkg/handlers/websockets"
	dydbstore "github.com/chris/polyfunds-ledger/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.Require("DYNAMODB_CONNECTIONS_TABLE_NAME"); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.JournalTable, cfg.LedgerTable, cfg.WalletsTable, cfg.ConnectionsTable)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	handler := websockets.NewHandler(store, nil, logger)
	lambda.Start(handler.Route)
}
