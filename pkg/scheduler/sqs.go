package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/polyfunds-ledger/pkg/models"
)

// SQSAPI is the subset of the SQS client used by the scheduler.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// SchedulePayout sends the payout to an SQS queue for settlement.
func (s *SQSScheduler) SchedulePayout(ctx context.Context, entry models.LedgerEntry) error {
	body, err := json.Marshal(NewPayoutMessage(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal payout for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// NoOpScheduler drops payouts. Settlement is then driven by reconciliation only.
type NoOpScheduler struct{}

// SchedulePayout does nothing.
func (NoOpScheduler) SchedulePayout(ctx context.Context, entry models.LedgerEntry) error {
	return nil
}
