package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/chris/polyfunds-ledger/pkg/storage"
	"github.com/holiman/uint256"
)

// Append writes the journal record, its ledger entries and one wallet credit
// per payee in a single TransactWriteItems call.
func (s *Store) Append(ctx context.Context, entry *models.JournalEntry) error {
	entry.GSI1PK = journalGSI1PK
	journalAV, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: the journal record. The sequence number doubles as the writer lock.
			Put: &types.Put{
				TableName:           aws.String(s.JournalTableName),
				Item:                journalAV,
				ConditionExpression: aws.String("attribute_not_exists(seq)"),
			},
		},
	}

	// Operation 2: one ledger entry per line.
	for _, le := range entry.Entries {
		le.GSI1PK = ledgerGSI1PK
		entryAV, err := attributevalue.MarshalMap(le)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger entry: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.LedgerTableName),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}
	walletsFrom := len(items)

	// Operation 3: credit each payee wallet unless it is frozen.
	credits, payees, err := payoutTotals(entry.Entries)
	if err != nil {
		return err
	}
	nowAV, err := attributevalue.Marshal(entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}
	for _, payee := range payees {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.WalletsTableName),
				Key:                 map[string]types.AttributeValue{"address": &types.AttributeValueMemberS{Value: payee}},
				UpdateExpression:    aws.String("ADD received :amount, version :inc SET updated_at = :now"),
				ConditionExpression: aws.String("attribute_not_exists(frozen) OR frozen = :false"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":amount": &types.AttributeValueMemberN{Value: credits[payee].Dec()},
					":inc":    &types.AttributeValueMemberN{Value: "1"},
					":now":    nowAV,
					":false":  &types.AttributeValueMemberBOOL{Value: false},
				},
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for i, reason := range canceled.CancellationReasons {
				if aws.ToString(reason.Code) != "ConditionalCheckFailed" {
					continue
				}
				switch {
				case i == 0:
					return storage.ErrSequenceConflict
				case i >= walletsFrom:
					return fmt.Errorf("wallet %s: %w", payees[i-walletsFrom], storage.ErrPayeeRejected)
				}
			}
		}
		return fmt.Errorf("failed to execute journal transaction: %w", err)
	}

	return nil
}

// payoutTotals sums payout credits per payee, returning payees in a stable order.
func payoutTotals(entries []models.LedgerEntry) (map[string]*uint256.Int, []string, error) {
	credits := make(map[string]*uint256.Int)
	for _, le := range entries {
		if !le.IsPayout() {
			continue
		}
		amount, err := uint256.FromDecimal(le.Credit)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse credit of entry %s: %w", le.EntryID, err)
		}
		if sum, ok := credits[le.AccountID]; ok {
			sum.Add(sum, amount)
		} else {
			credits[le.AccountID] = amount
		}
	}
	payees := make([]string, 0, len(credits))
	for payee := range credits {
		payees = append(payees, payee)
	}
	sort.Strings(payees)
	return credits, payees, nil
}

// ListJournal returns up to limit journal records after afterSeq in sequence order.
func (s *Store) ListJournal(ctx context.Context, afterSeq uint64, limit int32) ([]models.JournalEntry, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.JournalTableName),
		IndexName:              aws.String(journalGSI),
		KeyConditionExpression: aws.String("gsi1pk = :pk AND seq > :after"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":    &types.AttributeValueMemberS{Value: journalGSI1PK},
			":after": &types.AttributeValueMemberN{Value: strconv.FormatUint(afterSeq, 10)},
		},
		ScanIndexForward: aws.Bool(true),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}

	var journal []models.JournalEntry
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query journal: %w", err)
		}
		var page []models.JournalEntry
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal entries: %w", err)
		}
		journal = append(journal, page...)
		if limit > 0 && len(journal) >= int(limit) {
			journal = journal[:limit]
			break
		}
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return journal, nil
}

func formatTime(t time.Time) (string, error) {
	b, err := t.MarshalText()
	if err != nil {
		return "", fmt.Errorf("failed to marshal time: %w", err)
	}
	return string(b), nil
}
