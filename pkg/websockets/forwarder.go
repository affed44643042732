package websockets

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// EventForwarder adapts a Publisher to the ledger's event publisher contract.
type EventForwarder struct {
	Publisher Publisher
}

// Publish forwards a committed ledger event as a ledgerEvent message.
func (f EventForwarder) Publish(ctx context.Context, ev models.Event) error {
	return f.Publisher.Publish(ctx, NewLedgerEventMessage(ev))
}
