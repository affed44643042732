package ledger

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
	"github.com/ethereum/go-ethereum/common"
)

// EventFilter selects events from the log. Zero values match everything.
type EventFilter struct {
	BusinessID *uint64
	Account    *common.Address
	AfterSeq   uint64
	Limit      int
}

func (f EventFilter) matches(ev models.Event) bool {
	if ev.Seq <= f.AfterSeq {
		return false
	}
	if f.BusinessID != nil && (ev.BusinessID == nil || *ev.BusinessID != *f.BusinessID) {
		return false
	}
	if f.Account != nil && ev.Account != f.Account.Hex() {
		return false
	}
	return true
}

// Events returns committed events in sequence order.
func (e *Engine) Events(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := []models.Event{}
	for _, ev := range e.state.events {
		if !filter.matches(ev) {
			continue
		}
		out = append(out, ev)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
