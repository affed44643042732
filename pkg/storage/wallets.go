package storage

import (
	"context"

	"github.com/chris/polyfunds-ledger/pkg/models"
)

// WalletStore defines the interface for payout wallets.
type WalletStore interface {
	// GetWallet retrieves the payout wallet of an address.
	GetWallet(ctx context.Context, address string) (*models.Wallet, error)

	// SetWalletFrozen blocks or unblocks payouts to an address.
	SetWalletFrozen(ctx context.Context, address string, frozen bool) error
}
