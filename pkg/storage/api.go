package storage

// ApiStore defines the read-side operations needed by the HTTP API.
type ApiStore interface {
	LedgerReader
	WalletStore
}
