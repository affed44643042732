package storage

import "errors"

// ErrSequenceConflict is returned when a journal entry with the same sequence already exists,
// meaning another writer committed first.
var ErrSequenceConflict = errors.New("journal sequence conflict")

// ErrPayeeRejected is returned when a payout cannot be delivered, e.g. because the payee wallet is frozen.
var ErrPayeeRejected = errors.New("payee rejected payout")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")
