// Package storage persists the ledger as one serialized blob in a named slot.
//
// Every write replaces the whole blob. There is no merge: with two writers the
// last write wins.
package storage

import (
	"context"
	"errors"
)

// ErrSlotEmpty is returned by Read when nothing was ever written to the slot.
var ErrSlotEmpty = errors.New("slot is empty")

// DefaultSlotName is used when no slot name is configured.
const DefaultSlotName = "transactions"

// Slot is a single named storage location holding one blob.
type Slot interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}
