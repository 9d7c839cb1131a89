// Package ledger holds the transaction record store and the pure functions
// that filter, sort and aggregate its contents.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// DeletePrompt is shown before a record is removed.
const DeletePrompt = "Are you sure you want to delete this transaction?"

// Confirmer answers a yes/no question before a destructive change.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

// Store owns the canonical record list, newest entry first.
// It is not safe for concurrent use; it expects one writer.
type Store struct {
	slot     storage.Slot
	now      func() time.Time
	logger   *slog.Logger
	records  []core.Transaction
	revision uint64
}

type Option func(*Store)

// WithClock replaces time.Now, used for ids and recordedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one.
// A missing or unreadable blob yields an empty ledger; the failure is only logged.
func (s *Store) Load(ctx context.Context) []core.Transaction {
	s.records = s.read(ctx)
	s.revision++
	return s.List()
}

func (s *Store) read(ctx context.Context) []core.Transaction {
	data, err := s.slot.Read(ctx)
	if errors.Is(err, storage.ErrSlotEmpty) {
		s.logger.DebugContext(ctx, "No persisted ledger, starting empty", log.FieldSlot, s.slot.Name())
		return nil
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read ledger, starting empty", log.FieldSlot, s.slot.Name(), log.FieldError, err)
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.WarnContext(ctx, "Persisted ledger is corrupt, starting empty", log.FieldSlot, s.slot.Name(), log.FieldError, err)
		return nil
	}

	seen := make(map[int64]struct{}, len(raw))
	out := make([]core.Transaction, 0, len(raw))
	for i, rec := range raw {
		t, err := decodeStored(rec)
		if err != nil {
			s.logger.WarnContext(ctx, "Dropping undecodable stored transaction", log.FieldIndex, i, log.FieldError, err)
			continue
		}
		if err := t.Validate(); err != nil {
			s.logger.WarnContext(ctx, "Dropping invalid stored transaction", log.FieldTransactionID, t.ID, log.FieldError, err)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			s.logger.WarnContext(ctx, "Dropping duplicate stored transaction", log.FieldTransactionID, t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		if !t.OccurredOn.Valid() {
			s.logger.WarnContext(ctx, "Stored transaction has unparsable date", log.FieldTransactionID, t.ID, log.FieldDate, t.OccurredOn.String())
		}
		out = append(out, t)
	}
	return out
}

// decodeStored decodes one persisted record. A malformed recordedAt only
// loses the audit timestamp; any other bad field rejects the record.
func decodeStored(rec json.RawMessage) (core.Transaction, error) {
	var t core.Transaction
	err := json.Unmarshal(rec, &t)
	if err == nil {
		return t, nil
	}

	var fields map[string]json.RawMessage
	if json.Unmarshal(rec, &fields) != nil {
		return core.Transaction{}, err
	}
	if _, ok := fields["recordedAt"]; !ok {
		return core.Transaction{}, err
	}
	delete(fields, "recordedAt")
	trimmed, mErr := json.Marshal(fields)
	if mErr != nil {
		return core.Transaction{}, err
	}
	t = core.Transaction{}
	if json.Unmarshal(trimmed, &t) != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

// List returns a copy of the records in store order (newest entry first).
func (s *Store) List() []core.Transaction {
	return append([]core.Transaction(nil), s.records...)
}

func (s *Store) Len() int { return len(s.records) }

// Revision changes every time the record list changes.
func (s *Store) Revision() uint64 { return s.revision }

// Add validates the draft, assigns a fresh id, prepends the record and persists the ledger.
// On a validation or persistence failure the ledger is left as it was.
func (s *Store) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	t, err := d.Parse()
	if err != nil {
		return core.Transaction{}, err
	}

	now := s.now()
	t.ID = s.nextID(now)
	t.RecordedAt = now.UTC()

	prev := s.records
	next := make([]core.Transaction, 0, len(prev)+1)
	next = append(next, t)
	next = append(next, prev...)

	if err := s.persist(ctx, next); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.records = next
	s.revision++

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTransactionID, t.ID,
		log.FieldKind, t.Kind,
		log.FieldCategory, t.Category,
		log.FieldAmountCents, t.Amount.Cents,
		log.FieldDate, t.OccurredOn.String())
	return t, nil
}

// nextID derives the id from the creation time, bumping past any id already in use.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range s.records {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// Remove deletes every record with the given id once c confirms.
// It reports false without touching anything when the prompt is declined or the id is unknown.
func (s *Store) Remove(ctx context.Context, id int64, c Confirmer) (bool, error) {
	if c == nil || !c.Confirm(DeletePrompt) {
		s.logger.DebugContext(ctx, "Removal declined", log.FieldTransactionID, id)
		return false, nil
	}

	next := make([]core.Transaction, 0, len(s.records))
	for _, t := range s.records {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(s.records) {
		return false, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return false, fmt.Errorf("remove transaction: %w", err)
	}
	s.records = next
	s.revision++

	s.logger.InfoContext(ctx, "Transaction removed", log.FieldTransactionID, id)
	return true, nil
}

func (s *Store) persist(ctx context.Context, records []core.Transaction) error {
	if records == nil {
		records = []core.Transaction{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}
