// Package snapshot exports and imports the full board state as a single
// JSON document, and ships it to configured destinations on a schedule.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

// Export writes the store's full state to w as JSON. Map keys are emitted
// sorted and relation pairs are sorted by the store, so identical states
// produce identical bytes.
func Export(ctx context.Context, s store.Store, w io.Writer) error {
	snap, err := s.Export(ctx)
	if err != nil {
		return fmt.Errorf("export state: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Import replaces the store's state with the snapshot read from r.
func Import(ctx context.Context, s store.Store, r io.Reader) (*model.Snapshot, error) {
	snap, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := s.Import(ctx, snap); err != nil {
		return nil, fmt.Errorf("import state: %w", err)
	}
	return snap, nil
}

// Decode parses a snapshot document without touching a store.
func Decode(r io.Reader) (*model.Snapshot, error) {
	snap := model.NewSnapshot()
	dec := json.NewDecoder(r)
	if err := dec.Decode(snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
