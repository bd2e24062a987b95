package snapshot

import (
	"bytes"
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store/memory"
)

// seedStore builds a memory store with a small populated board.
func seedStore(t *testing.T) *memory.MemoryStore {
	t.Helper()
	ctx := context.Background()
	s := memory.New()

	if err := s.CreateMember(ctx, &model.Member{ID: "mb-1", Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-1", Name: "Sample Project"}); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := s.CreateGroup(ctx, &model.Group{ID: "gr-1", BoardID: "bd-1", Name: "Backlog"}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	due := model.NewDate(2026, time.March, 10)
	items := []*model.Item{
		{ID: "it-1", BoardID: "bd-1", GroupID: "gr-1", Title: "First", Status: model.StatusNotStarted, DueDate: &due},
		{ID: "it-2", BoardID: "bd-1", GroupID: "gr-1", Title: "Second", Status: model.StatusInProgress},
	}
	for _, it := range items {
		if err := s.CreateItem(ctx, it); err != nil {
			t.Fatalf("create item %s: %v", it.ID, err)
		}
	}
	if err := s.Assign(ctx, "it-1", "mb-1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := s.AddDependency(ctx, "it-2", "it-1"); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	return s
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := seedStore(t)

	var buf bytes.Buffer
	if err := Export(ctx, src, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	dst := memory.New()
	snap, err := Import(ctx, dst, &buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(snap.Items) != 2 || len(snap.Members) != 1 {
		t.Fatalf("unexpected snapshot counts: %d items, %d members", len(snap.Items), len(snap.Members))
	}

	want, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("export source: %v", err)
	}
	got, err := dst.Export(ctx)
	if err != nil {
		t.Fatalf("export destination: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestExportDeterministic(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	var first, second bytes.Buffer
	if err := Export(ctx, s, &first); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := Export(ctx, s, &second); err != nil {
		t.Fatalf("second export: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("identical state produced different bytes")
	}
}

func TestExportOptionalDates(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	var buf bytes.Buffer
	if err := Export(ctx, s, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	snap, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	it1 := snap.Items["it-1"]
	if it1 == nil || it1.DueDate == nil || it1.DueDate.String() != "2026-03-10" {
		t.Fatalf("due date did not survive: %+v", it1)
	}
	it2 := snap.Items["it-2"]
	if it2 == nil || it2.DueDate != nil || it2.StartDate != nil {
		t.Fatalf("absent dates did not survive: %+v", it2)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte(`{not json`))); err == nil {
		t.Fatal("expected error decoding invalid JSON")
	}
}

func TestImportReplacesState(t *testing.T) {
	ctx := context.Background()
	src := seedStore(t)

	var buf bytes.Buffer
	if err := Export(ctx, src, &buf); err != nil {
		t.Fatalf("export: %v", err)
	}

	// Destination starts with unrelated state.
	dst := memory.New()
	if err := dst.CreateMember(ctx, &model.Member{ID: "mb-old", Name: "Old"}); err != nil {
		t.Fatalf("create member: %v", err)
	}

	if _, err := Import(ctx, dst, &buf); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := dst.GetMember(ctx, "mb-old"); err == nil {
		t.Fatal("expected pre-import state to be replaced")
	}
	if _, err := dst.GetMember(ctx, "mb-1"); err != nil {
		t.Fatalf("expected imported member present: %v", err)
	}
}
