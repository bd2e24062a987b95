package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

func newFixture(t *testing.T) (context.Context, *MemoryStore) {
	t.Helper()
	return context.Background(), New()
}

// seedBoard creates a board with one group and returns (boardID, groupID).
func seedBoard(t *testing.T, ctx context.Context, s *MemoryStore) (string, string) {
	t.Helper()
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-1", Name: "Board"}); err != nil {
		t.Fatalf("create board: %v", err)
	}
	if err := s.CreateGroup(ctx, &model.Group{ID: "gr-1", BoardID: "bd-1", Name: "Backlog", Position: 0}); err != nil {
		t.Fatalf("create group: %v", err)
	}
	return "bd-1", "gr-1"
}

func seedItem(t *testing.T, ctx context.Context, s *MemoryStore, id string) {
	t.Helper()
	err := s.CreateItem(ctx, &model.Item{ID: id, BoardID: "bd-1", GroupID: "gr-1", Title: id, Status: model.StatusNotStarted})
	if err != nil {
		t.Fatalf("create item %s: %v", id, err)
	}
}

func TestCreateGroup_RequiresBoard(t *testing.T) {
	ctx, s := newFixture(t)
	err := s.CreateGroup(ctx, &model.Group{ID: "gr-1", BoardID: "ghost", Name: "Backlog"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCreateItem_RequiresBoardAndGroup(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)

	err := s.CreateItem(ctx, &model.Item{ID: "it-1", BoardID: "ghost", GroupID: "gr-1", Title: "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing board: got %v, want ErrNotFound", err)
	}

	err = s.CreateItem(ctx, &model.Item{ID: "it-1", BoardID: "bd-1", GroupID: "ghost", Title: "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing group: got %v, want ErrNotFound", err)
	}

	// Group on another board does not count.
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-2", Name: "Other"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateGroup(ctx, &model.Group{ID: "gr-2", BoardID: "bd-2", Name: "Lane"}); err != nil {
		t.Fatal(err)
	}
	err = s.CreateItem(ctx, &model.Item{ID: "it-1", BoardID: "bd-1", GroupID: "gr-2", Title: "x"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("cross-board group: got %v, want ErrNotFound", err)
	}
}

func TestGetItem_ReturnsCopy(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")

	got, err := s.GetItem(ctx, "it-1")
	if err != nil {
		t.Fatal(err)
	}
	got.Title = "mutated"
	due := model.NewDate(2024, 1, 1)
	got.DueDate = &due

	again, err := s.GetItem(ctx, "it-1")
	if err != nil {
		t.Fatal(err)
	}
	if again.Title != "it-1" || again.DueDate != nil {
		t.Error("mutating a returned item leaked into the store")
	}
}

func TestDeleteItem_RemovesAllRelationEdges(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")
	seedItem(t, ctx, s, "it-2")
	seedItem(t, ctx, s, "it-3")
	if err := s.CreateMember(ctx, &model.Member{ID: "mb-1", Name: "Alice", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}

	if err := s.Assign(ctx, "it-1", "mb-1"); err != nil {
		t.Fatal(err)
	}
	// it-1 depends on it-2; it-3 depends on it-1 (both directions covered).
	if err := s.AddDependency(ctx, "it-1", "it-2"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddDependency(ctx, "it-3", "it-1"); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteItem(ctx, "it-1"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.GetItem(ctx, "it-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("item still present after delete: %v", err)
	}

	snap, err := s.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, pair := range snap.Assignments {
		if pair[0] == "it-1" || pair[1] == "it-1" {
			t.Errorf("dangling assignment %v after delete", pair)
		}
	}
	for _, pair := range snap.Dependencies {
		if pair[0] == "it-1" || pair[1] == "it-1" {
			t.Errorf("dangling dependency %v after delete", pair)
		}
	}

	// it-3 now has no outgoing edges.
	deps, err := s.Dependencies(ctx, "it-3")
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Errorf("it-3 still depends on %v", deps)
	}
}

func TestDeleteItem_NotFound(t *testing.T) {
	ctx, s := newFixture(t)
	if err := s.DeleteItem(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestAssign_Idempotent(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")
	if err := s.CreateMember(ctx, &model.Member{ID: "mb-1", Name: "Alice", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := s.Assign(ctx, "it-1", "mb-1"); err != nil {
			t.Fatalf("assign #%d: %v", i, err)
		}
	}
	got, err := s.Assignees(ctx, "it-1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"mb-1"}) {
		t.Errorf("assignees = %v, want [mb-1]", got)
	}

	// Unassign is idempotent too, including for pairs never inserted.
	if err := s.Unassign(ctx, "it-1", "mb-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Unassign(ctx, "it-1", "mb-1"); err != nil {
		t.Fatal(err)
	}
}

func TestAssign_InvalidReference(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")

	if err := s.Assign(ctx, "it-1", "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing member: got %v, want ErrNotFound", err)
	}
	if err := s.Assign(ctx, "ghost", "mb-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing item: got %v, want ErrNotFound", err)
	}
}

func TestAddDependency_SelfLoopIgnored(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")

	if err := s.AddDependency(ctx, "it-1", "it-1"); err != nil {
		t.Fatalf("self-loop should be a silent no-op, got %v", err)
	}
	deps, err := s.Dependencies(ctx, "it-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(deps) != 0 {
		t.Errorf("self-loop was stored: %v", deps)
	}
}

func TestClearDependencies_OutgoingOnly(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")
	seedItem(t, ctx, s, "it-2")
	seedItem(t, ctx, s, "it-3")

	// it-1 -> it-2, it-3 -> it-1.
	if err := s.AddDependency(ctx, "it-1", "it-2"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddDependency(ctx, "it-3", "it-1"); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearDependencies(ctx, "it-1"); err != nil {
		t.Fatal(err)
	}

	deps, _ := s.Dependencies(ctx, "it-1")
	if len(deps) != 0 {
		t.Errorf("outgoing edges survived clear: %v", deps)
	}
	deps, _ = s.Dependencies(ctx, "it-3")
	if !reflect.DeepEqual(deps, []string{"it-1"}) {
		t.Errorf("incoming edge removed by clear: it-3 deps = %v", deps)
	}
}

func TestListGroups_OrderedByPositionThenInsertion(t *testing.T) {
	ctx, s := newFixture(t)
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-1", Name: "Board"}); err != nil {
		t.Fatal(err)
	}
	for _, g := range []model.Group{
		{ID: "gr-a", BoardID: "bd-1", Name: "Review", Position: 2},
		{ID: "gr-b", BoardID: "bd-1", Name: "Backlog", Position: 0},
		{ID: "gr-c", BoardID: "bd-1", Name: "Doing", Position: 0}, // ties with gr-b, inserted later
	} {
		g := g
		if err := s.CreateGroup(ctx, &g); err != nil {
			t.Fatal(err)
		}
	}

	groups, err := s.ListGroups(ctx, "bd-1")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	want := []string{"Backlog", "Doing", "Review"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("group order = %v, want %v", names, want)
	}
}

func TestReorderGroups_AssignsDensePositions(t *testing.T) {
	ctx, s := newFixture(t)
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-1", Name: "Board"}); err != nil {
		t.Fatal(err)
	}
	for i, name := range []string{"Backlog", "Doing", "Review"} {
		g := model.Group{ID: "gr-" + name, BoardID: "bd-1", Name: name, Position: i}
		if err := s.CreateGroup(ctx, &g); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.ReorderGroups(ctx, "bd-1", []string{"Review", "Backlog", "Doing"}); err != nil {
		t.Fatal(err)
	}
	groups, err := s.ListGroups(ctx, "bd-1")
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"Review", "Backlog", "Doing"} {
		if groups[i].Name != want || groups[i].Position != i {
			t.Errorf("slot %d: got (%s, %d), want (%s, %d)", i, groups[i].Name, groups[i].Position, want, i)
		}
	}

	if err := s.ReorderGroups(ctx, "bd-1", []string{"Nope"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown group name: got %v, want ErrNotFound", err)
	}
}

func TestClearBoardItems(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")
	seedItem(t, ctx, s, "it-2")
	if err := s.CreateBoard(ctx, &model.Board{ID: "bd-2", Name: "Other"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateGroup(ctx, &model.Group{ID: "gr-2", BoardID: "bd-2", Name: "Lane"}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateItem(ctx, &model.Item{ID: "it-3", BoardID: "bd-2", GroupID: "gr-2", Title: "keep"}); err != nil {
		t.Fatal(err)
	}
	if err := s.AddDependency(ctx, "it-1", "it-2"); err != nil {
		t.Fatal(err)
	}

	n, err := s.ClearBoardItems(ctx, "bd-1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("cleared %d items, want 2", n)
	}
	if _, err := s.GetItem(ctx, "it-3"); err != nil {
		t.Errorf("item on another board was cleared: %v", err)
	}
	snap, _ := s.Export(ctx)
	if len(snap.Dependencies) != 0 {
		t.Errorf("dependencies survived board clear: %v", snap.Dependencies)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	seedItem(t, ctx, s, "it-1")
	due := model.NewDate(2024, 3, 10)
	ts := model.NewDate(2024, 3, 1)
	if err := s.CreateItem(ctx, &model.Item{
		ID: "it-2", BoardID: "bd-1", GroupID: "gr-1", Title: "dated",
		Status: model.StatusInProgress, DueDate: &due, TimelineStart: &ts, CreatedBy: "mb-1",
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateMember(ctx, &model.Member{ID: "mb-1", Name: "Alice", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(ctx, "it-2", "mb-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddDependency(ctx, "it-2", "it-1"); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}

	other := New()
	if err := other.Import(ctx, snap); err != nil {
		t.Fatal(err)
	}
	snap2, err := other.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(snap, snap2) {
		t.Errorf("round trip changed snapshot:\nfirst:  %+v\nsecond: %+v", snap, snap2)
	}

	// And the derived queries behave identically.
	deps, err := other.Dependencies(ctx, "it-2")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(deps, []string{"it-1"}) {
		t.Errorf("dependencies after import = %v", deps)
	}
	assignees, err := other.Assignees(ctx, "it-2")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(assignees, []string{"mb-1"}) {
		t.Errorf("assignees after import = %v", assignees)
	}
}

func TestListItems_Filter(t *testing.T) {
	ctx, s := newFixture(t)
	seedBoard(t, ctx, s)
	if err := s.CreateItem(ctx, &model.Item{ID: "it-1", BoardID: "bd-1", GroupID: "gr-1", Title: "Write API docs", Status: model.StatusInProgress}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateItem(ctx, &model.Item{ID: "it-2", BoardID: "bd-1", GroupID: "gr-1", Title: "Ship", Description: "final API release", Status: model.StatusDone}); err != nil {
		t.Fatal(err)
	}
	if err := s.CreateMember(ctx, &model.Member{ID: "mb-1", Name: "Alice", Email: "a@x"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Assign(ctx, "it-2", "mb-1"); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name   string
		filter model.ItemFilter
		want   []string
	}{
		{"by board", model.ItemFilter{BoardID: "bd-1"}, []string{"it-1", "it-2"}},
		{"by status", model.ItemFilter{Status: []model.Status{model.StatusDone}}, []string{"it-2"}},
		{"by assignee", model.ItemFilter{AssignedTo: "mb-1"}, []string{"it-2"}},
		{"search title", model.ItemFilter{Search: "docs"}, []string{"it-1"}},
		{"search description case-insensitive", model.ItemFilter{Search: "API"}, []string{"it-1", "it-2"}},
		{"no match", model.ItemFilter{Search: "zzz"}, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			items, err := s.ListItems(ctx, tc.filter)
			if err != nil {
				t.Fatal(err)
			}
			var ids []string
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			if !reflect.DeepEqual(ids, tc.want) {
				t.Errorf("filter %+v = %v, want %v", tc.filter, ids, tc.want)
			}
		})
	}
}
