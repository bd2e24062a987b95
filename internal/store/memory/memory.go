// Package memory implements store.Store with plain in-process tables.
//
// This is the reference backend: no I/O, every operation runs to
// completion under a single store-level lock, so entities and relations
// are always observed consistently.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

// MemoryStore holds the entity tables and relation sets in maps.
// Relations are kept bidirectionally so deletion-by-endpoint stays
// O(degree) instead of O(all edges).
type MemoryStore struct {
	mu sync.RWMutex

	members map[string]*model.Member
	boards  map[string]*model.Board
	groups  map[string]*model.Group
	items   map[string]*model.Item

	// Insertion sequence per entity id; list results and group-position
	// ties are ordered by it.
	seq     map[string]int
	nextSeq int

	assignByItem   map[string]map[string]struct{} // item -> members
	assignByMember map[string]map[string]struct{} // member -> items
	depsOut        map[string]map[string]struct{} // item -> depends_on targets
	depsIn         map[string]map[string]struct{} // target -> dependents
}

// Compile-time check that MemoryStore implements store.Store.
var _ store.Store = (*MemoryStore)(nil)

// New returns an empty in-memory store.
func New() *MemoryStore {
	s := &MemoryStore{}
	s.reset()
	return s
}

// reset reinitializes every table. Caller must hold mu (or own the store
// exclusively, as New does).
func (s *MemoryStore) reset() {
	s.members = make(map[string]*model.Member)
	s.boards = make(map[string]*model.Board)
	s.groups = make(map[string]*model.Group)
	s.items = make(map[string]*model.Item)
	s.seq = make(map[string]int)
	s.nextSeq = 0
	s.assignByItem = make(map[string]map[string]struct{})
	s.assignByMember = make(map[string]map[string]struct{})
	s.depsOut = make(map[string]map[string]struct{})
	s.depsIn = make(map[string]map[string]struct{})
}

func (s *MemoryStore) track(id string) {
	s.seq[id] = s.nextSeq
	s.nextSeq++
}

// --- Members ---

func (s *MemoryStore) CreateMember(_ context.Context, m *model.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.members[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

func (s *MemoryStore) GetMember(_ context.Context, id string) (*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return nil, fmt.Errorf("member %s: %w", id, store.ErrNotFound)
	}
	cp := *m
	return &cp, nil
}

func (s *MemoryStore) ListMembers(_ context.Context) ([]*model.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Member, 0, len(s.members))
	for _, m := range s.members {
		cp := *m
		out = append(out, &cp)
	}
	s.sortByInsertion(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

// --- Boards ---

func (s *MemoryStore) CreateBoard(_ context.Context, b *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.boards[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

func (s *MemoryStore) GetBoard(_ context.Context, id string) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.boards[id]
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, store.ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) ListBoards(_ context.Context) ([]*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Board, 0, len(s.boards))
	for _, b := range s.boards {
		cp := *b
		out = append(out, &cp)
	}
	s.sortByInsertion(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

// --- Groups ---

func (s *MemoryStore) CreateGroup(_ context.Context, g *model.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[g.BoardID]; !ok {
		return fmt.Errorf("board %s: %w", g.BoardID, store.ErrNotFound)
	}
	cp := *g
	s.groups[cp.ID] = &cp
	s.track(cp.ID)
	return nil
}

func (s *MemoryStore) GetGroup(_ context.Context, id string) (*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", id, store.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

func (s *MemoryStore) ListGroups(_ context.Context, boardID string) ([]*model.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.boards[boardID]; !ok {
		return nil, fmt.Errorf("board %s: %w", boardID, store.ErrNotFound)
	}
	var out []*model.Group
	for _, g := range s.groups {
		if g.BoardID == boardID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

func (s *MemoryStore) ReorderGroups(_ context.Context, boardID string, orderedNames []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return fmt.Errorf("board %s: %w", boardID, store.ErrNotFound)
	}
	byName := make(map[string]*model.Group)
	for _, g := range s.groups {
		if g.BoardID == boardID {
			byName[g.Name] = g
		}
	}
	for idx, name := range orderedNames {
		g, ok := byName[name]
		if !ok {
			return fmt.Errorf("group %q on board %s: %w", name, boardID, store.ErrNotFound)
		}
		g.Position = idx
	}
	return nil
}

// --- Items ---

func (s *MemoryStore) CreateItem(_ context.Context, it *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[it.BoardID]; !ok {
		return fmt.Errorf("board %s: %w", it.BoardID, store.ErrNotFound)
	}
	g, ok := s.groups[it.GroupID]
	if !ok || g.BoardID != it.BoardID {
		return fmt.Errorf("group %s on board %s: %w", it.GroupID, it.BoardID, store.ErrNotFound)
	}
	cp := cloneItem(it)
	s.items[cp.ID] = cp
	s.track(cp.ID)
	return nil
}

func (s *MemoryStore) GetItem(_ context.Context, id string) (*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("item %s: %w", id, store.ErrNotFound)
	}
	return cloneItem(it), nil
}

func (s *MemoryStore) ListItems(_ context.Context, filter model.ItemFilter) ([]*model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Item
	for _, it := range s.items {
		if s.matches(it, filter) {
			out = append(out, cloneItem(it))
		}
	}
	s.sortByInsertion(len(out), func(i int) string { return out[i].ID }, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out, nil
}

func (s *MemoryStore) matches(it *model.Item, f model.ItemFilter) bool {
	if f.BoardID != "" && it.BoardID != f.BoardID {
		return false
	}
	if f.GroupID != "" && it.GroupID != f.GroupID {
		return false
	}
	if len(f.Status) > 0 && !containsStatus(f.Status, it.Status) {
		return false
	}
	if f.AssignedTo != "" {
		if _, ok := s.assignByMember[f.AssignedTo][it.ID]; !ok {
			return false
		}
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(it.Title), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			return false
		}
	}
	return true
}

func (s *MemoryStore) UpdateItem(_ context.Context, it *model.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[it.ID]
	if !ok {
		return fmt.Errorf("item %s: %w", it.ID, store.ErrNotFound)
	}
	g, ok := s.groups[it.GroupID]
	if !ok || g.BoardID != old.BoardID {
		return fmt.Errorf("group %s on board %s: %w", it.GroupID, old.BoardID, store.ErrNotFound)
	}
	cp := cloneItem(it)
	cp.BoardID = old.BoardID // items never move between boards
	s.items[cp.ID] = cp
	return nil
}

func (s *MemoryStore) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
	}
	s.deleteItemLocked(id)
	return nil
}

// deleteItemLocked removes the item and every relation tuple touching it.
// Caller must hold mu.
func (s *MemoryStore) deleteItemLocked(id string) {
	delete(s.items, id)
	delete(s.seq, id)

	for member := range s.assignByItem[id] {
		delete(s.assignByMember[member], id)
	}
	delete(s.assignByItem, id)

	for target := range s.depsOut[id] {
		delete(s.depsIn[target], id)
	}
	delete(s.depsOut, id)

	for dependent := range s.depsIn[id] {
		delete(s.depsOut[dependent], id)
	}
	delete(s.depsIn, id)
}

func (s *MemoryStore) ClearBoardItems(_ context.Context, boardID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.boards[boardID]; !ok {
		return 0, fmt.Errorf("board %s: %w", boardID, store.ErrNotFound)
	}
	var doomed []string
	for id, it := range s.items {
		if it.BoardID == boardID {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		s.deleteItemLocked(id)
	}
	return len(doomed), nil
}

// --- Assignments ---

func (s *MemoryStore) Assign(_ context.Context, itemID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	if _, ok := s.members[memberID]; !ok {
		return fmt.Errorf("member %s: %w", memberID, store.ErrNotFound)
	}
	addEdge(s.assignByItem, itemID, memberID)
	addEdge(s.assignByMember, memberID, itemID)
	return nil
}

func (s *MemoryStore) Unassign(_ context.Context, itemID, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removeEdge(s.assignByItem, itemID, memberID)
	removeEdge(s.assignByMember, memberID, itemID)
	return nil
}

func (s *MemoryStore) Assignees(_ context.Context, itemID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.items[itemID]; !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	return sortedKeys(s.assignByItem[itemID]), nil
}

// --- Dependencies ---

func (s *MemoryStore) AddDependency(_ context.Context, itemID, dependsOnID string) error {
	if itemID == dependsOnID {
		// Self-loops are degenerate input, ignored by design.
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[itemID]; !ok {
		return fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	if _, ok := s.items[dependsOnID]; !ok {
		return fmt.Errorf("item %s: %w", dependsOnID, store.ErrNotFound)
	}
	addEdge(s.depsOut, itemID, dependsOnID)
	addEdge(s.depsIn, dependsOnID, itemID)
	return nil
}

func (s *MemoryStore) RemoveDependency(_ context.Context, itemID, dependsOnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removeEdge(s.depsOut, itemID, dependsOnID)
	removeEdge(s.depsIn, dependsOnID, itemID)
	return nil
}

func (s *MemoryStore) Dependencies(_ context.Context, itemID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.items[itemID]; !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, store.ErrNotFound)
	}
	return sortedKeys(s.depsOut[itemID]), nil
}

func (s *MemoryStore) ClearDependencies(_ context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for target := range s.depsOut[itemID] {
		delete(s.depsIn[target], itemID)
	}
	delete(s.depsOut, itemID)
	return nil
}

// --- Snapshot ---

func (s *MemoryStore) Export(_ context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := model.NewSnapshot()
	for id, m := range s.members {
		cp := *m
		snap.Members[id] = &cp
	}
	for id, b := range s.boards {
		cp := *b
		snap.Boards[id] = &cp
	}
	for id, g := range s.groups {
		cp := *g
		snap.Groups[id] = &cp
	}
	for id, it := range s.items {
		snap.Items[id] = cloneItem(it)
	}
	for item, members := range s.assignByItem {
		for member := range members {
			snap.Assignments = append(snap.Assignments, [2]string{item, member})
		}
	}
	for item, targets := range s.depsOut {
		for target := range targets {
			snap.Dependencies = append(snap.Dependencies, [2]string{item, target})
		}
	}
	sortPairs(snap.Assignments)
	sortPairs(snap.Dependencies)
	return snap, nil
}

func (s *MemoryStore) Import(_ context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, id := range sortedMapKeys(snap.Members) {
		cp := *snap.Members[id]
		s.members[id] = &cp
		s.track(id)
	}
	for _, id := range sortedMapKeys(snap.Boards) {
		cp := *snap.Boards[id]
		s.boards[id] = &cp
		s.track(id)
	}
	for _, id := range sortedMapKeys(snap.Groups) {
		cp := *snap.Groups[id]
		s.groups[id] = &cp
		s.track(id)
	}
	for _, id := range sortedMapKeys(snap.Items) {
		s.items[id] = cloneItem(snap.Items[id])
		s.track(id)
	}
	for _, pair := range snap.Assignments {
		addEdge(s.assignByItem, pair[0], pair[1])
		addEdge(s.assignByMember, pair[1], pair[0])
	}
	for _, pair := range snap.Dependencies {
		if pair[0] == pair[1] {
			continue
		}
		addEdge(s.depsOut, pair[0], pair[1])
		addEdge(s.depsIn, pair[1], pair[0])
	}
	return nil
}

// Close is a no-op; the store owns no external resources.
func (s *MemoryStore) Close() error { return nil }

// --- helpers ---

// sortByInsertion orders a result slice by creation sequence. Caller must
// hold mu (read or write).
func (s *MemoryStore) sortByInsertion(n int, id func(int) string, swap func(i, j int)) {
	sort.Sort(&bySeq{n: n, seq: s.seq, id: id, swapFn: swap})
}

type bySeq struct {
	n      int
	seq    map[string]int
	id     func(int) string
	swapFn func(i, j int)
}

func (b *bySeq) Len() int           { return b.n }
func (b *bySeq) Less(i, j int) bool { return b.seq[b.id(i)] < b.seq[b.id(j)] }
func (b *bySeq) Swap(i, j int)      { b.swapFn(i, j) }

func cloneItem(it *model.Item) *model.Item {
	cp := *it
	cp.StartDate = cloneDate(it.StartDate)
	cp.DueDate = cloneDate(it.DueDate)
	cp.TimelineStart = cloneDate(it.TimelineStart)
	cp.TimelineEnd = cloneDate(it.TimelineEnd)
	return &cp
}

func cloneDate(d *model.Date) *model.Date {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}

func addEdge(m map[string]map[string]struct{}, from, to string) {
	set, ok := m[from]
	if !ok {
		set = make(map[string]struct{})
		m[from] = set
	}
	set[to] = struct{}{}
}

func removeEdge(m map[string]map[string]struct{}, from, to string) {
	if set, ok := m[from]; ok {
		delete(set, to)
		if len(set) == 0 {
			delete(m, from)
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedMapKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortPairs(pairs [][2]string) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}

func containsStatus(list []model.Status, s model.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
