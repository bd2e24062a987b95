package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

// itemColumns is the column list used for SELECT statements on the items table.
const itemColumns = `id, board_id, group_id, title, description, status,
	start_date, due_date, timeline_start, timeline_end, created_by`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// --- Members ---

func queryCreateMember(ctx context.Context, db executor, m *model.Member) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO members (id, name, email) VALUES ($1, $2, $3)`,
		m.ID, m.Name, m.Email,
	)
	return err
}

func queryGetMember(ctx context.Context, db executor, id string) (*model.Member, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, email FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("member %s: %w", id, store.ErrNotFound)
	}
	return m, err
}

func queryListMembers(ctx context.Context, db executor) ([]*model.Member, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, email FROM members ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var out []*model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- Boards ---

func queryCreateBoard(ctx context.Context, db executor, b *model.Board) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO boards (id, name, description) VALUES ($1, $2, $3)`,
		b.ID, b.Name, b.Description,
	)
	return err
}

func queryGetBoard(ctx context.Context, db executor, id string) (*model.Board, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, description FROM boards WHERE id = $1`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %s: %w", id, store.ErrNotFound)
	}
	return b, err
}

func queryListBoards(ctx context.Context, db executor) ([]*model.Board, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name, description FROM boards ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var out []*model.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan board: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func requireBoard(ctx context.Context, db executor, id string) error {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM boards WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("board %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func requireItem(ctx context.Context, db executor, id string) error {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
	}
	return nil
}

// --- Groups ---

func queryCreateGroup(ctx context.Context, db executor, g *model.Group) error {
	if err := requireBoard(ctx, db, g.BoardID); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO groups (id, board_id, name, position) VALUES ($1, $2, $3, $4)`,
		g.ID, g.BoardID, g.Name, g.Position,
	)
	return err
}

func queryGetGroup(ctx context.Context, db executor, id string) (*model.Group, error) {
	row := db.QueryRowContext(ctx, `SELECT id, board_id, name, position FROM groups WHERE id = $1`, id)
	g, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", id, store.ErrNotFound)
	}
	return g, err
}

func queryListGroups(ctx context.Context, db executor, boardID string) ([]*model.Group, error) {
	if err := requireBoard(ctx, db, boardID); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, board_id, name, position FROM groups WHERE board_id = $1 ORDER BY position, seq`,
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var out []*model.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func queryReorderGroups(ctx context.Context, db executor, boardID string, orderedNames []string) error {
	if err := requireBoard(ctx, db, boardID); err != nil {
		return err
	}
	for idx, name := range orderedNames {
		res, err := db.ExecContext(ctx,
			`UPDATE groups SET position = $1 WHERE board_id = $2 AND name = $3`,
			idx, boardID, name,
		)
		if err != nil {
			return fmt.Errorf("reorder group %q: %w", name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("group %q on board %s: %w", name, boardID, store.ErrNotFound)
		}
	}
	return nil
}

// --- Items ---

func queryCreateItem(ctx context.Context, db executor, it *model.Item) error {
	if err := requireBoard(ctx, db, it.BoardID); err != nil {
		return err
	}
	var onBoard bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM groups WHERE id = $1 AND board_id = $2)`,
		it.GroupID, it.BoardID,
	).Scan(&onBoard)
	if err != nil {
		return err
	}
	if !onBoard {
		return fmt.Errorf("group %s on board %s: %w", it.GroupID, it.BoardID, store.ErrNotFound)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO items (
			id, board_id, group_id, title, description, status,
			start_date, due_date, timeline_start, timeline_end, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		it.ID,
		it.BoardID,
		it.GroupID,
		it.Title,
		it.Description,
		string(it.Status),
		nullDate(it.StartDate),
		nullDate(it.DueDate),
		nullDate(it.TimelineStart),
		nullDate(it.TimelineEnd),
		it.CreatedBy,
	)
	return err
}

func queryGetItem(ctx context.Context, db executor, id string) (*model.Item, error) {
	row := db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %s: %w", id, store.ErrNotFound)
	}
	return it, err
}

func queryListItems(ctx context.Context, db executor, filter model.ItemFilter) ([]*model.Item, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.BoardID != "" {
		whereClauses = append(whereClauses, "board_id = "+nextArg())
		args = append(args, filter.BoardID)
	}
	if filter.GroupID != "" {
		whereClauses = append(whereClauses, "group_id = "+nextArg())
		args = append(args, filter.GroupID)
	}
	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.AssignedTo != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("EXISTS (SELECT 1 FROM item_assignments a WHERE a.item_id = items.id AND a.member_id = %s)", p))
		args = append(args, filter.AssignedTo)
	}
	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	rows, err := db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items`+whereSQL+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []*model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func queryUpdateItem(ctx context.Context, db executor, it *model.Item) error {
	res, err := db.ExecContext(ctx, `
		UPDATE items SET
			group_id = $2,
			title = $3,
			description = $4,
			status = $5,
			start_date = $6,
			due_date = $7,
			timeline_start = $8,
			timeline_end = $9
		WHERE id = $1`,
		it.ID,
		it.GroupID,
		it.Title,
		it.Description,
		string(it.Status),
		nullDate(it.StartDate),
		nullDate(it.DueDate),
		nullDate(it.TimelineStart),
		nullDate(it.TimelineEnd),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", it.ID, store.ErrNotFound)
	}
	return nil
}

func queryDeleteItem(ctx context.Context, db executor, id string) error {
	// Relation rows go with the item via ON DELETE CASCADE.
	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func queryClearBoardItems(ctx context.Context, db executor, boardID string) (int, error) {
	if err := requireBoard(ctx, db, boardID); err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM items WHERE board_id = $1`, boardID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// --- Assignments ---

func queryAssign(ctx context.Context, db executor, itemID, memberID string) error {
	if err := requireItem(ctx, db, itemID); err != nil {
		return err
	}
	var exists bool
	if err := db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("member %s: %w", memberID, store.ErrNotFound)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO item_assignments (item_id, member_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		itemID, memberID,
	)
	return err
}

func queryUnassign(ctx context.Context, db executor, itemID, memberID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM item_assignments WHERE item_id = $1 AND member_id = $2`,
		itemID, memberID,
	)
	return err
}

func queryAssignees(ctx context.Context, db executor, itemID string) ([]string, error) {
	if err := requireItem(ctx, db, itemID); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT member_id FROM item_assignments WHERE item_id = $1 ORDER BY member_id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("get assignees: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// --- Dependencies ---

func queryAddDependency(ctx context.Context, db executor, itemID, dependsOnID string) error {
	if err := requireItem(ctx, db, itemID); err != nil {
		return err
	}
	if err := requireItem(ctx, db, dependsOnID); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO item_dependencies (item_id, depends_on_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		itemID, dependsOnID,
	)
	return err
}

func queryRemoveDependency(ctx context.Context, db executor, itemID, dependsOnID string) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM item_dependencies WHERE item_id = $1 AND depends_on_id = $2`,
		itemID, dependsOnID,
	)
	return err
}

func queryDependencies(ctx context.Context, db executor, itemID string) ([]string, error) {
	if err := requireItem(ctx, db, itemID); err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx,
		`SELECT depends_on_id FROM item_dependencies WHERE item_id = $1 ORDER BY depends_on_id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("get dependencies: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func queryClearDependencies(ctx context.Context, db executor, itemID string) error {
	// Outgoing edges only; edges where this item is the target are kept.
	_, err := db.ExecContext(ctx, `DELETE FROM item_dependencies WHERE item_id = $1`, itemID)
	return err
}

// --- Snapshot ---

func queryExport(ctx context.Context, db executor) (*model.Snapshot, error) {
	snap := model.NewSnapshot()

	members, err := queryListMembers(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		snap.Members[m.ID] = m
	}

	boards, err := queryListBoards(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, b := range boards {
		snap.Boards[b.ID] = b
	}

	rows, err := db.QueryContext(ctx, `SELECT id, board_id, name, position FROM groups ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export groups: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		snap.Groups[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("export items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		it, err := scanItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		snap.Items[it.ID] = it
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	snap.Assignments, err = queryPairs(ctx, db,
		`SELECT item_id, member_id FROM item_assignments ORDER BY item_id, member_id`)
	if err != nil {
		return nil, err
	}
	snap.Dependencies, err = queryPairs(ctx, db,
		`SELECT item_id, depends_on_id FROM item_dependencies ORDER BY item_id, depends_on_id`)
	if err != nil {
		return nil, err
	}

	return snap, nil
}

func queryPairs(ctx context.Context, db executor, query string) ([][2]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export pairs: %w", err)
	}
	defer rows.Close()

	pairs := [][2]string{}
	for rows.Next() {
		var a, b string
		if err := rows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		pairs = append(pairs, [2]string{a, b})
	}
	return pairs, rows.Err()
}

func queryImport(ctx context.Context, db executor, snap *model.Snapshot) error {
	// Replace everything; child tables first to satisfy foreign keys.
	for _, table := range []string{"item_dependencies", "item_assignments", "items", "groups", "boards", "members"} {
		if _, err := db.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, id := range sortedKeys(snap.Members) {
		if err := queryCreateMember(ctx, db, snap.Members[id]); err != nil {
			return fmt.Errorf("import member %s: %w", id, err)
		}
	}
	for _, id := range sortedKeys(snap.Boards) {
		if err := queryCreateBoard(ctx, db, snap.Boards[id]); err != nil {
			return fmt.Errorf("import board %s: %w", id, err)
		}
	}
	for _, id := range sortedKeys(snap.Groups) {
		if err := queryCreateGroup(ctx, db, snap.Groups[id]); err != nil {
			return fmt.Errorf("import group %s: %w", id, err)
		}
	}
	for _, id := range sortedKeys(snap.Items) {
		if err := queryCreateItem(ctx, db, snap.Items[id]); err != nil {
			return fmt.Errorf("import item %s: %w", id, err)
		}
	}
	for _, pair := range snap.Assignments {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO item_assignments (item_id, member_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, pair[0], pair[1]); err != nil {
			return fmt.Errorf("import assignment %v: %w", pair, err)
		}
	}
	for _, pair := range snap.Dependencies {
		if pair[0] == pair[1] {
			continue
		}
		if _, err := db.ExecContext(ctx, `
			INSERT INTO item_dependencies (item_id, depends_on_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, pair[0], pair[1]); err != nil {
			return fmt.Errorf("import dependency %v: %w", pair, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sortStrings(out)
	return out
}

func sortStrings(s []string) {
	// Insertion sort keeps this file free of a sort import for one helper.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
