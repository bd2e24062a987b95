package postgres

import (
	"database/sql"
	"fmt"

	"github.com/alfredjeanlab/teamboard/internal/model"
)

// scannable is satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanMember(row scannable) (*model.Member, error) {
	var m model.Member
	if err := row.Scan(&m.ID, &m.Name, &m.Email); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanBoard(row scannable) (*model.Board, error) {
	var b model.Board
	if err := row.Scan(&b.ID, &b.Name, &b.Description); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanGroup(row scannable) (*model.Group, error) {
	var g model.Group
	if err := row.Scan(&g.ID, &g.BoardID, &g.Name, &g.Position); err != nil {
		return nil, err
	}
	return &g, nil
}

func scanItem(row scannable) (*model.Item, error) {
	var (
		it     model.Item
		status string

		startDate     sql.NullTime
		dueDate       sql.NullTime
		timelineStart sql.NullTime
		timelineEnd   sql.NullTime
	)
	err := row.Scan(
		&it.ID,
		&it.BoardID,
		&it.GroupID,
		&it.Title,
		&it.Description,
		&status,
		&startDate,
		&dueDate,
		&timelineStart,
		&timelineEnd,
		&it.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	it.Status = model.Status(status)
	it.StartDate = dateFromNull(startDate)
	it.DueDate = dateFromNull(dueDate)
	it.TimelineStart = dateFromNull(timelineStart)
	it.TimelineEnd = dateFromNull(timelineEnd)
	return &it, nil
}

func scanIDs(rows *sql.Rows) ([]string, error) {
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// nullDate converts an optional date into a driver value for a DATE column.
func nullDate(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

func dateFromNull(nt sql.NullTime) *model.Date {
	if !nt.Valid {
		return nil
	}
	d := model.DateOf(nt.Time)
	return &d
}
