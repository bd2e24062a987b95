// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/teamboard/internal/model"
	"github.com/alfredjeanlab/teamboard/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
// The relation-cleanup invariant for item deletion is carried by ON DELETE
// CASCADE on the relation tables, so a delete is a single statement.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewFromDB wraps an existing connection without running migrations.
// Used by tests.
func NewFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateMember(ctx context.Context, m *model.Member) error {
	return queryCreateMember(ctx, s.db, m)
}

func (s *PostgresStore) GetMember(ctx context.Context, id string) (*model.Member, error) {
	return queryGetMember(ctx, s.db, id)
}

func (s *PostgresStore) ListMembers(ctx context.Context) ([]*model.Member, error) {
	return queryListMembers(ctx, s.db)
}

func (s *PostgresStore) CreateBoard(ctx context.Context, b *model.Board) error {
	return queryCreateBoard(ctx, s.db, b)
}

func (s *PostgresStore) GetBoard(ctx context.Context, id string) (*model.Board, error) {
	return queryGetBoard(ctx, s.db, id)
}

func (s *PostgresStore) ListBoards(ctx context.Context) ([]*model.Board, error) {
	return queryListBoards(ctx, s.db)
}

func (s *PostgresStore) CreateGroup(ctx context.Context, g *model.Group) error {
	return queryCreateGroup(ctx, s.db, g)
}

func (s *PostgresStore) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	return queryGetGroup(ctx, s.db, id)
}

func (s *PostgresStore) ListGroups(ctx context.Context, boardID string) ([]*model.Group, error) {
	return queryListGroups(ctx, s.db, boardID)
}

// ReorderGroups runs inside a transaction so the dense 0..n-1 sequence is
// applied atomically.
func (s *PostgresStore) ReorderGroups(ctx context.Context, boardID string, orderedNames []string) error {
	return s.inTransaction(ctx, func(tx *sql.Tx) error {
		return queryReorderGroups(ctx, tx, boardID, orderedNames)
	})
}

func (s *PostgresStore) CreateItem(ctx context.Context, it *model.Item) error {
	return queryCreateItem(ctx, s.db, it)
}

func (s *PostgresStore) GetItem(ctx context.Context, id string) (*model.Item, error) {
	return queryGetItem(ctx, s.db, id)
}

func (s *PostgresStore) ListItems(ctx context.Context, filter model.ItemFilter) ([]*model.Item, error) {
	return queryListItems(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateItem(ctx context.Context, it *model.Item) error {
	return queryUpdateItem(ctx, s.db, it)
}

func (s *PostgresStore) DeleteItem(ctx context.Context, id string) error {
	return queryDeleteItem(ctx, s.db, id)
}

func (s *PostgresStore) ClearBoardItems(ctx context.Context, boardID string) (int, error) {
	var n int
	err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = queryClearBoardItems(ctx, tx, boardID)
		return err
	})
	return n, err
}

func (s *PostgresStore) Assign(ctx context.Context, itemID, memberID string) error {
	return queryAssign(ctx, s.db, itemID, memberID)
}

func (s *PostgresStore) Unassign(ctx context.Context, itemID, memberID string) error {
	return queryUnassign(ctx, s.db, itemID, memberID)
}

func (s *PostgresStore) Assignees(ctx context.Context, itemID string) ([]string, error) {
	return queryAssignees(ctx, s.db, itemID)
}

func (s *PostgresStore) AddDependency(ctx context.Context, itemID, dependsOnID string) error {
	if itemID == dependsOnID {
		// Degenerate input, ignored by design.
		return nil
	}
	return queryAddDependency(ctx, s.db, itemID, dependsOnID)
}

func (s *PostgresStore) RemoveDependency(ctx context.Context, itemID, dependsOnID string) error {
	return queryRemoveDependency(ctx, s.db, itemID, dependsOnID)
}

func (s *PostgresStore) Dependencies(ctx context.Context, itemID string) ([]string, error) {
	return queryDependencies(ctx, s.db, itemID)
}

func (s *PostgresStore) ClearDependencies(ctx context.Context, itemID string) error {
	return queryClearDependencies(ctx, s.db, itemID)
}

func (s *PostgresStore) Export(ctx context.Context) (*model.Snapshot, error) {
	var snap *model.Snapshot
	err := s.inTransaction(ctx, func(tx *sql.Tx) error {
		var err error
		snap, err = queryExport(ctx, tx)
		return err
	})
	return snap, err
}

func (s *PostgresStore) Import(ctx context.Context, snap *model.Snapshot) error {
	return s.inTransaction(ctx, func(tx *sql.Tx) error {
		return queryImport(ctx, tx, snap)
	})
}

func (s *PostgresStore) inTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
