package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store bundles every read-only repository over one connection pool.
type Store struct {
	db *sql.DB
	repository.TroopRepository
	repository.TransactionRepository
	repository.ScoutRepository
	repository.CampaignRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		TroopRepository:       NewTroopRepository(db),
		TransactionRepository: NewTransactionRepository(db),
		ScoutRepository:       NewScoutRepository(db),
		CampaignRepository:    NewCampaignRepository(db),
	}
}

// ReadSnapshot runs fn inside a read-only REPEATABLE READ transaction. The transaction is
// rolled back when fn fails and committed otherwise.
func (s *Store) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, campaigns repository.CampaignRepository, transactions repository.TransactionRepository) error) error {
	logger.DatabaseCall("Store.ReadSnapshot", "BEGIN READ ONLY ISOLATION LEVEL REPEATABLE READ")

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		logger.DatabaseResult("Store.ReadSnapshot", 0, err)
		return fmt.Errorf("begin snapshot: %w", err)
	}

	if err := fn(ctx, NewCampaignRepository(tx), NewTransactionRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Warn("Snapshot rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.DatabaseResult("Store.ReadSnapshot", 0, err)
		return fmt.Errorf("commit snapshot: %w", err)
	}
	logger.DatabaseResult("Store.ReadSnapshot", 0, nil)
	return nil
}

// Open connects to PostgreSQL and verifies the connection.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
	}
	return err
}
