package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// UnitOfWork groups the two repositories over a single transaction. Writes
// made through either repository become visible only when Complete commits
// them as one unit; Release rolls back anything uncommitted, so callers
// defer it to guarantee the session is freed on every exit path.
type UnitOfWork interface {
	Tournaments() TournamentRepository
	Games() GameRepository
	Complete() error
	Release()
}

// UnitOfWorkFactory opens one unit-of-work per inbound request.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

type sqlUnitOfWorkFactory struct {
	db *sql.DB
}

func NewSQLUnitOfWorkFactory(db *sql.DB) UnitOfWorkFactory {
	return &sqlUnitOfWorkFactory{db: db}
}

func (f *sqlUnitOfWorkFactory) Begin(ctx context.Context) (UnitOfWork, error) {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqlUnitOfWork{
		tx:          tx,
		tournaments: NewPostgresTournamentRepository(tx),
		games:       NewPostgresGameRepository(tx),
	}, nil
}

type sqlUnitOfWork struct {
	tx          *sql.Tx
	tournaments TournamentRepository
	games       GameRepository
	completed   bool
}

func (u *sqlUnitOfWork) Tournaments() TournamentRepository { return u.tournaments }

func (u *sqlUnitOfWork) Games() GameRepository { return u.games }

func (u *sqlUnitOfWork) Complete() error {
	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	u.completed = true
	return nil
}

func (u *sqlUnitOfWork) Release() {
	if u.completed {
		return
	}
	// Rollback after the connection is gone is harmless.
	_ = u.tx.Rollback()
}
