package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
)

var (
	ErrGameNotFound          = errors.New("game not found")
	ErrGameIDConflict        = errors.New("game with this id already exists")
	ErrGameInvalidTournament = errors.New("game references a nonexistent tournament")
)

// gameColumns also exposes the numeric columns as text to the free-text
// search, matching the wider searchable field set games have.
var gameColumns = query.NewColumns("id", map[string]string{
	"id":           "id",
	"title":        "title",
	"startTime":    "start_time",
	"tournamentId": "tournament_id",
}, "title", "CAST(id AS TEXT)", "CAST(tournament_id AS TEXT)")

const gameSelect = "SELECT id, title, start_time, tournament_id FROM games"

type GameRepository interface {
	GetAll(ctx context.Context) ([]models.Game, error)
	GetByID(ctx context.Context, id int) (*models.Game, error)
	ListByParams(ctx context.Context, params query.Params) ([]models.Game, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int) (*models.Game, error)
}

type postgresGameRepository struct {
	exec SQLExecutor
}

func NewPostgresGameRepository(exec SQLExecutor) GameRepository {
	return &postgresGameRepository{exec: exec}
}

func (r *postgresGameRepository) GetAll(ctx context.Context) ([]models.Game, error) {
	return r.list(ctx, gameSelect+" ORDER BY id ASC")
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	g := &models.Game{}
	err := r.exec.QueryRowContext(ctx, gameSelect+" WHERE id = $1", id).
		Scan(&g.ID, &g.Title, &g.StartTime, &g.TournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *postgresGameRepository) ListByParams(ctx context.Context, params query.Params) ([]models.Game, error) {
	stmt, args, err := query.Build(gameSelect, gameColumns, params)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, stmt, args...)
}

func (r *postgresGameRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.exec.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Create inserts the game and assigns its store identity, guarding against
// explicit IDs that already exist. Referential correctness of TournamentID
// is left to the store's foreign key.
func (r *postgresGameRepository) Create(ctx context.Context, g *models.Game) error {
	if g.ID != 0 {
		exists, err := r.Exists(ctx, g.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrGameIDConflict
		}
		_, err = r.exec.ExecContext(ctx,
			"INSERT INTO games (id, title, start_time, tournament_id) VALUES ($1, $2, $3, $4)",
			g.ID, g.Title, g.StartTime, g.TournamentID)
		return handleGameError(err)
	}

	err := r.exec.QueryRowContext(ctx,
		"INSERT INTO games (title, start_time, tournament_id) VALUES ($1, $2, $3) RETURNING id",
		g.Title, g.StartTime, g.TournamentID).Scan(&g.ID)
	return handleGameError(err)
}

func (r *postgresGameRepository) Update(ctx context.Context, g *models.Game) error {
	result, err := r.exec.ExecContext(ctx,
		"UPDATE games SET title = $1, start_time = $2, tournament_id = $3 WHERE id = $4",
		g.Title, g.StartTime, g.TournamentID, g.ID)
	if err != nil {
		return handleGameError(err)
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) (*models.Game, error) {
	g := &models.Game{}
	err := r.exec.QueryRowContext(ctx,
		"DELETE FROM games WHERE id = $1 RETURNING id, title, start_time, tournament_id", id).
		Scan(&g.ID, &g.Title, &g.StartTime, &g.TournamentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return g, nil
}

func handleGameError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			return ErrGameInvalidTournament
		case "23505": // unique_violation
			return ErrGameIDConflict
		}
	}
	return err
}

func (r *postgresGameRepository) list(ctx context.Context, stmt string, args ...any) ([]models.Game, error) {
	rows, err := r.exec.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if scanErr := rows.Scan(&g.ID, &g.Title, &g.StartTime, &g.TournamentID); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}
