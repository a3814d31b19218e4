package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
)

var (
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTournamentIDConflict = errors.New("tournament with this id already exists")
)

// tournamentColumns is the closed field set exposed to filter/sort/search.
// Anything outside it fails resolution with query.ErrUnknownField.
var tournamentColumns = query.NewColumns("id", map[string]string{
	"id":        "id",
	"title":     "title",
	"startDate": "start_date",
}, "title")

const tournamentSelect = "SELECT id, title, start_date FROM tournaments"

type TournamentRepository interface {
	GetAll(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetByIDWithGames(ctx context.Context, id int) (*models.Tournament, error)
	ListByParams(ctx context.Context, params query.Params) ([]models.Tournament, error)
	Exists(ctx context.Context, id int) (bool, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, tournament *models.Tournament) error
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) (*models.Tournament, error)
}

type postgresTournamentRepository struct {
	exec SQLExecutor
}

func NewPostgresTournamentRepository(exec SQLExecutor) TournamentRepository {
	return &postgresTournamentRepository{exec: exec}
}

func (r *postgresTournamentRepository) GetAll(ctx context.Context) ([]models.Tournament, error) {
	return r.list(ctx, tournamentSelect+" ORDER BY id ASC")
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := r.exec.QueryRowContext(ctx, tournamentSelect+" WHERE id = $1", id).
		Scan(&t.ID, &t.Title, &t.StartDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

// GetByIDWithGames eagerly loads the tournament's games.
func (r *postgresTournamentRepository) GetByIDWithGames(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.exec.QueryContext(ctx,
		"SELECT id, title, start_time, tournament_id FROM games WHERE tournament_id = $1 ORDER BY id ASC", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load games for tournament %d: %w", id, err)
	}
	defer rows.Close()

	t.Games = make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if scanErr := rows.Scan(&g.ID, &g.Title, &g.StartTime, &g.TournamentID); scanErr != nil {
			return nil, scanErr
		}
		t.Games = append(t.Games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListByParams(ctx context.Context, params query.Params) ([]models.Tournament, error) {
	stmt, args, err := query.Build(tournamentSelect, tournamentColumns, params)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, stmt, args...)
}

func (r *postgresTournamentRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.exec.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM tournaments WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

func (r *postgresTournamentRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.exec.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM tournaments WHERE title = $1)", title).Scan(&exists)
	return exists, err
}

// Create inserts the tournament and assigns its store identity. A caller
// supplying an explicit ID that is already taken gets
// ErrTournamentIDConflict; the row is not touched (upsert-guard).
func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.ID != 0 {
		exists, err := r.Exists(ctx, t.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrTournamentIDConflict
		}
		_, err = r.exec.ExecContext(ctx,
			"INSERT INTO tournaments (id, title, start_date) VALUES ($1, $2, $3)",
			t.ID, t.Title, t.StartDate)
		return err
	}

	return r.exec.QueryRowContext(ctx,
		"INSERT INTO tournaments (title, start_date) VALUES ($1, $2) RETURNING id",
		t.Title, t.StartDate).Scan(&t.ID)
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	result, err := r.exec.ExecContext(ctx,
		"UPDATE tournaments SET title = $1, start_date = $2 WHERE id = $3",
		t.Title, t.StartDate, t.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament and returns the removed row.
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := r.exec.QueryRowContext(ctx,
		"DELETE FROM tournaments WHERE id = $1 RETURNING id, title, start_date", id).
		Scan(&t.ID, &t.Title, &t.StartDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) list(ctx context.Context, stmt string, args ...any) ([]models.Tournament, error) {
	rows, err := r.exec.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := rows.Scan(&t.ID, &t.Title, &t.StartDate); scanErr != nil {
			return nil, scanErr
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}
