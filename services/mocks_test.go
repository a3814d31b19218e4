package services

import (
	"context"

	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/repositories"
)

// Mocks

type mockTournamentRepo struct {
	GetAllFunc           func(ctx context.Context) ([]models.Tournament, error)
	GetByIDFunc          func(ctx context.Context, id int) (*models.Tournament, error)
	GetByIDWithGamesFunc func(ctx context.Context, id int) (*models.Tournament, error)
	ListByParamsFunc     func(ctx context.Context, params query.Params) ([]models.Tournament, error)
	ExistsFunc           func(ctx context.Context, id int) (bool, error)
	ExistsByTitleFunc    func(ctx context.Context, title string) (bool, error)
	CreateFunc           func(ctx context.Context, t *models.Tournament) error
	UpdateFunc           func(ctx context.Context, t *models.Tournament) error
	DeleteFunc           func(ctx context.Context, id int) (*models.Tournament, error)
}

func (m *mockTournamentRepo) GetAll(ctx context.Context) ([]models.Tournament, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrTournamentNotFound
}

func (m *mockTournamentRepo) GetByIDWithGames(ctx context.Context, id int) (*models.Tournament, error) {
	if m.GetByIDWithGamesFunc != nil {
		return m.GetByIDWithGamesFunc(ctx, id)
	}
	return nil, repositories.ErrTournamentNotFound
}

func (m *mockTournamentRepo) ListByParams(ctx context.Context, params query.Params) ([]models.Tournament, error) {
	if m.ListByParamsFunc != nil {
		return m.ListByParamsFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockTournamentRepo) Exists(ctx context.Context, id int) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockTournamentRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	if m.ExistsByTitleFunc != nil {
		return m.ExistsByTitleFunc(ctx, title)
	}
	return false, nil
}

func (m *mockTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTournamentRepo) Delete(ctx context.Context, id int) (*models.Tournament, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, repositories.ErrTournamentNotFound
}

type mockGameRepo struct {
	GetAllFunc       func(ctx context.Context) ([]models.Game, error)
	GetByIDFunc      func(ctx context.Context, id int) (*models.Game, error)
	ListByParamsFunc func(ctx context.Context, params query.Params) ([]models.Game, error)
	ExistsFunc       func(ctx context.Context, id int) (bool, error)
	CreateFunc       func(ctx context.Context, g *models.Game) error
	UpdateFunc       func(ctx context.Context, g *models.Game) error
	DeleteFunc       func(ctx context.Context, id int) (*models.Game, error)
}

func (m *mockGameRepo) GetAll(ctx context.Context) ([]models.Game, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrGameNotFound
}

func (m *mockGameRepo) ListByParams(ctx context.Context, params query.Params) ([]models.Game, error) {
	if m.ListByParamsFunc != nil {
		return m.ListByParamsFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockGameRepo) Exists(ctx context.Context, id int) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, id)
	}
	return false, nil
}

func (m *mockGameRepo) Create(ctx context.Context, g *models.Game) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, g)
	}
	return nil
}

func (m *mockGameRepo) Update(ctx context.Context, g *models.Game) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, g)
	}
	return nil
}

func (m *mockGameRepo) Delete(ctx context.Context, id int) (*models.Game, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, repositories.ErrGameNotFound
}

type mockUnitOfWork struct {
	tournaments *mockTournamentRepo
	games       *mockGameRepo

	completed bool
	released  bool
}

func (m *mockUnitOfWork) Tournaments() repositories.TournamentRepository { return m.tournaments }
func (m *mockUnitOfWork) Games() repositories.GameRepository             { return m.games }
func (m *mockUnitOfWork) Complete() error {
	m.completed = true
	return nil
}
func (m *mockUnitOfWork) Release() { m.released = true }

type mockUOWFactory struct {
	uow *mockUnitOfWork
}

func (m *mockUOWFactory) Begin(ctx context.Context) (repositories.UnitOfWork, error) {
	return m.uow, nil
}

func newMockUOW() (*mockUOWFactory, *mockUnitOfWork) {
	uow := &mockUnitOfWork{
		tournaments: &mockTournamentRepo{},
		games:       &mockGameRepo{},
	}
	return &mockUOWFactory{uow: uow}, uow
}
