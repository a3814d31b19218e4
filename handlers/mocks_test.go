package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockTournamentService struct {
	ListFunc        func(ctx context.Context, params query.Params) ([]models.Tournament, error)
	GetByIDFunc     func(ctx context.Context, id int, includeGames bool) (*models.Tournament, error)
	CreateFunc      func(ctx context.Context, input services.TournamentCreateInput) (*models.Tournament, error)
	CreateBatchFunc func(ctx context.Context, inputs []services.TournamentCreateInput) ([]models.Tournament, error)
	UpdateFunc      func(ctx context.Context, input services.TournamentEditInput) (*models.Tournament, error)
	UpdateBatchFunc func(ctx context.Context, inputs []services.TournamentEditInput) ([]models.Tournament, error)
	PatchFunc       func(ctx context.Context, id int, doc []byte) (*models.Tournament, error)
	DeleteFunc      func(ctx context.Context, id int) (*models.Tournament, error)
}

func (m *mockTournamentService) List(ctx context.Context, params query.Params) ([]models.Tournament, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockTournamentService) GetByID(ctx context.Context, id int, includeGames bool) (*models.Tournament, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, includeGames)
	}
	return nil, services.ErrTournamentNotFound
}

func (m *mockTournamentService) Create(ctx context.Context, input services.TournamentCreateInput) (*models.Tournament, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockTournamentService) CreateBatch(ctx context.Context, inputs []services.TournamentCreateInput) ([]models.Tournament, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, inputs)
	}
	return nil, nil
}

func (m *mockTournamentService) Update(ctx context.Context, input services.TournamentEditInput) (*models.Tournament, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockTournamentService) UpdateBatch(ctx context.Context, inputs []services.TournamentEditInput) ([]models.Tournament, error) {
	if m.UpdateBatchFunc != nil {
		return m.UpdateBatchFunc(ctx, inputs)
	}
	return nil, nil
}

func (m *mockTournamentService) Patch(ctx context.Context, id int, doc []byte) (*models.Tournament, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, doc)
	}
	return nil, services.ErrTournamentNotFound
}

func (m *mockTournamentService) Delete(ctx context.Context, id int) (*models.Tournament, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, services.ErrTournamentNotFound
}

type mockGameService struct {
	ListFunc        func(ctx context.Context, params query.Params) ([]models.Game, error)
	GetByIDFunc     func(ctx context.Context, id int) (*models.Game, error)
	CreateFunc      func(ctx context.Context, input services.GameCreateInput) (*models.Game, error)
	CreateBatchFunc func(ctx context.Context, inputs []services.GameCreateInput) ([]models.Game, error)
	UpdateFunc      func(ctx context.Context, input services.GameEditInput) (*models.Game, error)
	UpdateBatchFunc func(ctx context.Context, inputs []services.GameEditInput) ([]models.Game, error)
	PatchFunc       func(ctx context.Context, id int, doc []byte) (*models.Game, error)
	DeleteFunc      func(ctx context.Context, id int) (*models.Game, error)
}

func (m *mockGameService) List(ctx context.Context, params query.Params) ([]models.Game, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockGameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, services.ErrGameNotFound
}

func (m *mockGameService) Create(ctx context.Context, input services.GameCreateInput) (*models.Game, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockGameService) CreateBatch(ctx context.Context, inputs []services.GameCreateInput) ([]models.Game, error) {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, inputs)
	}
	return nil, nil
}

func (m *mockGameService) Update(ctx context.Context, input services.GameEditInput) (*models.Game, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, input)
	}
	return nil, nil
}

func (m *mockGameService) UpdateBatch(ctx context.Context, inputs []services.GameEditInput) ([]models.Game, error) {
	if m.UpdateBatchFunc != nil {
		return m.UpdateBatchFunc(ctx, inputs)
	}
	return nil, nil
}

func (m *mockGameService) Patch(ctx context.Context, id int, doc []byte) (*models.Game, error) {
	if m.PatchFunc != nil {
		return m.PatchFunc(ctx, id, doc)
	}
	return nil, services.ErrGameNotFound
}

func (m *mockGameService) Delete(ctx context.Context, id int) (*models.Game, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, services.ErrGameNotFound
}
