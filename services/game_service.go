package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/repositories"
)

type GameService interface {
	List(ctx context.Context, params query.Params) ([]models.Game, error)
	GetByID(ctx context.Context, id int) (*models.Game, error)
	Create(ctx context.Context, input GameCreateInput) (*models.Game, error)
	CreateBatch(ctx context.Context, inputs []GameCreateInput) ([]models.Game, error)
	Update(ctx context.Context, input GameEditInput) (*models.Game, error)
	UpdateBatch(ctx context.Context, inputs []GameEditInput) ([]models.Game, error)
	Patch(ctx context.Context, id int, patchDocument []byte) (*models.Game, error)
	Delete(ctx context.Context, id int) (*models.Game, error)
}

type GameCreateInput struct {
	ID           int       `json:"id"`
	Title        string    `json:"title" validate:"required,min=5,max=25"`
	StartTime    time.Time `json:"start_time"`
	TournamentID int       `json:"tournament_id" validate:"required"`
}

type GameEditInput struct {
	ID           int       `json:"id" validate:"required"`
	Title        string    `json:"title" validate:"required,min=10,max=25"`
	StartTime    time.Time `json:"start_time"`
	TournamentID int       `json:"tournament_id" validate:"required"`
}

type gameService struct {
	uowFactory repositories.UnitOfWorkFactory
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewGameService(
	uowFactory repositories.UnitOfWorkFactory,
	validate *validator.Validate,
	logger *slog.Logger,
) GameService {
	return &gameService{
		uowFactory: uowFactory,
		validate:   validate,
		logger:     logger,
	}
}

func (s *gameService) List(ctx context.Context, params query.Params) ([]models.Game, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	games, err := uow.Games().ListByParams(ctx, params)
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (s *gameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	game, err := uow.Games().GetByID(ctx, id)
	if err != nil {
		return nil, mapGameRepoError(err)
	}
	return game, nil
}

func (s *gameService) Create(ctx context.Context, input GameCreateInput) (*models.Game, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	game, err := s.createOne(ctx, uow, input)
	if err != nil {
		return nil, err
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return game, nil
}

// CreateBatch is all-or-nothing, like its tournament counterpart.
func (s *gameService) CreateBatch(ctx context.Context, inputs []GameCreateInput) ([]models.Game, error) {
	for _, input := range inputs {
		if err := validateStruct(s.validate, input); err != nil {
			return nil, err
		}
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	created := make([]models.Game, 0, len(inputs))
	for _, input := range inputs {
		game, err := s.createOne(ctx, uow, input)
		if err != nil {
			s.logger.Warn("game batch create aborted",
				slog.String("title", input.Title), slog.Any("error", err))
			return nil, fmt.Errorf("%w: %v", ErrBatchAborted, err)
		}
		created = append(created, *game)
	}

	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *gameService) Update(ctx context.Context, input GameEditInput) (*models.Game, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	game, err := s.updateOne(ctx, uow, input)
	if err != nil {
		return nil, err
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *gameService) UpdateBatch(ctx context.Context, inputs []GameEditInput) ([]models.Game, error) {
	for _, input := range inputs {
		if err := validateStruct(s.validate, input); err != nil {
			return nil, err
		}
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	updated := make([]models.Game, 0, len(inputs))
	for _, input := range inputs {
		game, err := s.updateOne(ctx, uow, input)
		if err != nil {
			s.logger.Warn("game batch update aborted",
				slog.Int("id", input.ID), slog.Any("error", err))
			return nil, fmt.Errorf("%w: %v", ErrBatchAborted, err)
		}
		updated = append(updated, *game)
	}

	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *gameService) Patch(ctx context.Context, id int, patchDocument []byte) (*models.Game, error) {
	patch, err := jsonpatch.DecodePatch(patchDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	current, err := uow.Games().GetByID(ctx, id)
	if err != nil {
		return nil, mapGameRepoError(err)
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	patchedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}

	var patched models.Game
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}
	if patched.ID != id {
		return nil, fmt.Errorf("%w: id cannot be changed", ErrInvalidPatchDocument)
	}

	edit := GameEditInput{
		ID:           patched.ID,
		Title:        patched.Title,
		StartTime:    patched.StartTime,
		TournamentID: patched.TournamentID,
	}
	if err := validateStruct(s.validate, edit); err != nil {
		return nil, err
	}

	if err := uow.Games().Update(ctx, &patched); err != nil {
		return nil, mapGameRepoError(err)
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return &patched, nil
}

func (s *gameService) Delete(ctx context.Context, id int) (*models.Game, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	deleted, err := uow.Games().Delete(ctx, id)
	if err != nil {
		return nil, mapGameRepoError(err)
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *gameService) createOne(ctx context.Context, uow repositories.UnitOfWork, input GameCreateInput) (*models.Game, error) {
	game := &models.Game{
		ID:           input.ID,
		Title:        input.Title,
		StartTime:    input.StartTime,
		TournamentID: input.TournamentID,
	}
	if err := uow.Games().Create(ctx, game); err != nil {
		return nil, mapGameRepoError(err)
	}
	return game, nil
}

func (s *gameService) updateOne(ctx context.Context, uow repositories.UnitOfWork, input GameEditInput) (*models.Game, error) {
	game := &models.Game{
		ID:           input.ID,
		Title:        input.Title,
		StartTime:    input.StartTime,
		TournamentID: input.TournamentID,
	}
	if err := uow.Games().Update(ctx, game); err != nil {
		return nil, mapGameRepoError(err)
	}
	return game, nil
}

func mapGameRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrGameNotFound):
		return ErrGameNotFound
	case errors.Is(err, repositories.ErrGameIDConflict):
		return ErrGameIDConflict
	case errors.Is(err, repositories.ErrGameInvalidTournament):
		return ErrGameInvalidTournament
	default:
		return err
	}
}
