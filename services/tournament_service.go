package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-playground/validator/v10"
	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/repositories"
)

type TournamentService interface {
	List(ctx context.Context, params query.Params) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int, includeGames bool) (*models.Tournament, error)
	Create(ctx context.Context, input TournamentCreateInput) (*models.Tournament, error)
	CreateBatch(ctx context.Context, inputs []TournamentCreateInput) ([]models.Tournament, error)
	Update(ctx context.Context, input TournamentEditInput) (*models.Tournament, error)
	UpdateBatch(ctx context.Context, inputs []TournamentEditInput) ([]models.Tournament, error)
	Patch(ctx context.Context, id int, patchDocument []byte) (*models.Tournament, error)
	Delete(ctx context.Context, id int) (*models.Tournament, error)
}

type TournamentCreateInput struct {
	// Explicit IDs are honored but guarded against duplicates.
	ID        int         `json:"id"`
	Title     string      `json:"title" validate:"required,min=5,max=25"`
	StartDate models.Date `json:"start_date"`
}

// Edits demand a longer minimum title than creates; this asymmetry is part
// of the public contract.
type TournamentEditInput struct {
	ID        int         `json:"id" validate:"required"`
	Title     string      `json:"title" validate:"required,min=10,max=25"`
	StartDate models.Date `json:"start_date"`
}

type tournamentService struct {
	uowFactory repositories.UnitOfWorkFactory
	validate   *validator.Validate
	logger     *slog.Logger
}

func NewTournamentService(
	uowFactory repositories.UnitOfWorkFactory,
	validate *validator.Validate,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		uowFactory: uowFactory,
		validate:   validate,
		logger:     logger,
	}
}

func (s *tournamentService) List(ctx context.Context, params query.Params) ([]models.Tournament, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	tournaments, err := uow.Tournaments().ListByParams(ctx, params)
	if err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int, includeGames bool) (*models.Tournament, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	var tournament *models.Tournament
	if includeGames {
		tournament, err = uow.Tournaments().GetByIDWithGames(ctx, id)
	} else {
		tournament, err = uow.Tournaments().GetByID(ctx, id)
	}
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) Create(ctx context.Context, input TournamentCreateInput) (*models.Tournament, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	tournament, err := s.createOne(ctx, uow, input)
	if err != nil {
		return nil, err
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return tournament, nil
}

// CreateBatch is all-or-nothing: the first failing item aborts the batch
// and none of the previously staged items are committed.
func (s *tournamentService) CreateBatch(ctx context.Context, inputs []TournamentCreateInput) ([]models.Tournament, error) {
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

	created := make([]models.Tournament, 0, len(inputs))
	for _, input := range inputs {
		tournament, err := s.createOne(ctx, uow, input)
		if err != nil {
			s.logger.Warn("tournament batch create aborted",
				slog.String("title", input.Title), slog.Any("error", err))
			return nil, fmt.Errorf("%w: %v", ErrBatchAborted, err)
		}
		created = append(created, *tournament)
	}

	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *tournamentService) Update(ctx context.Context, input TournamentEditInput) (*models.Tournament, error) {
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	tournament, err := s.updateOne(ctx, uow, input)
	if err != nil {
		return nil, err
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) UpdateBatch(ctx context.Context, inputs []TournamentEditInput) ([]models.Tournament, error) {
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

	updated := make([]models.Tournament, 0, len(inputs))
	for _, input := range inputs {
		tournament, err := s.updateOne(ctx, uow, input)
		if err != nil {
			s.logger.Warn("tournament batch update aborted",
				slog.Int("id", input.ID), slog.Any("error", err))
			return nil, fmt.Errorf("%w: %v", ErrBatchAborted, err)
		}
		updated = append(updated, *tournament)
	}

	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *tournamentService) Patch(ctx context.Context, id int, patchDocument []byte) (*models.Tournament, error) {
	patch, err := jsonpatch.DecodePatch(patchDocument)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}

	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	current, err := uow.Tournaments().GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, err
	}
	patchedJSON, err := patch.Apply(currentJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}

	var patched models.Tournament
	if err := json.Unmarshal(patchedJSON, &patched); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPatchDocument, err)
	}
	if patched.ID != id {
		// Identity is immutable through a patch.
		return nil, fmt.Errorf("%w: id cannot be changed", ErrInvalidPatchDocument)
	}

	edit := TournamentEditInput{ID: patched.ID, Title: patched.Title, StartDate: patched.StartDate}
	if err := validateStruct(s.validate, edit); err != nil {
		return nil, err
	}

	if err := uow.Tournaments().Update(ctx, &patched); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return &patched, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) (*models.Tournament, error) {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	deleted, err := uow.Tournaments().Delete(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	if err := uow.Complete(); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *tournamentService) createOne(ctx context.Context, uow repositories.UnitOfWork, input TournamentCreateInput) (*models.Tournament, error) {
	// Title uniqueness is a resolver concern, checked here before the
	// insert rather than enforced by a store constraint.
	taken, err := uow.Tournaments().ExistsByTitle(ctx, input.Title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTournamentTitleTaken
	}

	tournament := &models.Tournament{
		ID:        input.ID,
		Title:     input.Title,
		StartDate: input.StartDate,
	}
	if err := uow.Tournaments().Create(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func (s *tournamentService) updateOne(ctx context.Context, uow repositories.UnitOfWork, input TournamentEditInput) (*models.Tournament, error) {
	tournament := &models.Tournament{
		ID:        input.ID,
		Title:     input.Title,
		StartDate: input.StartDate,
	}
	if err := uow.Tournaments().Update(ctx, tournament); err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return tournament, nil
}

func mapTournamentRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentIDConflict):
		return ErrTournamentIDConflict
	default:
		return err
	}
}
