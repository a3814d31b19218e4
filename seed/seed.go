package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/repositories"
)

const (
	tournamentCount = 2
	gameCount       = 10
)

// Seeder populates an empty store with generated sample data so the API
// is usable straight after startup in development.
type Seeder struct {
	uowFactory repositories.UnitOfWorkFactory
	faker      *gofakeit.Faker
	logger     *slog.Logger
}

func New(uowFactory repositories.UnitOfWorkFactory, logger *slog.Logger) *Seeder {
	return &Seeder{
		uowFactory: uowFactory,
		faker:      gofakeit.New(0),
		logger:     logger,
	}
}

// Run seeds tournaments and games in one transaction. A store that
// already holds tournaments is left untouched.
func (s *Seeder) Run(ctx context.Context) error {
	uow, err := s.uowFactory.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Release()

	existing, err := uow.Tournaments().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("seed precheck failed: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("seed skipped, store already has data",
			slog.Int("tournaments", len(existing)))
		return nil
	}

	tournamentIDs := make([]int, 0, tournamentCount)
	for i := 1; i <= tournamentCount; i++ {
		start := s.faker.DateRange(
			time.Now().AddDate(0, -1, 0),
			time.Now().AddDate(0, 2, 0),
		)
		tournament := &models.Tournament{
			Title:     fmt.Sprintf("Tournament-%d", i),
			StartDate: models.NewDate(start.Year(), start.Month(), start.Day()),
		}
		if err := uow.Tournaments().Create(ctx, tournament); err != nil {
			return fmt.Errorf("seed tournament %d: %w", i, err)
		}
		tournamentIDs = append(tournamentIDs, tournament.ID)
	}

	for i := 1; i <= gameCount; i++ {
		game := &models.Game{
			Title: fmt.Sprintf("Game-%d", i),
			StartTime: s.faker.DateRange(
				time.Now(),
				time.Now().AddDate(0, 3, 0),
			),
			TournamentID: tournamentIDs[s.faker.Number(0, len(tournamentIDs)-1)],
		}
		if err := uow.Games().Create(ctx, game); err != nil {
			return fmt.Errorf("seed game %d: %w", i, err)
		}
	}

	if err := uow.Complete(); err != nil {
		return err
	}
	s.logger.Info("seed completed",
		slog.Int("tournaments", tournamentCount),
		slog.Int("games", gameCount))
	return nil
}
