package importer

import (
	"fmt"

	"gamelibrary/webapp/internal/repository"

	"go.uber.org/zap"
)

// Stats summarizes one import run.
type Stats struct {
	Games      int
	Genres     int
	Publishers int
	Skipped    int
}

// Populate reads the dataset at path and merges it into repo: publishers first,
// then genres, then games. Running it twice leaves the catalog unchanged.
func Populate(repo repository.Repository, path string, log *zap.Logger) (Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	reader := NewCSVReader(log)
	if err := reader.ReadFile(path); err != nil {
		return Stats{}, err
	}

	if err := repo.AddMultiplePublishers(reader.Publishers()); err != nil {
		return Stats{}, fmt.Errorf("add publishers: %w", err)
	}
	if err := repo.AddMultipleGenres(reader.Genres()); err != nil {
		return Stats{}, fmt.Errorf("add genres: %w", err)
	}
	if err := repo.AddMultipleGames(reader.Games()); err != nil {
		return Stats{}, fmt.Errorf("add games: %w", err)
	}

	stats := Stats{
		Games:      len(reader.Games()),
		Genres:     len(reader.Genres()),
		Publishers: len(reader.Publishers()),
		Skipped:    reader.Skipped(),
	}
	log.Info("catalog imported",
		zap.String("path", path),
		zap.Int("games", stats.Games),
		zap.Int("genres", stats.Genres),
		zap.Int("publishers", stats.Publishers),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}
