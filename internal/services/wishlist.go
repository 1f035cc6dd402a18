package services

import (
	"gamelibrary/webapp/internal/repository"
)

// GetGameWishlist returns the user's wishlisted games in the order they were added.
// Ids that no longer resolve to a game are left out.
func GetGameWishlist(repo repository.Repository, username string) ([]GameSummary, error) {
	ids, err := repo.GetWishlist(username)
	if err != nil {
		return nil, err
	}
	out := make([]GameSummary, 0, len(ids))
	for _, id := range ids {
		game, err := repo.GetGameByID(id)
		if err != nil {
			return nil, err
		}
		if game != nil {
			out = append(out, NewGameSummary(game))
		}
	}
	return out, nil
}

func AddGameToWishlist(repo repository.Repository, username string, gameID int) error {
	game, err := repo.GetGameByID(gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	return repo.AddToWishlist(username, gameID)
}

func RemoveGameFromWishlist(repo repository.Repository, username string, gameID int) error {
	return repo.RemoveFromWishlist(username, gameID)
}

func IsInWishlist(repo repository.Repository, username string, gameID int) (bool, error) {
	ids, err := repo.GetWishlist(username)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == gameID {
			return true, nil
		}
	}
	return false, nil
}
