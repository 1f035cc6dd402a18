package services

import (
	"gamelibrary/webapp/internal/repository"
)

// UserProfile is the public view of a user.
type UserProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// Activities is what the profile page lists for a user.
type Activities struct {
	Reviews    []ReviewView  `json:"reviews"`
	Wishlist   []GameSummary `json:"wishlist"`
	RatedGames []GameSummary `json:"rated_games"`
}

func GetUser(repo repository.Repository, username string) (*UserProfile, error) {
	user, err := repo.GetUser(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return &UserProfile{ID: user.ID, Username: user.Username}, nil
}

func GetUserActivities(repo repository.Repository, username string) (*Activities, error) {
	reviews, err := GetReviewsByUser(repo, username)
	if err != nil {
		return nil, err
	}
	wishlist, err := GetGameWishlist(repo, username)
	if err != nil {
		return nil, err
	}
	rated, err := GetRatedGamesForUser(repo, username)
	if err != nil {
		return nil, err
	}
	return &Activities{Reviews: reviews, Wishlist: wishlist, RatedGames: rated}, nil
}
