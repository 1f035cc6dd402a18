// Package repository defines the storage contract for the game library and its
// two implementations: an in-memory store and a GORM-backed store.
//
// Lookups by id or username that miss return a nil/empty result and a nil error;
// errors are reserved for storage faults.
package repository

import (
	"context"
	"errors"

	"gamelibrary/webapp/internal/models"
)

// ErrDuplicateUsername is returned by AddUser when the username is taken.
var ErrDuplicateUsername = errors.New("username already exists")

// Repository is the persistence contract used by the service layer.
type Repository interface {
	// Catalog
	AddGame(game *models.Game) error
	AddMultipleGames(games []models.Game) error
	GetGames() ([]models.Game, error)
	GetGameByID(id int) (*models.Game, error)
	GetNumberOfGames() (int64, error)
	SearchGames(query string) ([]models.Game, error)
	GetGamesByGenre(genreName string) ([]models.Game, error)

	GetTitleByID(id int) (string, bool, error)
	GetDateByID(id int) (string, bool, error)
	GetDescriptionByID(id int) (string, bool, error)
	GetURLByID(id int) (string, bool, error)
	GetImageURLByID(id int) (string, bool, error)
	GetPriceByID(id int) (float64, bool, error)

	AddGenre(genre models.Genre) error
	AddMultipleGenres(genres []models.Genre) error
	GetAllGenres() ([]models.Genre, error)

	AddPublisher(publisher models.Publisher) error
	AddMultiplePublishers(publishers []models.Publisher) error
	GetPublishers() ([]models.Publisher, error)

	// Users
	AddUser(user *models.User) error
	GetUser(username string) (*models.User, error)

	// Reviews
	AddReview(review *models.Review) error
	GetReviewsByUser(username string) ([]models.Review, error)
	GetReviewsByGame(gameID int) ([]models.Review, error)
	GetReviewsByGameAndUser(gameID int, username string) ([]models.Review, error)
	GetRatedGamesForUser(username string) ([]models.Game, error)

	// Wishlist
	GetWishlist(username string) ([]int, error)
	AddToWishlist(username string, gameID int) error
	RemoveFromWishlist(username string, gameID int) error
}

// Store hands out a Repository scoped to one unit of work, usually one HTTP request.
// The returned release func must be called exactly once when the work is done.
type Store interface {
	Session(ctx context.Context) (Repository, func(), error)
}
