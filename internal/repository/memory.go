package repository

import (
	"context"
	"strings"
	"sync"

	"gamelibrary/webapp/internal/models"

	"go.uber.org/zap"
)

// MemoryRepository keeps everything in slices and scans them linearly.
// It does no locking of its own; use MemoryStore to serialize callers.
type MemoryRepository struct {
	games      []models.Game
	genres     []models.Genre
	publishers []models.Publisher
	users      []models.User
	reviews    []models.Review
	wishlists  map[string][]int

	log *zap.Logger
}

func NewMemoryRepository(log *zap.Logger) *MemoryRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemoryRepository{
		wishlists: make(map[string][]int),
		log:       log.With(zap.String("repository", "memory")),
	}
}

// region --- Games ---

// AddGame inserts the game, or replaces the stored game with the same id in place.
func (r *MemoryRepository) AddGame(game *models.Game) error {
	if game == nil {
		return nil
	}
	if game.Publisher != nil {
		r.addPublisher(*game.Publisher)
	}
	for _, genre := range game.Genres {
		r.addGenre(genre)
	}
	if i := r.indexOfGame(game.ID); i >= 0 {
		r.games[i] = *game
		return nil
	}
	r.games = append(r.games, *game)
	return nil
}

func (r *MemoryRepository) AddMultipleGames(games []models.Game) error {
	for i := range games {
		if err := r.AddGame(&games[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) GetGames() ([]models.Game, error) {
	out := make([]models.Game, len(r.games))
	copy(out, r.games)
	return out, nil
}

func (r *MemoryRepository) GetGameByID(id int) (*models.Game, error) {
	return r.findGame(id), nil
}

func (r *MemoryRepository) GetNumberOfGames() (int64, error) {
	return int64(len(r.games)), nil
}

func (r *MemoryRepository) SearchGames(query string) ([]models.Game, error) {
	q := strings.ToLower(query)
	out := []models.Game{}
	for _, g := range r.games {
		if strings.Contains(strings.ToLower(g.Title), q) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetGamesByGenre(genreName string) ([]models.Game, error) {
	out := []models.Game{}
	for i := range r.games {
		if r.games[i].HasGenre(genreName) {
			out = append(out, r.games[i])
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetTitleByID(id int) (string, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.Title, true, nil
	}
	return "", false, nil
}

func (r *MemoryRepository) GetDateByID(id int) (string, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.ReleaseDate, true, nil
	}
	return "", false, nil
}

func (r *MemoryRepository) GetDescriptionByID(id int) (string, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.Description, true, nil
	}
	return "", false, nil
}

func (r *MemoryRepository) GetURLByID(id int) (string, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.WebsiteURL, true, nil
	}
	return "", false, nil
}

func (r *MemoryRepository) GetImageURLByID(id int) (string, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.ImageURL, true, nil
	}
	return "", false, nil
}

func (r *MemoryRepository) GetPriceByID(id int) (float64, bool, error) {
	if g := r.findGame(id); g != nil {
		return g.Price, true, nil
	}
	return 0, false, nil
}

func (r *MemoryRepository) indexOfGame(id int) int {
	for i := range r.games {
		if r.games[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepository) findGame(id int) *models.Game {
	i := r.indexOfGame(id)
	if i < 0 {
		r.log.Debug("game not found", zap.Int("game_id", id))
		return nil
	}
	g := r.games[i]
	return &g
}

// endregion

// region --- Genres & publishers ---

func (r *MemoryRepository) AddGenre(genre models.Genre) error {
	r.addGenre(genre)
	return nil
}

func (r *MemoryRepository) AddMultipleGenres(genres []models.Genre) error {
	for _, g := range genres {
		r.addGenre(g)
	}
	return nil
}

func (r *MemoryRepository) GetAllGenres() ([]models.Genre, error) {
	out := make([]models.Genre, len(r.genres))
	copy(out, r.genres)
	return out, nil
}

func (r *MemoryRepository) addGenre(genre models.Genre) {
	if genre.Name == "" {
		return
	}
	for _, g := range r.genres {
		if g.Name == genre.Name {
			return
		}
	}
	r.genres = append(r.genres, genre)
}

func (r *MemoryRepository) AddPublisher(publisher models.Publisher) error {
	r.addPublisher(publisher)
	return nil
}

func (r *MemoryRepository) AddMultiplePublishers(publishers []models.Publisher) error {
	for _, p := range publishers {
		r.addPublisher(p)
	}
	return nil
}

func (r *MemoryRepository) GetPublishers() ([]models.Publisher, error) {
	out := make([]models.Publisher, len(r.publishers))
	copy(out, r.publishers)
	return out, nil
}

func (r *MemoryRepository) addPublisher(publisher models.Publisher) {
	if publisher.Name == "" {
		return
	}
	for _, p := range r.publishers {
		if p.Name == publisher.Name {
			return
		}
	}
	r.publishers = append(r.publishers, publisher)
}

// endregion

// region --- Users ---

func (r *MemoryRepository) AddUser(user *models.User) error {
	if existing, _ := r.GetUser(user.Username); existing != nil {
		return ErrDuplicateUsername
	}
	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryRepository) GetUser(username string) (*models.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			u := r.users[i]
			return &u, nil
		}
	}
	r.log.Debug("user not found", zap.String("username", username))
	return nil, nil
}

// endregion

// region --- Reviews ---

// AddReview appends the review. Game and user references are not checked.
func (r *MemoryRepository) AddReview(review *models.Review) error {
	if review.Game != nil {
		review.GameID = review.Game.ID
	}
	if review.User != nil {
		review.Username = review.User.Username
	}
	review.ID = uint(len(r.reviews) + 1)
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *MemoryRepository) GetReviewsByUser(username string) ([]models.Review, error) {
	return r.filterReviews(func(rv *models.Review) bool { return rv.Username == username }), nil
}

func (r *MemoryRepository) GetReviewsByGame(gameID int) ([]models.Review, error) {
	return r.filterReviews(func(rv *models.Review) bool { return rv.GameID == gameID }), nil
}

func (r *MemoryRepository) GetReviewsByGameAndUser(gameID int, username string) ([]models.Review, error) {
	return r.filterReviews(func(rv *models.Review) bool {
		return rv.GameID == gameID && rv.Username == username
	}), nil
}

// GetRatedGamesForUser returns each game the user reviewed once, in review order.
// A review whose game id has no stored game falls back to the game it was written with.
func (r *MemoryRepository) GetRatedGamesForUser(username string) ([]models.Game, error) {
	seen := make(map[int]bool)
	out := []models.Game{}
	for i := range r.reviews {
		rv := &r.reviews[i]
		if rv.Username != username || seen[rv.GameID] {
			continue
		}
		seen[rv.GameID] = true
		if j := r.indexOfGame(rv.GameID); j >= 0 {
			out = append(out, r.games[j])
		} else if rv.Game != nil {
			out = append(out, *rv.Game)
		}
	}
	return out, nil
}

func (r *MemoryRepository) filterReviews(keep func(*models.Review) bool) []models.Review {
	out := []models.Review{}
	for i := range r.reviews {
		if keep(&r.reviews[i]) {
			out = append(out, r.reviews[i])
		}
	}
	return out
}

// endregion

// region --- Wishlist ---

func (r *MemoryRepository) GetWishlist(username string) ([]int, error) {
	ids := r.wishlists[username]
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}

// AddToWishlist is idempotent: a game id appears at most once per user.
func (r *MemoryRepository) AddToWishlist(username string, gameID int) error {
	for _, id := range r.wishlists[username] {
		if id == gameID {
			return nil
		}
	}
	r.wishlists[username] = append(r.wishlists[username], gameID)
	return nil
}

func (r *MemoryRepository) RemoveFromWishlist(username string, gameID int) error {
	ids := r.wishlists[username]
	for i, id := range ids {
		if id == gameID {
			r.wishlists[username] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

// endregion

// MemoryStore serializes access to a MemoryRepository: a session holds the lock
// until it is released.
type MemoryStore struct {
	mu   sync.Mutex
	repo *MemoryRepository
}

func NewMemoryStore(repo *MemoryRepository) *MemoryStore {
	return &MemoryStore{repo: repo}
}

func (s *MemoryStore) Session(ctx context.Context) (Repository, func(), error) {
	s.mu.Lock()
	return s.repo, s.mu.Unlock, nil
}
