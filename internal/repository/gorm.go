package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamelibrary/webapp/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore opens one database session per unit of work.
type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGormStore(db *gorm.DB, log *zap.Logger) *GormStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &GormStore{db: db, log: log.With(zap.String("repository", "gorm"))}
}

// Session pins a pooled connection for the lifetime of the unit of work and binds
// ctx to every query. Releasing the session returns the connection to the pool;
// a transaction still open on it at that point is rolled back by database/sql.
func (s *GormStore) Session(ctx context.Context) (Repository, func(), error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("open session: %w", err)
	}

	tx := s.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = conn

	release := func() {
		if err := conn.Close(); err != nil {
			s.log.Warn("failed to release session", zap.Error(err))
		}
	}
	return &gormRepository{db: tx, log: s.log}, release, nil
}

// Repository returns a repository on the shared pool, for callers outside a request
// such as the catalog importer.
func (s *GormStore) Repository() Repository {
	return &gormRepository{db: s.db.Session(&gorm.Session{NewDB: true}), log: s.log}
}

type gormRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// region --- Games ---

func (r *gormRepository) AddGame(game *models.Game) error {
	if game == nil {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return mergeGame(tx, game)
	})
}

// AddMultipleGames merges every game in one transaction.
func (r *gormRepository) AddMultipleGames(games []models.Game) error {
	if len(games) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range games {
			if err := mergeGame(tx, &games[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// mergeGame upserts the game row by primary key, makes sure its publisher exists
// and replaces its genre links.
func mergeGame(tx *gorm.DB, game *models.Game) error {
	if game.Publisher != nil && game.Publisher.Name != "" {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(game.Publisher).Error; err != nil {
			return fmt.Errorf("merge publisher %q: %w", game.Publisher.Name, err)
		}
		game.SetPublisher(game.Publisher)
	}

	if err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(game).Error; err != nil {
		return fmt.Errorf("merge game %d: %w", game.ID, err)
	}

	association := tx.Model(game).Association("Genres")
	if len(game.Genres) == 0 {
		if err := association.Clear(); err != nil {
			return fmt.Errorf("clear genres for game %d: %w", game.ID, err)
		}
		return nil
	}
	if err := association.Replace(game.Genres); err != nil {
		return fmt.Errorf("replace genres for game %d: %w", game.ID, err)
	}
	return nil
}

func (r *gormRepository) GetGames() ([]models.Game, error) {
	var games []models.Game
	if err := r.withCatalog().Order("game_id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("get games: %w", err)
	}
	return games, nil
}

func (r *gormRepository) GetGameByID(id int) (*models.Game, error) {
	var game models.Game
	err := r.withCatalog().Where("game_id = ?", id).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Debug("game not found", zap.Int("game_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game %d: %w", id, err)
	}
	return &game, nil
}

func (r *gormRepository) GetNumberOfGames() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Game{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return total, nil
}

// SearchGames matches titles in Go rather than with LIKE, so the query is a literal
// substring and case folding covers non-ASCII letters on every driver.
func (r *gormRepository) SearchGames(query string) ([]models.Game, error) {
	var titles []struct {
		ID    int    `gorm:"column:game_id"`
		Title string `gorm:"column:game_title"`
	}
	if err := r.db.Model(&models.Game{}).Select("game_id", "game_title").Order("game_id").Find(&titles).Error; err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}

	q := strings.ToLower(query)
	ids := make([]int, 0)
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t.Title), q) {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return []models.Game{}, nil
	}

	var games []models.Game
	if err := r.withCatalog().Where("game_id IN ?", ids).Order("game_id").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return games, nil
}

func (r *gormRepository) GetGamesByGenre(genreName string) ([]models.Game, error) {
	var games []models.Game
	err := r.withCatalog().
		Joins("JOIN game_genres ON game_genres.game_id = games.game_id").
		Where("game_genres.genre_name = ?", genreName).
		Order("games.game_id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("get games by genre %q: %w", genreName, err)
	}
	return games, nil
}

func (r *gormRepository) GetTitleByID(id int) (string, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return "", false, err
	}
	return g.Title, true, nil
}

func (r *gormRepository) GetDateByID(id int) (string, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return "", false, err
	}
	return g.ReleaseDate, true, nil
}

func (r *gormRepository) GetDescriptionByID(id int) (string, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return "", false, err
	}
	return g.Description, true, nil
}

func (r *gormRepository) GetURLByID(id int) (string, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return "", false, err
	}
	return g.WebsiteURL, true, nil
}

func (r *gormRepository) GetImageURLByID(id int) (string, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return "", false, err
	}
	return g.ImageURL, true, nil
}

func (r *gormRepository) GetPriceByID(id int) (float64, bool, error) {
	g, err := r.GetGameByID(id)
	if g == nil || err != nil {
		return 0, false, err
	}
	return g.Price, true, nil
}

func (r *gormRepository) withCatalog() *gorm.DB {
	return r.db.Preload("Publisher").Preload("Genres", func(db *gorm.DB) *gorm.DB {
		return db.Order("genres.genre_name")
	})
}

// endregion

// region --- Genres & publishers ---

func (r *gormRepository) AddGenre(genre models.Genre) error {
	return r.AddMultipleGenres([]models.Genre{genre})
}

func (r *gormRepository) AddMultipleGenres(genres []models.Genre) error {
	genres = nonEmptyGenres(genres)
	if len(genres) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error; err != nil {
			return fmt.Errorf("merge genres: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) GetAllGenres() ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.Order("genre_name").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return genres, nil
}

func (r *gormRepository) AddPublisher(publisher models.Publisher) error {
	return r.AddMultiplePublishers([]models.Publisher{publisher})
}

func (r *gormRepository) AddMultiplePublishers(publishers []models.Publisher) error {
	publishers = nonEmptyPublishers(publishers)
	if len(publishers) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&publishers).Error; err != nil {
			return fmt.Errorf("merge publishers: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) GetPublishers() ([]models.Publisher, error) {
	var publishers []models.Publisher
	if err := r.db.Order("name").Find(&publishers).Error; err != nil {
		return nil, fmt.Errorf("get publishers: %w", err)
	}
	return publishers, nil
}

// nonEmptyGenres drops blank and repeated names, which would break a batch insert.
func nonEmptyGenres(in []models.Genre) []models.Genre {
	seen := make(map[string]bool, len(in))
	out := make([]models.Genre, 0, len(in))
	for _, g := range in {
		if g.Name == "" || seen[g.Name] {
			continue
		}
		seen[g.Name] = true
		out = append(out, g)
	}
	return out
}

func nonEmptyPublishers(in []models.Publisher) []models.Publisher {
	seen := make(map[string]bool, len(in))
	out := make([]models.Publisher, 0, len(in))
	for _, p := range in {
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		out = append(out, p)
	}
	return out
}

// endregion

// region --- Users ---

func (r *gormRepository) AddUser(user *models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where("username = ?", user.Username).Count(&existing).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateUsername
		}
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) GetUser(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Debug("user not found", zap.String("username", username))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}
	return &user, nil
}

// endregion

// region --- Reviews ---

func (r *gormRepository) AddReview(review *models.Review) error {
	if review.Game != nil {
		review.GameID = review.Game.ID
	}
	if review.User != nil {
		review.Username = review.User.Username
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
}

func (r *gormRepository) GetReviewsByUser(username string) ([]models.Review, error) {
	return r.findReviews("username = ?", username)
}

func (r *gormRepository) GetReviewsByGame(gameID int) ([]models.Review, error) {
	return r.findReviews("game_id = ?", gameID)
}

func (r *gormRepository) GetReviewsByGameAndUser(gameID int, username string) ([]models.Review, error) {
	return r.findReviews("game_id = ? AND username = ?", gameID, username)
}

func (r *gormRepository) findReviews(query string, args ...interface{}) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Game").Preload("User").
		Where(query, args...).
		Order("review_id").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	return reviews, nil
}

// GetRatedGamesForUser returns each game the user reviewed once, in review order.
func (r *gormRepository) GetRatedGamesForUser(username string) ([]models.Game, error) {
	var reviewed []int
	if err := r.db.Model(&models.Review{}).
		Where("username = ?", username).
		Order("review_id").
		Pluck("game_id", &reviewed).Error; err != nil {
		return nil, fmt.Errorf("get rated games for %q: %w", username, err)
	}
	if len(reviewed) == 0 {
		return []models.Game{}, nil
	}

	var games []models.Game
	if err := r.withCatalog().Where("game_id IN ?", reviewed).Find(&games).Error; err != nil {
		return nil, fmt.Errorf("get rated games for %q: %w", username, err)
	}
	byID := make(map[int]models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	out := make([]models.Game, 0, len(games))
	for _, id := range reviewed {
		if g, ok := byID[id]; ok {
			out = append(out, g)
			delete(byID, id)
		}
	}
	return out, nil
}

// endregion

// region --- Wishlist ---

func (r *gormRepository) GetWishlist(username string) ([]int, error) {
	ids := []int{}
	err := r.db.Model(&models.GameWishlist{}).
		Joins("JOIN wishlist ON wishlist.wishlist_id = game_wishlist.wishlist_id").
		Where("wishlist.username = ?", username).
		Order("game_wishlist.id").
		Pluck("game_wishlist.game_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("get wishlist for %q: %w", username, err)
	}
	return ids, nil
}

// AddToWishlist records a new wishlist row and entry on every call; unlike the
// in-memory store it does not skip games already on the list.
func (r *gormRepository) AddToWishlist(username string, gameID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		wishlist := models.Wishlist{Username: username}
		if err := tx.Omit(clause.Associations).Create(&wishlist).Error; err != nil {
			return fmt.Errorf("create wishlist: %w", err)
		}
		entry := models.GameWishlist{GameID: gameID, WishlistID: wishlist.ID}
		if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
			return fmt.Errorf("add game %d to wishlist: %w", gameID, err)
		}
		return nil
	})
}

// RemoveFromWishlist deletes every entry for the game in the user's wishlist rows.
func (r *gormRepository) RemoveFromWishlist(username string, gameID int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Wishlist{}).Select("wishlist_id").Where("username = ?", username)
		err := tx.Where("game_id = ? AND wishlist_id IN (?)", gameID, owned).
			Delete(&models.GameWishlist{}).Error
		if err != nil {
			return fmt.Errorf("remove game %d from wishlist: %w", gameID, err)
		}
		return nil
	})
}

// endregion
