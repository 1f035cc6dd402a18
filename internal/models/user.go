package models

import (
	"errors"
	"fmt"
)

// User represents a registered user in the system.
type User struct {
	ID           uint   `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string `gorm:"column:username;size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password;size:255;not null"`
}

func (User) TableName() string { return "users" }

const (
	MinRating = 0
	MaxRating = 5
)

var ErrInvalidRating = errors.New("rating out of range")

// Review is a user's rating and comment on a game.
type Review struct {
	ID       uint   `gorm:"column:review_id;primaryKey;autoIncrement"`
	Comment  string `gorm:"column:comment;size:255;not null"`
	Rating   int    `gorm:"column:rating;not null"`
	GameID   int    `gorm:"column:game_id;index"`
	Username string `gorm:"column:username;size:255;index"`

	Game *Game `gorm:"foreignKey:GameID;references:ID"`
	User *User `gorm:"foreignKey:Username;references:Username"`
}

func (Review) TableName() string { return "reviews" }

// NewReview builds a review linking user and game.
func NewReview(user *User, game *Game, rating int, comment string) *Review {
	r := &Review{Rating: rating, Comment: comment, Game: game, User: user}
	if game != nil {
		r.GameID = game.ID
	}
	if user != nil {
		r.Username = user.Username
	}
	return r
}

// Validate checks the rating bounds.
func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("%w: %d", ErrInvalidRating, r.Rating)
	}
	return nil
}

// Wishlist is a row owned by a user; the games live in GameWishlist entries.
type Wishlist struct {
	ID       uint           `gorm:"column:wishlist_id;primaryKey;autoIncrement"`
	Username string         `gorm:"column:username;size:255;index"`
	User     *User          `gorm:"foreignKey:Username;references:Username"`
	Entries  []GameWishlist `gorm:"foreignKey:WishlistID;references:ID"`
}

func (Wishlist) TableName() string { return "wishlist" }

// GameWishlist associates a game with a wishlist row.
type GameWishlist struct {
	ID         uint `gorm:"column:id;primaryKey;autoIncrement"`
	GameID     int  `gorm:"column:game_id;index"`
	WishlistID uint `gorm:"column:wishlist_id;index"`

	Game     *Game     `gorm:"foreignKey:GameID;references:ID"`
	Wishlist *Wishlist `gorm:"foreignKey:WishlistID;references:ID"`
}

func (GameWishlist) TableName() string { return "game_wishlist" }
