package services

import (
	"math"

	"gamelibrary/webapp/internal/models"
	"gamelibrary/webapp/internal/repository"
	"gamelibrary/webapp/pkg/apperrors"
)

// ReviewView is a review as shown on game and profile pages.
type ReviewView struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	GameID    int    `json:"game_id"`
	GameTitle string `json:"game_title"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func toReviewViews(repo repository.Repository, reviews []models.Review) []ReviewView {
	titles := make(map[int]string)
	out := make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		title, ok := titles[rv.GameID]
		if !ok {
			if rv.Game != nil {
				title = rv.Game.Title
			} else {
				title, _, _ = repo.GetTitleByID(rv.GameID)
			}
			titles[rv.GameID] = title
		}
		out = append(out, ReviewView{
			ID:        rv.ID,
			Username:  rv.Username,
			GameID:    rv.GameID,
			GameTitle: title,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
		})
	}
	return out
}

// AddReview stores a review by username for the game. A user may review a game once.
func AddReview(repo repository.Repository, username string, gameID, rating int, comment string) error {
	user, err := repo.GetUser(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnknownUser
	}
	game, err := repo.GetGameByID(gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	reviewed, err := UserAlreadyReviewedGame(repo, gameID, username)
	if err != nil {
		return err
	}
	if reviewed {
		return ErrAlreadyReviewed
	}

	review := models.NewReview(user, game, rating, comment)
	if err := review.Validate(); err != nil {
		return apperrors.BadRequest("Rating must be between 0 and 5", err)
	}
	return repo.AddReview(review)
}

func GetReviewsByUser(repo repository.Repository, username string) ([]ReviewView, error) {
	reviews, err := repo.GetReviewsByUser(username)
	if err != nil {
		return nil, err
	}
	return toReviewViews(repo, reviews), nil
}

func GetReviewsByGame(repo repository.Repository, gameID int) ([]ReviewView, error) {
	reviews, err := repo.GetReviewsByGame(gameID)
	if err != nil {
		return nil, err
	}
	return toReviewViews(repo, reviews), nil
}

// GetAverageRating is the mean rating rounded to two decimals, 0 when there are no reviews.
func GetAverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, rv := range reviews {
		total += rv.Rating
	}
	avg := float64(total) / float64(len(reviews))
	return math.Round(avg*100) / 100
}

func UserAlreadyReviewedGame(repo repository.Repository, gameID int, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	reviews, err := repo.GetReviewsByGameAndUser(gameID, username)
	if err != nil {
		return false, err
	}
	return len(reviews) > 0, nil
}

func GetRatedGamesForUser(repo repository.Repository, username string) ([]GameSummary, error) {
	games, err := repo.GetRatedGamesForUser(username)
	if err != nil {
		return nil, err
	}
	return summarize(games), nil
}
