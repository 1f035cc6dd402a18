package services

import (
	"testing"

	"gamelibrary/webapp/internal/models"
	"gamelibrary/webapp/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAverageRating(t *testing.T) {
	assert.Zero(t, GetAverageRating(nil))
	assert.Equal(t, 4.0, GetAverageRating([]models.Review{{Rating: 4}, {Rating: 5}, {Rating: 3}}))
	assert.Equal(t, 3.67, GetAverageRating([]models.Review{{Rating: 4}, {Rating: 4}, {Rating: 3}}))
}

func TestAddReview(t *testing.T) {
	repo := seededRepo(t)
	registered(t, repo, "alice")

	require.NoError(t, AddReview(repo, "alice", 1, 5, "great"))

	err := AddReview(repo, "alice", 1, 3, "second thoughts")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	err = AddReview(repo, "alice", 2, 6, "off the scale")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeBadRequest))

	assert.ErrorIs(t, AddReview(repo, "mallory", 1, 3, "x"), ErrUnknownUser)
	assert.ErrorIs(t, AddReview(repo, "alice", 404, 3, "x"), ErrGameNotFound)

	reviews, err := GetReviewsByGame(repo, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, ReviewView{ID: reviews[0].ID, Username: "alice", GameID: 1, GameTitle: "Call of Duty", Rating: 5, Comment: "great"}, reviews[0])
}

func TestUserAlreadyReviewedGame(t *testing.T) {
	repo := seededRepo(t)
	registered(t, repo, "alice")
	require.NoError(t, AddReview(repo, "alice", 2, 2, "meh"))

	ok, err := UserAlreadyReviewedGame(repo, 2, "alice")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = UserAlreadyReviewedGame(repo, 1, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = UserAlreadyReviewedGame(repo, 2, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRatedGamesForUser(t *testing.T) {
	repo := seededRepo(t)
	registered(t, repo, "alice")
	require.NoError(t, AddReview(repo, "alice", 3, 4, "fun"))
	require.NoError(t, AddReview(repo, "alice", 1, 2, "loud"))

	games, err := GetRatedGamesForUser(repo, "alice")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 3, games[0].ID)
	assert.Equal(t, 1, games[1].ID)
}
