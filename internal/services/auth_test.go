package services

import (
	"testing"

	"gamelibrary/webapp/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUser(t *testing.T) {
	repo := repository.NewMemoryRepository(nil)

	require.NoError(t, AddUser(repo, "alice", "Passw0rdX"))

	user, err := repo.GetUser("alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "Passw0rdX", user.PasswordHash)

	err = AddUser(repo, "alice", "0therPassword")
	assert.ErrorIs(t, err, ErrNameNotUnique)
}

func TestAuthenticateUser(t *testing.T) {
	repo := repository.NewMemoryRepository(nil)
	require.NoError(t, AddUser(repo, "alice", "Passw0rdX"))

	profile, err := AuthenticateUser(repo, "alice", "Passw0rdX")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	_, err = AuthenticateUser(repo, "bob", "Passw0rdX")
	assert.ErrorIs(t, err, ErrUnknownUser)
	assert.NotErrorIs(t, err, ErrAuthentication)

	_, err = AuthenticateUser(repo, "alice", "wrong")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.NotErrorIs(t, err, ErrUnknownUser)
}

func TestGetUserAndActivities(t *testing.T) {
	repo := seededRepo(t)
	registered(t, repo, "alice")
	require.NoError(t, AddReview(repo, "alice", 2, 5, "fast"))
	require.NoError(t, AddGameToWishlist(repo, "alice", 3))

	profile, err := GetUser(repo, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)

	_, err = GetUser(repo, "nobody")
	assert.ErrorIs(t, err, ErrUnknownUser)

	activities, err := GetUserActivities(repo, "alice")
	require.NoError(t, err)
	require.Len(t, activities.Reviews, 1)
	assert.Equal(t, "Bullet Train", activities.Reviews[0].GameTitle)
	require.Len(t, activities.Wishlist, 1)
	assert.Equal(t, 3, activities.Wishlist[0].ID)
	require.Len(t, activities.RatedGames, 1)
	assert.Equal(t, 2, activities.RatedGames[0].ID)
}
