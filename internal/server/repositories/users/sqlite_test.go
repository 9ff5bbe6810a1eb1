package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bluecup/internal/common"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/storetest"
)

func TestSQLite_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRepository(storetest.NewSQLite(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Email: "alice@example.com", PasswordHash: "hash", HomeClub: "Blue"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.Equal(t, "", byEmail.County)
	assert.Equal(t, "Blue", byEmail.HomeClub)
	assert.False(t, byEmail.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	repo := NewSQLiteRepository(storetest.NewSQLite(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "dup@example.com", PasswordHash: "h2"})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(storetest.NewSQLite(t))
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "ghost@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetByID(ctx, 404)
	require.ErrorIs(t, err, common.ErrorNotFound)
}
