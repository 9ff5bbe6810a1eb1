package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bluecup/internal/common"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/storetest"
)

func TestSQLite_Lifecycle(t *testing.T) {
	db := storetest.NewSQLite(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO "user" (email, password_hash) VALUES ('a@b.c', 'x')`)
	require.NoError(t, err)
	var userID int64
	require.NoError(t, db.QueryRowContext(ctx, `SELECT id FROM "user" WHERE email = 'a@b.c'`).Scan(&userID))

	repo := NewSQLiteRepository(db)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	require.NoError(t, repo.Create(ctx, &models.Session{ID: "sid-1", UserID: userID, Expires: expires}))

	got, err := repo.Find(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, got.Expires.Equal(expires), "expires %v != %v", got.Expires, expires)

	require.NoError(t, repo.Delete(ctx, "sid-1"))
	_, err = repo.Find(ctx, "sid-1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, repo.Delete(ctx, "sid-1"), "deleting twice is not an error")
}

func TestSQLite_CreateRequiresUser(t *testing.T) {
	repo := NewSQLiteRepository(storetest.NewSQLite(t))

	err := repo.Create(context.Background(), &models.Session{ID: "sid-x", UserID: 999, Expires: time.Now()})
	require.Error(t, err)
}
