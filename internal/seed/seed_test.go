package seed

import (
	"context"
	"testing"
	"time"

	"yatube/internal/database"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	service.PasswordCost = bcrypt.MinCost
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(database.SQLiteDSN(":memory:"))
	require.NoError(t, err)
	require.NoError(t, database.ApplySchema(context.Background(), db, database.SchemaModeAuto))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRun(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	res, err := Run(ctx, db, Options{Users: 3, Groups: 2, PostsPerUser: 4, MaxDays: 7, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 3, Groups: 2, Posts: 12}, res)

	assert.Equal(t, int64(3), count(t, db, &models.User{}))
	assert.Equal(t, int64(2), count(t, db, &models.Group{}))
	assert.Equal(t, int64(12), count(t, db, &models.Post{}))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	oldest := time.Now().Add(-8 * 24 * time.Hour)
	for _, p := range posts {
		assert.NotEmpty(t, p.Text)
		assert.True(t, p.PubDate.After(oldest), "publication dates stay within MaxDays")
	}

	var groups []models.Group
	require.NoError(t, db.Find(&groups).Error)
	for _, g := range groups {
		assert.NoError(t, g.Validate(), "generated slugs are URL safe")
	}
}

func TestRun_AccountsCanLogIn(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db, Options{Users: 1, Seed: 7})
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)

	users := service.NewUserService(repository.NewUserRepository(db))
	got, err := users.Authenticate(ctx, user.Username, DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRun_Clean(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db, Options{Users: 2, Groups: 1, PostsPerUser: 2, Seed: 1})
	require.NoError(t, err)

	res, err := Run(ctx, db, Options{Users: 1, PostsPerUser: 1, Clean: true, Seed: 2})
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 1, Posts: 1}, res)
	assert.Equal(t, int64(1), count(t, db, &models.User{}))
	assert.Equal(t, int64(0), count(t, db, &models.Group{}))
	assert.Equal(t, int64(1), count(t, db, &models.Post{}))
}
