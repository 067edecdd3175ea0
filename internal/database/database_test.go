package database

import (
	"context"
	"testing"

	"yatube/internal/config"
	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", ":memory:?_foreign_keys=on"},
		{":memory:", ":memory:?_foreign_keys=on"},
		{"yatube.db", "yatube.db?_foreign_keys=on"},
		{"file:yatube.db?cache=shared", "file:yatube.db?cache=shared&_foreign_keys=on"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLiteDSN(tt.path))
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "5432", DBUser: "yatube", DBPassword: "pw", DBName: "yatube"}
	assert.Equal(t, "host=db port=5432 user=yatube password=pw dbname=yatube sslmode=disable", PostgresDSN(cfg))

	cfg.DBSSLMode = "require"
	assert.Contains(t, PostgresDSN(cfg), "sslmode=require")
}

func TestConnect_Errors(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "mysql"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")

	_, err = Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", DBSchemaMode: "magic"})
	assert.ErrorContains(t, err, "unsupported DB_SCHEMA_MODE")
}

func TestPersistentModels_ParentsFirst(t *testing.T) {
	ms := PersistentModels()
	require.Len(t, ms, 3)
	assert.IsType(t, &models.User{}, ms[0])
	assert.IsType(t, &models.Group{}, ms[1])
	assert.IsType(t, &models.Post{}, ms[2])
}

func TestSchemaModes_EnforceReferentialActions(t *testing.T) {
	for _, mode := range []string{SchemaModeAuto, SchemaModeSQL} {
		t.Run(mode, func(t *testing.T) {
			db, err := Connect(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", DBSchemaMode: mode})
			require.NoError(t, err)
			t.Cleanup(func() { closeDB(t, db) })

			author := models.User{Username: "leo", Password: "x"}
			require.NoError(t, db.Create(&author).Error)
			group := models.Group{Title: "Cats", Slug: "cats", Description: "About cats"}
			require.NoError(t, db.Create(&group).Error)
			post := models.Post{Text: "Hello cats", AuthorID: author.ID, GroupID: &group.ID}
			require.NoError(t, db.Create(&post).Error)

			require.NoError(t, db.Exec(`DELETE FROM "groups" WHERE id = ?`, group.ID).Error)
			var reloaded models.Post
			require.NoError(t, db.First(&reloaded, post.ID).Error)
			assert.Nil(t, reloaded.GroupID, "deleting a group keeps its posts")

			require.NoError(t, db.Exec(`DELETE FROM users WHERE id = ?`, author.ID).Error)
			var count int64
			require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
			assert.Zero(t, count, "deleting a user removes their posts")
		})
	}
}

func TestMigrateDownAndUp(t *testing.T) {
	db, err := OpenSQLite(SQLiteDSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { closeDB(t, db) })
	ctx := context.Background()

	require.NoError(t, MigrateUp(ctx, db))
	version, err := MigrationVersion(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, version)

	require.NoError(t, MigrateDown(ctx, db))
	version, err = MigrationVersion(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.False(t, db.Migrator().HasTable("posts"))

	require.NoError(t, MigrateUp(ctx, db))
	assert.True(t, db.Migrator().HasTable("posts"))
	require.NoError(t, MigrateStatus(ctx, db))
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	_ = sqlDB.Close()
}
