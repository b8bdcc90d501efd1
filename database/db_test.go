package database

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviehub/internal/microservices/http-api/models"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", false)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := Open(DriverSQLite, dsn, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))

	for _, table := range []string{"directors", "actors", "genres", "movies", "movie_actors", "movie_genres", "users", "ratings", "reviews"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Rating{}, "idx_ratings_user_movie"))

	// running twice is a no-op
	require.NoError(t, Migrate(db))
}
