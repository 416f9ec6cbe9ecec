package db_test

import (
	"context"
	"os"
	"testing"
	"time"

	"news_builder/internal/db"
	"news_builder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	connString := os.Getenv("NEWS_TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("NEWS_TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS news_archive, news_runs CASCADE;`)
	require.NoError(t, err)

	return pool
}

func result(updatedAt string, links ...string) *models.AggregateResult {
	res := &models.AggregateResult{UpdatedAt: updatedAt, HoursWindow: 168}
	for _, l := range links {
		res.Items = append(res.Items, models.PublishedItem{
			Category: "Deporte",
			Title:    "Title " + l,
			Link:     l,
			Source:   "Google News",
			PubDate:  "Fri, 16 Oct 2026 10:00:00 GMT",
		})
	}
	return res
}

func TestSaveResult(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	database := &db.Database{Pool: pool}
	ctx := context.Background()
	require.NoError(t, database.EnsureSchema(ctx))

	t.Run("first run", func(t *testing.T) {
		id, err := database.SaveResult(ctx, result("2026-10-16T12:00:00.000Z", "https://x/1", "https://x/2"))
		require.NoError(t, err)
		require.Equal(t, 1, id)
	})

	t.Run("second run updates last_seen", func(t *testing.T) {
		id, err := database.SaveResult(ctx, result("2026-10-17T12:00:00.000Z", "https://x/2", "https://x/3"))
		require.NoError(t, err)
		require.Equal(t, 2, id)

		var count int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM news_archive`).Scan(&count))
		require.Equal(t, 3, count)

		var firstSeen, lastSeen time.Time
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT first_seen, last_seen FROM news_archive WHERE link = $1`, "https://x/2",
		).Scan(&firstSeen, &lastSeen))
		require.True(t, lastSeen.After(firstSeen))
	})

	t.Run("invalid timestamp", func(t *testing.T) {
		_, err := database.SaveResult(ctx, result("yesterday", "https://x/4"))
		require.Error(t, err)
	})
}
