package db

import (
	"context"
	"fmt"
	"time"

	"news_builder/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS news_runs (
	id SERIAL PRIMARY KEY,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
	hours_window INTEGER NOT NULL,
	items_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS news_archive (
	id SERIAL PRIMARY KEY,
	link VARCHAR(2048) UNIQUE NOT NULL,
	category TEXT NOT NULL,
	title TEXT NOT NULL,
	source TEXT NOT NULL,
	pub_date TEXT NOT NULL,
	first_seen TIMESTAMP WITH TIME ZONE NOT NULL,
	last_seen TIMESTAMP WITH TIME ZONE NOT NULL,
	last_run_id INTEGER NOT NULL REFERENCES news_runs(id) ON DELETE CASCADE
);
`

// Database инкапсулирует пул соединений к PostgreSQL, куда складывается история выдач.
// Сама задача архив не читает.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// EnsureSchema создаёт таблицы архива, если их ещё нет.
func (db *Database) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, schema)
	return err
}

// SaveResult записывает запуск и все опубликованные новости одной транзакцией.
// Новость с уже известной ссылкой обновляет last_seen, first_seen не меняется.
func (db *Database) SaveResult(ctx context.Context, res *models.AggregateResult) (int, error) {
	updatedAt, err := time.Parse(time.RFC3339, res.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("parse updatedAt %q: %w", res.UpdatedAt, err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var runID int
	err = tx.QueryRow(ctx, `
        INSERT INTO news_runs (updated_at, hours_window, items_count)
        VALUES ($1, $2, $3)
        RETURNING id
    `, updatedAt, res.HoursWindow, len(res.Items)).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	for _, it := range res.Items {
		_, err := tx.Exec(ctx, `
            INSERT INTO news_archive (link, category, title, source, pub_date, first_seen, last_seen, last_run_id)
            VALUES ($1, $2, $3, $4, $5, $6, $6, $7)
            ON CONFLICT (link) DO UPDATE SET
                title = EXCLUDED.title,
                source = EXCLUDED.source,
                last_seen = EXCLUDED.last_seen,
                last_run_id = EXCLUDED.last_run_id
        `, it.Link, it.Category, it.Title, it.Source, it.PubDate, updatedAt, runID)
		if err != nil {
			return 0, fmt.Errorf("save item %s: %w", it.Link, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}
