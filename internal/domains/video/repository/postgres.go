package repository

import (
	"context"
	"fmt"
	"strconv"

	"videodash-backend/internal/domains/video"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) video.Repository {
	return &postgresRepository{pool: pool}
}

// EnsureSchema creates the manual_videos table when missing. Called once
// at startup by the container.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const query = `
		CREATE TABLE IF NOT EXISTS manual_videos (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT NOT NULL DEFAULT '',
			channel    TEXT NOT NULL DEFAULT '',
			published  TEXT NOT NULL DEFAULT '0000-00-00',
			views      BIGINT NOT NULL DEFAULT 0,
			likes      BIGINT NOT NULL DEFAULT 0,
			comments   BIGINT NOT NULL DEFAULT 0,
			url        TEXT NOT NULL DEFAULT '',
			keywords   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure manual_videos schema: %w", err)
	}
	return nil
}

// ReplaceAll swaps the full table contents inside one transaction.
// Delete-then-insert ordering guarantees no stale+new mixing; a failure
// mid-insert rolls the whole replace back.
func (r *postgresRepository) ReplaceAll(ctx context.Context, records []video.Record) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ReplaceAll: begin failed")
		return 0, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM manual_videos`); err != nil {
		log.Error().Err(err).Msg("ReplaceAll: delete failed")
		return 0, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}

	const insertQuery = `
		INSERT INTO manual_videos (title, channel, published, views, likes, comments, url, keywords)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(insertQuery,
			rec.Title,
			rec.Channel,
			rec.Published,
			rec.Views,
			rec.Likes,
			rec.Comments,
			rec.URL,
			rec.Keywords,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range records {
		if _, err := br.Exec(); err != nil {
			br.Close()
			log.Error().Err(err).Msg("ReplaceAll: insert failed")
			return 0, fmt.Errorf("%w: %v", video.ErrPersistence, err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error().Err(err).Msg("ReplaceAll: commit failed")
		return 0, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}

	return int64(len(records)), nil
}

// GetAll returns every manual record. VideoID carries the row id so the
// merge engine can use it as the channel fallback.
func (r *postgresRepository) GetAll(ctx context.Context) ([]video.Record, error) {
	const query = `
		SELECT id, title, channel, published, views, likes, comments, url, keywords
		FROM manual_videos
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		log.Error().Err(err).Msg("GetAll: query failed")
		return nil, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}
	defer rows.Close()

	records := make([]video.Record, 0)
	for rows.Next() {
		var id int64
		rec := video.Record{}
		err := rows.Scan(
			&id,
			&rec.Title,
			&rec.Channel,
			&rec.Published,
			&rec.Views,
			&rec.Likes,
			&rec.Comments,
			&rec.URL,
			&rec.Keywords,
		)
		if err != nil {
			log.Error().Err(err).Msg("GetAll: scan error")
			return nil, fmt.Errorf("%w: %v", video.ErrPersistence, err)
		}

		rec.VideoID = strconv.FormatInt(id, 10)
		rec.Platform = video.PlatformManual
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Error().Err(err).Msg("GetAll: rows error")
		return nil, fmt.Errorf("%w: %v", video.ErrPersistence, err)
	}

	return records, nil
}
