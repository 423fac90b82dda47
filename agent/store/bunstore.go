package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunStoreConfig configures the Postgres-backed document store.
type BunStoreConfig struct {
	DSN     string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

type documentRow struct {
	bun.BaseModel `bun:"table:harada_documents,alias:doc"`

	Key       string          `bun:"key,pk"`
	Data      json.RawMessage `bun:"data,type:jsonb"`
	UpdatedAt time.Time       `bun:"updated_at,notnull"`
}

// BunStore keeps documents in a single jsonb-keyed table. It satisfies the
// same Store contract as FileStore so the dispatcher works against either.
type BunStore struct {
	db *bun.DB
}

func NewBunStore(ctx context.Context, cfg BunStoreConfig) (*BunStore, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("store dsn is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithTimeout(timeout),
	))
	db := bun.NewDB(sqldb, pgdialect.New())

	if _, err := db.NewCreateTable().
		Model((*documentRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}

	return &BunStore{db: db}, nil
}

func (s *BunStore) Read(ctx context.Context, key string, out any) bool {
	var row documentRow
	err := s.db.NewSelect().
		Model(&row).
		Where("doc.key = ?", key).
		Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Debug().Str("key", key).Err(err).Msg("document read failed")
		}
		return false
	}
	if err := json.Unmarshal(row.Data, out); err != nil {
		log.Debug().Str("key", key).Err(err).Msg("discarding corrupt document")
		return false
	}
	return true
}

func (s *BunStore) Write(ctx context.Context, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", key, err)
	}

	row := documentRow{
		Key:       key,
		Data:      data,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (key) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return fmt.Errorf("write document %s: %w", key, err)
	}
	return nil
}

func (s *BunStore) List(ctx context.Context, prefix string) []string {
	prefix = strings.TrimSuffix(prefix, "/")
	var keys []string
	err := s.db.NewSelect().
		Model((*documentRow)(nil)).
		Column("key").
		Where("doc.key LIKE ?", prefix+"/%").
		Order("key").
		Scan(ctx, &keys)
	if err != nil {
		log.Debug().Str("prefix", prefix).Err(err).Msg("document list failed")
		return nil
	}
	return keys
}

func (s *BunStore) Close() error {
	return s.db.Close()
}
