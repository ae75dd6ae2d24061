package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// profileRepo implements ProfileRepo on the profiles table.
type profileRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *profileRepo) Load(ctx context.Context, key string) (json.RawMessage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("data").
		From(entsql.Table(profilesTable)).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var data string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", key, err)
	}
	return json.RawMessage(data), nil
}

func (r *profileRepo) Save(ctx context.Context, key string, data json.RawMessage) error {
	if !json.Valid(data) {
		return fmt.Errorf("save profile %q: invalid JSON document", key)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(profilesTable).
		Columns("key", "data", "updated_at").
		Values(key, string(data), r.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save profile %q: %w", key, err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(profilesTable).
		Where(entsql.EQ("key", key)).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete profile %q: %w", key, err)
	}
	return nil
}
