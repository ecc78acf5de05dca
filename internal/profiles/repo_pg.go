package profiles

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Get(ctx context.Context, userID string) (Record, error) {
	const query = `
SELECT id, user_id, gemini_api_key_enc, created_at, updated_at
FROM user_profiles
WHERE user_id = $1
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, errors.Wrap(err, "select profile")
	}
	return rec, nil
}

func (r *PGRepo) Upsert(ctx context.Context, rec Record) (Record, error) {
	const query = `
INSERT INTO user_profiles (id, user_id, gemini_api_key_enc, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  gemini_api_key_enc = EXCLUDED.gemini_api_key_enc,
  updated_at = now()
RETURNING id, user_id, gemini_api_key_enc, created_at, updated_at`
	var sealed any
	if rec.SealedKey != "" {
		sealed = rec.SealedKey
	}
	stored, err := scanRecord(r.DB.QueryRowContext(ctx, query, rec.ID, rec.UserID, sealed))
	if err != nil {
		return Record{}, errors.Wrap(err, "upsert profile")
	}
	return stored, nil
}

func scanRecord(row *sql.Row) (Record, error) {
	var rec Record
	var sealed sql.NullString
	if err := row.Scan(&rec.ID, &rec.UserID, &sealed, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}
	rec.SealedKey = sealed.String
	return rec, nil
}
