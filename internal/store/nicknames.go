package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Nickname returns a cached nickname. ok is false when userID was never
// stored.
func (s *Store) Nickname(ctx context.Context, userID uint64) (string, bool, error) {
	ctx = ensureContext(ctx)
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT nickname FROM nicknames WHERE user_id = ?`, int64(userID)).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read nickname %d: %w", userID, err)
	}
	return name, true, nil
}

// PutNickname stores or replaces the nickname for userID.
func (s *Store) PutNickname(ctx context.Context, userID uint64, name string) error {
	_, err := s.exec(ctx,
		`INSERT INTO nicknames (user_id, nickname, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET nickname = excluded.nickname, fetched_at = excluded.fetched_at`,
		int64(userID), name, formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("store nickname %d: %w", userID, err)
	}
	return nil
}

// NicknameCount returns the number of cached nicknames.
func (s *Store) NicknameCount(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM nicknames`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count nicknames: %w", err)
	}
	return n, nil
}

// ClearNicknames drops every cached nickname.
func (s *Store) ClearNicknames(ctx context.Context) (int64, error) {
	res, err := s.exec(ctx, `DELETE FROM nicknames`)
	if err != nil {
		return 0, fmt.Errorf("clear nicknames: %w", err)
	}
	return res.RowsAffected()
}
