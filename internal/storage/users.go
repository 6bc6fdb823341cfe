package storage

import "context"

// GetOrCreateUser finds or creates a user by login name, returning its ID.
// A fresh install ships with the 'default' user, which everything runs as
// until a tsnet identity layer maps real logins. Updates last_seen on each
// call so stale accounts are visible.
func (db *DB) GetOrCreateUser(ctx context.Context, login string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (login)
		VALUES ($1)
		ON CONFLICT (login) DO UPDATE SET last_seen = NOW()
		RETURNING id
	`, login).Scan(&id)
	return id, err
}
