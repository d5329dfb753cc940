package registry

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadPostgres reads the user registry from the users table. It is an
// alternative startup source to the configuration seed lists; the
// resulting registry is just as immutable.
func LoadPostgres(ctx context.Context, db *sql.DB) (*Registry, error) {
	rows, err := db.QueryContext(ctx, `select id, name, password_hash from users order by id`)
	if err != nil {
		return nil, fmt.Errorf("registry: query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("registry: scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("registry: iterate users: %w", err)
	}
	return New(users)
}
