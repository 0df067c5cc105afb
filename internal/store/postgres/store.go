package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	db_models "convospace-backend/internal/models"
	"convospace-backend/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const createUser = `-- name: CreateUser :one
INSERT INTO users (email, hashed_password)
VALUES ($1, $2)
RETURNING id, email, hashed_password, created_at;
`

// CreateUser inserts a new user record and fills in the generated fields.
func (s *PostgresStore) CreateUser(ctx context.Context, user *db_models.User) error {
	row := s.db.QueryRow(ctx, createUser, user.Email, user.HashedPassword)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// "23505" is unique_violation (duplicate email)
			if pgErr.Code == "23505" {
				return store.ErrDuplicate
			}
			log.Printf("ERROR [PostgresStore] CreateUser: PostgreSQL error for email %s: Code=%s, Message=%s", user.Email, pgErr.Code, pgErr.Message)
		} else {
			log.Printf("ERROR [PostgresStore] CreateUser: Failed to insert user for email %s: %v", user.Email, err)
		}
		return fmt.Errorf("database error creating user: %w", err)
	}
	return nil
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, email, hashed_password, created_at
FROM users
WHERE email = $1;
`

// GetUserByEmail retrieves a user by their email address.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*db_models.User, error) {
	user := &db_models.User{}
	err := s.db.QueryRow(ctx, getUserByEmail, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching user by email: %w", err)
	}
	return user, nil
}

const getUserByID = `-- name: GetUserByID :one
SELECT id, email, hashed_password, created_at
FROM users
WHERE id = $1;
`

// GetUserByID retrieves a user by id.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*db_models.User, error) {
	user := &db_models.User{}
	err := s.db.QueryRow(ctx, getUserByID, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching user by id: %w", err)
	}
	return user, nil
}

const deleteUser = `-- name: DeleteUser :exec
DELETE FROM users
WHERE id = $1;
`

// DeleteUser removes a user. The schema cascades the delete to the user's
// conversations and, transitively, their messages.
func (s *PostgresStore) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, deleteUser, id)
	if err != nil {
		return fmt.Errorf("database error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
