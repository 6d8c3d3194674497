package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUsers(ctx context.Context) (user.Users, error) {
	rows, err := r.db.Query(ctx, SelectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = scan(rows, u); err != nil {
			return nil, err
		}
		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, uuid.String())
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByEmail, email)
}

func (r *Repository) FetchUserByName(ctx context.Context, name, lastName string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByName, name, lastName)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)
	err := scan(r.db.QueryRow(ctx, InsertUser,
		req.Name, req.LastName, req.Email, req.PasswordHash,
	), u)
	if err != nil {
		return nil, mapWriteError(err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) UpdateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)
	err := scan(r.db.QueryRow(ctx, UpdateUserByUUID,
		req.Name, req.LastName, req.Email, req.PasswordHash, req.UUID.String(),
	), u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapWriteError(err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) DeleteUser(ctx context.Context, uuid user.UUID) (*user.User, error) {
	return r.fetchOne(ctx, DeleteUserByUUID, uuid.String())
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	if err := scan(r.db.QueryRow(ctx, query, args...), u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}

func scan(row pgx.Row, u *User) error {
	return row.Scan(
		&u.ID,
		&u.UUID,
		&u.Name,
		&u.Lastname,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

// mapWriteError turns the store's unique constraints into the conflict the
// pre-checks would have reported.
func mapWriteError(err error) error {
	constraint, ok := postgres.UniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case ConstraintNamePair:
		return user.NewConflictError(user.MsgNamePairTaken)
	default:
		return user.NewConflictError(user.MsgEmailTaken)
	}
}
