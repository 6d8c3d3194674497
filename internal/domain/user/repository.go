package user

import (
	"context"
)

// Repository is the persistence port. Lookups return (nil, nil) when no
// record matches. Every call is its own unit of work.
type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	FetchUserByName(ctx context.Context, name, lastName string) (*User, error)
	FetchUsers(ctx context.Context) (Users, error)
	CreateUser(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
	DeleteUser(ctx context.Context, uuid UUID) (*User, error)
}
