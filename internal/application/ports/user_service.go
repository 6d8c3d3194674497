package ports

import (
	"context"

	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

type UserService interface {
	Create(ctx context.Context, d domain.Draft) (user.Resource, error)
	FindAll(ctx context.Context) (user.Resources, error)
	FindOne(ctx context.Context, uuid domain.UUID) (user.Resource, error)
	Update(ctx context.Context, uuid domain.UUID, p domain.Patch) (user.Resource, error)
	Remove(ctx context.Context, uuid domain.UUID) (user.Message, error)
}
