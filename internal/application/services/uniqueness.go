package services

import (
	"context"

	"github.com/google/uuid"

	domain "user-registry-api/internal/domain/user"
)

// UniquenessEnforcer is a fast-fail pre-check. The store keeps its own
// unique constraints as the final authority.
type UniquenessEnforcer struct {
	userRepository domain.Repository
}

func NewUniquenessEnforcer(userRepository domain.Repository) *UniquenessEnforcer {
	return &UniquenessEnforcer{userRepository: userRepository}
}

// CheckEmailAvailable fails when another record owns email. exclude is the
// id of the record being updated, or uuid.Nil.
func (ue *UniquenessEnforcer) CheckEmailAvailable(ctx context.Context, email string, exclude domain.UUID) error {
	u, err := ue.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if claimedByOther(u, exclude) {
		return domain.NewConflictError(domain.MsgEmailTaken)
	}

	return nil
}

// CheckNamePairAvailable fails when another record owns (name, lastName).
func (ue *UniquenessEnforcer) CheckNamePairAvailable(ctx context.Context, name, lastName string, exclude domain.UUID) error {
	u, err := ue.userRepository.FetchUserByName(ctx, name, lastName)
	if err != nil {
		return err
	}
	if claimedByOther(u, exclude) {
		return domain.NewConflictError(domain.MsgNamePairTaken)
	}

	return nil
}

func claimedByOther(u *domain.User, exclude domain.UUID) bool {
	return u != nil && (exclude == uuid.Nil || u.UUID != exclude)
}
