package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

const MsgUserDeleted = "user deleted successfully"

type UserService struct {
	userRepository domain.Repository
	uniqueness     *UniquenessEnforcer
	hasher         ports.PasswordHasher
	events         ports.EventEmitter
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	events ports.EventEmitter,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		uniqueness:     NewUniquenessEnforcer(userRepository),
		hasher:         hasher,
		events:         events,
		mCounter:       mCounter,
	}
}

// Create checks, in order, email availability, name pair availability, email
// shape and password policy, and stops at the first failure.
func (us *UserService) Create(ctx context.Context, d domain.Draft) (user.Resource, error) {
	if err := requireNamePair(d.Name, d.LastName); err != nil {
		return user.Resource{}, err
	}
	if err := us.uniqueness.CheckEmailAvailable(ctx, d.Email, uuid.Nil); err != nil {
		return user.Resource{}, err
	}
	if err := us.uniqueness.CheckNamePairAvailable(ctx, d.Name, d.LastName, uuid.Nil); err != nil {
		return user.Resource{}, err
	}
	if err := domain.ValidateEmailShape(d.Email); err != nil {
		return user.Resource{}, err
	}
	if err := domain.ValidatePasswordPolicy(d.Password); err != nil {
		return user.Resource{}, err
	}

	hash, err := us.hasher.Hash(d.Password)
	if err != nil {
		return user.Resource{}, err
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Name:         d.Name,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return user.Resource{}, err
	}

	res := user.FormatRecord(*uRet)
	us.emit(mq.ActionUserCreated, res)
	us.mCounter.WithLabelValues("user_created_total").Inc()

	return res, nil
}

func (us *UserService) FindAll(ctx context.Context) (user.Resources, error) {
	users, err := us.userRepository.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}

	return user.FormatRecords(users), nil
}

func (us *UserService) FindOne(ctx context.Context, uuid domain.UUID) (user.Resource, error) {
	u, err := us.fetch(ctx, uuid)
	if err != nil {
		return user.Resource{}, err
	}

	return user.FormatRecord(*u), nil
}

// Update merges only the supplied fields. The name pair is checked as it
// will look after the merge.
func (us *UserService) Update(ctx context.Context, uuid domain.UUID, p domain.Patch) (user.Resource, error) {
	current, err := us.fetch(ctx, uuid)
	if err != nil {
		return user.Resource{}, err
	}
	if p.Empty() {
		return user.FormatRecord(*current), nil
	}

	merged := *current
	if p.TouchesNamePair() {
		if p.Name != nil {
			merged.Name = *p.Name
		}
		if p.LastName != nil {
			merged.LastName = *p.LastName
		}
		if err = requireNamePair(merged.Name, merged.LastName); err != nil {
			return user.Resource{}, err
		}
		if err = us.uniqueness.CheckNamePairAvailable(ctx, merged.Name, merged.LastName, uuid); err != nil {
			return user.Resource{}, err
		}
	}

	if p.Email != nil {
		if err = domain.ValidateEmailShape(*p.Email); err != nil {
			return user.Resource{}, err
		}
		if err = us.uniqueness.CheckEmailAvailable(ctx, *p.Email, uuid); err != nil {
			return user.Resource{}, err
		}
		merged.Email = *p.Email
	}

	if p.Password != nil {
		if err = domain.ValidatePasswordPolicy(*p.Password); err != nil {
			return user.Resource{}, err
		}
		if merged.PasswordHash, err = us.hasher.Hash(*p.Password); err != nil {
			return user.Resource{}, err
		}
	}

	uRet, err := us.userRepository.UpdateUser(ctx, merged)
	if err != nil {
		return user.Resource{}, err
	}
	// deleted between the fetch and the write
	if uRet == nil {
		return user.Resource{}, domain.NewNotFoundError(domain.MsgNotFound)
	}

	res := user.FormatRecord(*uRet)
	us.emit(mq.ActionUserUpdated, res)
	us.mCounter.WithLabelValues("user_updated_total").Inc()

	return res, nil
}

func (us *UserService) Remove(ctx context.Context, uuid domain.UUID) (user.Message, error) {
	if _, err := us.fetch(ctx, uuid); err != nil {
		return user.Message{}, err
	}

	u, err := us.userRepository.DeleteUser(ctx, uuid)
	if err != nil {
		return user.Message{}, err
	}
	if u == nil {
		return user.Message{}, domain.NewNotFoundError(domain.MsgNotFound)
	}

	us.emit(mq.ActionUserDeleted, user.FormatRecord(*u))
	us.mCounter.WithLabelValues("user_deleted_total").Inc()

	return user.Message{Message: MsgUserDeleted}, nil
}

func (us *UserService) fetch(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewNotFoundError(domain.MsgNotFound)
	}

	return u, nil
}

func (us *UserService) emit(action string, res user.Resource) {
	us.events.Emit(mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		UserID:  res.ID.String(),
		Payload: res,
	})
}

func requireNamePair(name, lastName string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name must not be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return domain.NewValidationError("lastName must not be empty")
	}

	return nil
}
