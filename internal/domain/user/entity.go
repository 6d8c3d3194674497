package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Name         string
		LastName     string
		Email        string
		PasswordHash string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User

	// Draft is the input of a create operation. Password is the raw value.
	Draft struct {
		Name     string
		LastName string
		Email    string
		Password string
	}

	// Patch carries the fields supplied to an update; nil means "keep".
	Patch struct {
		Name     *string
		LastName *string
		Email    *string
		Password *string
	}
)

// TouchesNamePair reports whether the patch supplies name or lastName.
func (p Patch) TouchesNamePair() bool { return p.Name != nil || p.LastName != nil }

// Empty reports whether the patch supplies nothing at all.
func (p Patch) Empty() bool {
	return p.Name == nil && p.LastName == nil && p.Email == nil && p.Password == nil
}
