package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"user-registry-api/internal/interface/api/rest/dto/user"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt safe
	maxNameLen     = 128
)

// FieldErrors maps a JSON field name to its problem. nil means the payload
// has the expected shape.
type FieldErrors map[string]string

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// ValidateCreate checks the shape of a create payload before it reaches the
// core. The core repeats the business checks on its own.
func ValidateCreate(r user.Request) FieldErrors {
	errs := make(FieldErrors)

	checkName(errs, "name", r.Name)
	checkName(errs, "lastName", r.LastName)
	checkEmail(errs, r.Email)
	checkPassword(errs, r.Password)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// ValidatePatch checks only the fields present in a partial update.
func ValidatePatch(r user.PatchRequest) FieldErrors {
	errs := make(FieldErrors)

	if r.Name != nil {
		checkName(errs, "name", *r.Name)
	}
	if r.LastName != nil {
		checkName(errs, "lastName", *r.LastName)
	}
	if r.Email != nil {
		checkEmail(errs, *r.Email)
	}
	if r.Password != nil {
		checkPassword(errs, *r.Password)
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func checkName(errs FieldErrors, field, value string) {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		errs[field] = field + " is required"
	case utf8.RuneCountInString(v) > maxNameLen:
		errs[field] = field + " must be at most 128 characters"
	}
}

func checkEmail(errs FieldErrors, value string) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}
}

func checkPassword(errs FieldErrors, password string) {
	// not trimmed: spaces are part of the password
	if strings.TrimSpace(password) == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(password) < minPasswordLen || len(password) > maxPasswordLen {
		errs["password"] = "password length must be 8–72 characters"
	}
}
