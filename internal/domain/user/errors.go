package user

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

const (
	MsgEmailTaken    = "a user with this email already exists"
	MsgNamePairTaken = "a user with this name and last name already exists"
	MsgNotFound      = "user not found"
	MsgInvalidEmail  = "invalid email format"
)

// MsgPasswordRules lists every password rule, one per line.
const MsgPasswordRules = "password must contain:\n" +
	" * At least 8 characters.\n" +
	" * At least one uppercase letter.\n" +
	" * At least one lowercase letter.\n" +
	" * At least one digit.\n" +
	" * At least one special character (!@#$%^&*)."

// Error is the single failure type of the user core. Kind is one of
// ErrValidation, ErrConflict or ErrNotFound; Message is shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func NewValidationError(msg string) *Error { return &Error{Kind: ErrValidation, Message: msg} }
func NewConflictError(msg string) *Error   { return &Error{Kind: ErrConflict, Message: msg} }
func NewNotFoundError(msg string) *Error   { return &Error{Kind: ErrNotFound, Message: msg} }
