package user

import (
	"github.com/google/uuid"
)

const ResourceType = "users"

type (
	Attributes struct {
		Name     string `json:"name"`
		LastName string `json:"lastName"`
		Email    string `json:"email"`
	}
	Resource struct {
		Type       string     `json:"type"`
		ID         uuid.UUID  `json:"id"`
		Attributes Attributes `json:"attributes"`
	}
	Resources []Resource
	Message   struct {
		Message string `json:"message"`
	}
	ResponseData struct {
		Data any `json:"data"`
	}
)
