package user

type (
	Request struct {
		Name     string `json:"name"`
		LastName string `json:"lastName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	// PatchRequest leaves absent JSON keys as nil.
	PatchRequest struct {
		Name     *string `json:"name"`
		LastName *string `json:"lastName"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
)
