package user

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"user-registry-api/internal/domain/user"
)

// FormatRecord projects the public view of a record. The password never
// leaves the domain.
func FormatRecord(uDomain user.User) Resource {
	return Resource{
		Type: ResourceType,
		ID:   uDomain.UUID,
		Attributes: Attributes{
			Name:     uDomain.Name,
			LastName: uDomain.LastName,
			Email:    uDomain.Email,
		},
	}
}

func FormatRecords(usDomain user.Users) Resources {
	us := make(Resources, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = FormatRecord(*u)
	}

	return us
}

func ToDomainDraft(req Request) user.Draft {
	return user.Draft{
		Name:     normalizeName(req.Name),
		LastName: normalizeName(req.LastName),
		Email:    normalizeEmail(req.Email),
		Password: req.Password,
	}
}

func ToDomainPatch(req PatchRequest) user.Patch {
	var p user.Patch
	if req.Name != nil {
		v := normalizeName(*req.Name)
		p.Name = &v
	}
	if req.LastName != nil {
		v := normalizeName(*req.LastName)
		p.LastName = &v
	}
	if req.Email != nil {
		v := normalizeEmail(*req.Email)
		p.Email = &v
	}
	if req.Password != nil {
		v := *req.Password
		p.Password = &v
	}

	return p
}

// normalizeName composes the name to NFC so visually equal names compare
// equal in the uniqueness checks.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
