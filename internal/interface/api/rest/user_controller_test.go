package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	domain "user-registry-api/internal/domain/user"
	"user-registry-api/internal/interface/api/rest/dto/apierror"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

type FakeUserService struct {
	CreateFunc  func(ctx context.Context, d domain.Draft) (user.Resource, error)
	FindAllFunc func(ctx context.Context) (user.Resources, error)
	FindOneFunc func(ctx context.Context, id domain.UUID) (user.Resource, error)
	UpdateFunc  func(ctx context.Context, id domain.UUID, p domain.Patch) (user.Resource, error)
	RemoveFunc  func(ctx context.Context, id domain.UUID) (user.Message, error)
}

func (f *FakeUserService) Create(ctx context.Context, d domain.Draft) (user.Resource, error) {
	if f.CreateFunc == nil {
		return user.Resource{}, errors.New("not used")
	}
	return f.CreateFunc(ctx, d)
}
func (f *FakeUserService) FindAll(ctx context.Context) (user.Resources, error) {
	if f.FindAllFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindAllFunc(ctx)
}
func (f *FakeUserService) FindOne(ctx context.Context, id domain.UUID) (user.Resource, error) {
	if f.FindOneFunc == nil {
		return user.Resource{}, errors.New("not used")
	}
	return f.FindOneFunc(ctx, id)
}
func (f *FakeUserService) Update(ctx context.Context, id domain.UUID, p domain.Patch) (user.Resource, error) {
	if f.UpdateFunc == nil {
		return user.Resource{}, errors.New("not used")
	}
	return f.UpdateFunc(ctx, id, p)
}
func (f *FakeUserService) Remove(ctx context.Context, id domain.UUID) (user.Message, error) {
	if f.RemoveFunc == nil {
		return user.Message{}, errors.New("not used")
	}
	return f.RemoveFunc(ctx, id)
}

func setupRouter(t *testing.T, us ports.UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewUserController(r, us, zap.NewNop())

	return r
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierror.ErrorPayload {
	t.Helper()
	var p apierror.ErrorPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	require.NotEmpty(t, p.Errors)
	return p
}

func validRequest() user.Request {
	return user.Request{Name: "Ann", LastName: "Lee", Email: "ann@x.com", Password: "Secret1!"}
}

func someResource(id uuid.UUID) user.Resource {
	return user.Resource{
		Type:       user.ResourceType,
		ID:         id,
		Attributes: user.Attributes{Name: "Ann", LastName: "Lee", Email: "ann@x.com"},
	}
}

func strPtr(s string) *string { return &s }

func TestUserController_GetUsersHandler(t *testing.T) {
	tests := []struct {
		name       string
		mockUS     func() ports.UserService
		wantStatus int
		wantLen    int
		wantDetail string
	}{
		{
			name: "500 when service fails",
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindAllFunc: func(ctx context.Context) (user.Resources, error) {
						return nil, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "failed to get users",
		},
		{
			name: "200 empty list",
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindAllFunc: func(ctx context.Context) (user.Resources, error) {
						return user.Resources{}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name: "200 success",
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindAllFunc: func(ctx context.Context) (user.Resources, error) {
						return user.Resources{someResource(uuid.New()), someResource(uuid.New())}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
			wantLen:    2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodGet, RouteUsers, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Errors[0].Detail)
				return
			}
			var resp struct {
				Data []user.Resource `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.NotNil(t, resp.Data)
			assert.Len(t, resp.Data, tt.wantLen)
		})
	}
}

func TestUserController_GetUserHandler(t *testing.T) {
	okID := uuid.New()

	tests := []struct {
		name       string
		userID     string
		mockUS     func() ports.UserService
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "400 invalid uuid",
			userID:     "not-a-uuid",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Bad Request",
			wantDetail: msgInvalidUserID,
		},
		{
			name:   "500 service error",
			userID: okID.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindOneFunc: func(ctx context.Context, id domain.UUID) (user.Resource, error) {
						return user.Resource{}, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Server Error",
			wantDetail: "failed to get a user",
		},
		{
			name:   "404 not found",
			userID: okID.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindOneFunc: func(ctx context.Context, id domain.UUID) (user.Resource, error) {
						return user.Resource{}, domain.NewNotFoundError(domain.MsgNotFound)
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: domain.MsgNotFound,
		},
		{
			name:   "200 success",
			userID: okID.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					FindOneFunc: func(ctx context.Context, id domain.UUID) (user.Resource, error) {
						assert.Equal(t, okID, id)
						return someResource(id), nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodGet, RouteUsers+"/"+tt.userID, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantDetail != "" {
				e := decodeError(t, rr).Errors[0]
				assert.Equal(t, tt.wantTitle, e.Title)
				assert.Equal(t, tt.wantDetail, e.Detail)
				return
			}

			var resp map[string]map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "users", resp["data"]["type"])
			assert.Equal(t, okID.String(), resp["data"]["id"])
		})
	}
}

func TestUserController_CreateUserHandler(t *testing.T) {
	validReq := validRequest()

	tests := []struct {
		name       string
		body       any
		mockUS     func() ports.UserService
		wantStatus int
		wantDetail string
		wantErrs   int
	}{
		{
			name:       "400 invalid JSON",
			body:       "{bad json",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantDetail: msgInvalidBody,
			wantErrs:   1,
		},
		{
			name:       "400 pre-validation lists every field",
			body:       user.Request{Email: "bad"},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantErrs:   4,
		},
		{
			name: "400 conflict from core",
			body: validReq,
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateFunc: func(ctx context.Context, d domain.Draft) (user.Resource, error) {
						return user.Resource{}, domain.NewConflictError(domain.MsgEmailTaken)
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: domain.MsgEmailTaken,
			wantErrs:   1,
		},
		{
			name: "400 password policy keeps multi-line detail",
			body: user.Request{Name: "Ann", LastName: "Lee", Email: "ann@x.com", Password: "password"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateFunc: func(ctx context.Context, d domain.Draft) (user.Resource, error) {
						return user.Resource{}, domain.ValidatePasswordPolicy(d.Password)
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: domain.MsgPasswordRules,
			wantErrs:   1,
		},
		{
			name: "500 service error",
			body: validReq,
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateFunc: func(ctx context.Context, d domain.Draft) (user.Resource, error) {
						return user.Resource{}, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "failed to create a user",
			wantErrs:   1,
		},
		{
			name: "201 success with normalized input",
			body: user.Request{Name: " Ann ", LastName: "Lee", Email: " ANN@X.COM ", Password: "Secret1!"},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					CreateFunc: func(ctx context.Context, d domain.Draft) (user.Resource, error) {
						assert.Equal(t, "Ann", d.Name)
						assert.Equal(t, "ann@x.com", d.Email)
						assert.Equal(t, "Secret1!", d.Password)
						return someResource(uuid.New()), nil
					},
				}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodPost, RouteUsers, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantErrs > 0 {
				p := decodeError(t, rr)
				assert.Len(t, p.Errors, tt.wantErrs)
				if tt.wantDetail != "" {
					assert.Equal(t, tt.wantDetail, p.Errors[0].Detail)
				}
				return
			}
			assert.NotContains(t, rr.Body.String(), "password")
		})
	}
}

func TestUserController_UpdateUserHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		userID     string
		body       any
		mockUS     func() ports.UserService
		wantStatus int
		wantDetail string
	}{
		{
			name:       "400 invalid uuid",
			userID:     "not-uuid",
			body:       user.PatchRequest{Name: strPtr("Ann2")},
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantDetail: msgInvalidUserID,
		},
		{
			name:       "400 invalid JSON",
			userID:     id.String(),
			body:       "{bad json",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantDetail: msgInvalidBody,
		},
		{
			name:       "400 blank name",
			userID:     id.String(),
			body:       `{"name":"   "}`,
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantDetail: "name is required",
		},
		{
			name:   "404 not found",
			userID: id.String(),
			body:   user.PatchRequest{Name: strPtr("Ann2")},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateFunc: func(ctx context.Context, uid domain.UUID, p domain.Patch) (user.Resource, error) {
						return user.Resource{}, domain.NewNotFoundError(domain.MsgNotFound)
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantDetail: domain.MsgNotFound,
		},
		{
			name:   "400 name pair conflict",
			userID: id.String(),
			body:   user.PatchRequest{Name: strPtr("Bob")},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateFunc: func(ctx context.Context, uid domain.UUID, p domain.Patch) (user.Resource, error) {
						return user.Resource{}, domain.NewConflictError(domain.MsgNamePairTaken)
					},
				}
			},
			wantStatus: http.StatusBadRequest,
			wantDetail: domain.MsgNamePairTaken,
		},
		{
			name:   "500 service error",
			userID: id.String(),
			body:   user.PatchRequest{Name: strPtr("Ann2")},
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateFunc: func(ctx context.Context, uid domain.UUID, p domain.Patch) (user.Resource, error) {
						return user.Resource{}, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "failed to update a user",
		},
		{
			name:   "200 only supplied fields reach the core",
			userID: id.String(),
			body:   `{"name":"Ann2"}`,
			mockUS: func() ports.UserService {
				return &FakeUserService{
					UpdateFunc: func(ctx context.Context, uid domain.UUID, p domain.Patch) (user.Resource, error) {
						assert.Equal(t, id, uid)
						require.NotNil(t, p.Name)
						assert.Equal(t, "Ann2", *p.Name)
						assert.Nil(t, p.LastName)
						assert.Nil(t, p.Email)
						assert.Nil(t, p.Password)
						return someResource(uid), nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodPatch, RouteUsers+"/"+tt.userID, tt.body)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Errors[0].Detail)
			}
		})
	}
}

func TestUserController_DeleteUserHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		userID     string
		mockUS     func() ports.UserService
		wantStatus int
		wantDetail string
	}{
		{
			name:       "400 invalid uuid",
			userID:     "not-uuid",
			mockUS:     func() ports.UserService { return &FakeUserService{} },
			wantStatus: http.StatusBadRequest,
			wantDetail: msgInvalidUserID,
		},
		{
			name:   "404 not found",
			userID: id.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					RemoveFunc: func(ctx context.Context, uid domain.UUID) (user.Message, error) {
						return user.Message{}, domain.NewNotFoundError(domain.MsgNotFound)
					},
				}
			},
			wantStatus: http.StatusNotFound,
			wantDetail: domain.MsgNotFound,
		},
		{
			name:   "500 service error",
			userID: id.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					RemoveFunc: func(ctx context.Context, uid domain.UUID) (user.Message, error) {
						return user.Message{}, errors.New("db error")
					},
				}
			},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "failed to delete a user",
		},
		{
			name:   "200 success",
			userID: id.String(),
			mockUS: func() ports.UserService {
				return &FakeUserService{
					RemoveFunc: func(ctx context.Context, uid domain.UUID) (user.Message, error) {
						return user.Message{Message: "user deleted successfully"}, nil
					},
				}
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(t, tt.mockUS())
			rr := doReq(t, r, http.MethodDelete, RouteUsers+"/"+tt.userID, nil)
			require.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, decodeError(t, rr).Errors[0].Detail)
				return
			}
			assert.JSONEq(t, `{"data":{"message":"user deleted successfully"}}`, rr.Body.String())
		})
	}
}
