package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/interface/api/rest/dto/apierror"
	"user-registry-api/internal/interface/api/rest/dto/user"
	"user-registry-api/internal/interface/api/rest/validator"
)

const (
	msgInvalidUserID = "user_id must be a valid UUID"
	msgInvalidBody   = "invalid request body"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PATCH(RouteUser, uc.UpdateUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.FindAll(c.Request.Context())
	if err != nil {
		uc.fail(c, "FindAll", "failed to get users", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: users})
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		badRequest(c, msgInvalidUserID)
		return
	}

	u, err := uc.userService.FindOne(c.Request.Context(), uuid)
	if err != nil {
		uc.fail(c, "FindOne", "failed to get a user", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: u})
}

func (uc *UserController) CreateUserHandler(c *gin.Context) {
	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	if errs := validator.ValidateCreate(req); errs != nil {
		c.JSON(http.StatusBadRequest, apierror.FormatFieldErrors(http.StatusBadRequest, errs))
		return
	}

	u, err := uc.userService.Create(c.Request.Context(), user.ToDomainDraft(req))
	if err != nil {
		uc.fail(c, "Create", "failed to create a user", err)
		return
	}

	c.JSON(http.StatusCreated, user.ResponseData{Data: u})
}

func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		badRequest(c, msgInvalidUserID)
		return
	}

	var req user.PatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}
	if errs := validator.ValidatePatch(req); errs != nil {
		c.JSON(http.StatusBadRequest, apierror.FormatFieldErrors(http.StatusBadRequest, errs))
		return
	}

	u, err := uc.userService.Update(c.Request.Context(), uuid, user.ToDomainPatch(req))
	if err != nil {
		uc.fail(c, "Update", "failed to update a user", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: u})
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	ok, uuid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		badRequest(c, msgInvalidUserID)
		return
	}

	msg, err := uc.userService.Remove(c.Request.Context(), uuid)
	if err != nil {
		uc.fail(c, "Remove", "failed to delete a user", err)
		return
	}

	c.JSON(http.StatusOK, user.ResponseData{Data: msg})
}

// fail answers core errors with their own status and message. Anything else
// is logged and hidden behind a 500.
func (uc *UserController) fail(c *gin.Context, op, public string, err error) {
	if status, ok := apierror.StatusOf(err); ok {
		c.JSON(status, apierror.FormatError(status, err.Error()))
		return
	}

	uc.logger.Error(op+"() error", zap.Error(err))
	c.JSON(
		http.StatusInternalServerError,
		apierror.FormatError(http.StatusInternalServerError, public),
	)
}

func badRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, apierror.FormatError(http.StatusBadRequest, detail))
}
