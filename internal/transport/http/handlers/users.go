package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

const profileImageField = "image"

// UserHandler exposes user profile endpoints.
type UserHandler struct {
	users *usecase.UserService
	authz *usecase.OwnershipAuthorizer
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService, authz *usecase.OwnershipAuthorizer) *UserHandler {
	return &UserHandler{users: users, authz: authz}
}

// RegisterRoutes binds user routes. The group must already require
// authentication.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := middleware.RequireAdmin(h.authz)
	adminOrSelf := middleware.RequireAdminOrSelf(h.authz, "id")

	r.GET("", admin, h.list)
	r.GET("/:id", adminOrSelf, h.get)
	r.PUT("/:id", adminOrSelf, h.update)
	r.DELETE("/:id", admin, h.delete)
	r.PUT("/:id/profile-image", adminOrSelf, h.setProfileImage)
	r.DELETE("/:id/profile-image", adminOrSelf, h.removeProfileImage)
}

func (h *UserHandler) list(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newUserSummaries(users), CodeOK))
}

func (h *UserHandler) get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrUserNotFound, Code: CodeUserNotFound},
		)
		return
	}
	Respond(c, OK(newUserSummary(*user), CodeOK))
}

func (h *UserHandler) update(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), c.Param("id"), req.FirstName, req.LastName)
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrUserNotFound, Code: CodeUserNotFound},
		)
		return
	}
	Respond(c, OK(newUserSummary(*user), CodeUserUpdated))
}

func (h *UserHandler) delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrUserNotFound, Code: CodeUserNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeUserDeleted))
}

func (h *UserHandler) setProfileImage(c *gin.Context) {
	fileHeader, err := c.FormFile(profileImageField)
	if err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	user, err := h.users.SetProfileImage(c.Request.Context(), c.Param("id"), contentType, file, fileHeader.Size)
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrUserNotFound, Code: CodeUserNotFound},
		)
		return
	}
	Respond(c, OK(newUserSummary(*user), CodeProfileImageUpdated))
}

func (h *UserHandler) removeProfileImage(c *gin.Context) {
	if err := h.users.RemoveProfileImage(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrUserNotFound, Code: CodeUserNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeProfileImageDeleted))
}
