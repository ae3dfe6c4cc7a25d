package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// RoleHandler exposes admin-only role management endpoints.
type RoleHandler struct {
	roles *usecase.RoleService
	authz *usecase.OwnershipAuthorizer
}

// NewRoleHandler constructs RoleHandler.
func NewRoleHandler(roles *usecase.RoleService, authz *usecase.OwnershipAuthorizer) *RoleHandler {
	return &RoleHandler{roles: roles, authz: authz}
}

// RegisterRoutes binds role routes. The group must already require
// authentication; every route is ADMIN scoped.
func (h *RoleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.Use(middleware.RequireAdmin(h.authz))

	r.GET("", h.list)
	r.GET("/:id", h.get)
	r.POST("", h.create)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
}

func (h *RoleHandler) list(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}

	out := make([]RoleSummary, 0, len(roles))
	for _, role := range roles {
		out = append(out, newRoleSummary(role))
	}
	Respond(c, OK(out, CodeOK))
}

func (h *RoleHandler) get(c *gin.Context) {
	role, err := h.roles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrRoleNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newRoleSummary(*role), CodeOK))
}

func (h *RoleHandler) create(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	role, err := h.roles.Create(c.Request.Context(), req.Name)
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrRoleNameTaken, Code: CodeDuplicateResource},
		)
		return
	}
	Respond(c, OK(newRoleSummary(*role), CodeRoleCreated))
}

func (h *RoleHandler) update(c *gin.Context) {
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	role, err := h.roles.Update(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrRoleNotFound, Code: CodeResourceNotFound},
			ErrorCase{Err: usecase.ErrRoleNameTaken, Code: CodeDuplicateResource},
		)
		return
	}
	Respond(c, OK(newRoleSummary(*role), CodeRoleUpdated))
}

func (h *RoleHandler) delete(c *gin.Context) {
	if err := h.roles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrRoleNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeRoleDeleted))
}
