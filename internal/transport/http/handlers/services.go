package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// ServiceHandler exposes catalog endpoints.
type ServiceHandler struct {
	catalog *usecase.CatalogService
	authz   *usecase.OwnershipAuthorizer
}

// NewServiceHandler constructs ServiceHandler.
func NewServiceHandler(catalog *usecase.CatalogService, authz *usecase.OwnershipAuthorizer) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, authz: authz}
}

// RegisterRoutes binds catalog management routes. The group must already
// require authentication.
func (h *ServiceHandler) RegisterRoutes(r *gin.RouterGroup) {
	adminOrOwner := middleware.RequireAdminOrOwner(h.authz, "id", h.authz.IsServiceOwner)

	r.POST("", middleware.RequireScope(string(domain.RoleAdmin), string(domain.RoleProfessional)), h.add)
	r.PUT("/:id", adminOrOwner, h.update)
	r.DELETE("/:id", adminOrOwner, h.delete)
}

// RegisterPublicRoutes binds the unauthenticated catalog browsing routes.
func (h *ServiceHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("", h.list)
	r.GET("/:id", h.get)
}

func serviceInput(req ServiceRequest) usecase.ServiceInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return usecase.ServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          active,
	}
}

func (h *ServiceHandler) add(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	service, err := h.catalog.Add(c.Request.Context(), principal.UserID(), serviceInput(req))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newServiceSummary(*service), CodeServiceAdded))
}

func (h *ServiceHandler) list(c *gin.Context) {
	activeOnly := c.Query("all") == ""
	services, err := h.catalog.List(c.Request.Context(), activeOnly)
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newServiceSummaries(services), CodeOK))
}

func (h *ServiceHandler) get(c *gin.Context) {
	service, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrServiceNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newServiceSummary(*service), CodeOK))
}

func (h *ServiceHandler) update(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	service, err := h.catalog.Update(c.Request.Context(), c.Param("id"), serviceInput(req))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrServiceNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newServiceSummary(*service), CodeServiceUpdated))
}

func (h *ServiceHandler) delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrServiceNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeServiceDeleted))
}
