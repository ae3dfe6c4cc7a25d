package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	reviews *usecase.ReviewService
	authz   *usecase.OwnershipAuthorizer
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(reviews *usecase.ReviewService, authz *usecase.OwnershipAuthorizer) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, authz: authz}
}

// RegisterRoutes binds review routes. Listing a professional's reviews is
// public; everything else requires authentication, applied by the caller.
func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	adminOrOwner := middleware.RequireAdminOrOwner(h.authz, "id", h.authz.IsReviewOwner)

	r.POST("", middleware.RequireScope(string(domain.RoleAdmin), string(domain.RoleCustomer)), h.submit)
	r.GET("/:id", h.get)
	r.PUT("/:id", adminOrOwner, h.update)
	r.DELETE("/:id", adminOrOwner, h.delete)
}

// RegisterPublicRoutes binds the unauthenticated listing route.
func (h *ReviewHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/professionals/:id/reviews", h.listByProfessional)
}

func (h *ReviewHandler) submit(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), usecase.SubmitReviewInput{
		CustomerID:    principal.UserID(),
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrAppointmentNotFound, Code: CodeResourceNotFound},
			ErrorCase{Err: usecase.ErrReviewNotAllowed, Code: CodeOperationNotAllowed},
		)
		return
	}
	Respond(c, OK(newReviewSummary(*review), CodeReviewSubmitted))
}

func (h *ReviewHandler) get(c *gin.Context) {
	review, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrReviewNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newReviewSummary(*review), CodeOK))
}

func (h *ReviewHandler) listByProfessional(c *gin.Context) {
	reviews, err := h.reviews.ListByProfessional(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newReviewSummaries(reviews), CodeOK))
}

func (h *ReviewHandler) update(c *gin.Context) {
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	review, err := h.reviews.Update(c.Request.Context(), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrReviewNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newReviewSummary(*review), CodeReviewUpdated))
}

func (h *ReviewHandler) delete(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrReviewNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeReviewDeleted))
}
