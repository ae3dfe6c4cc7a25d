package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// PaymentHandler exposes payment endpoints.
type PaymentHandler struct {
	payments *usecase.PaymentService
	authz    *usecase.OwnershipAuthorizer
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *usecase.PaymentService, authz *usecase.OwnershipAuthorizer) *PaymentHandler {
	return &PaymentHandler{payments: payments, authz: authz}
}

// RegisterRoutes binds payment routes. The group must already require
// authentication.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", middleware.RequireScope(string(domain.RoleAdmin), string(domain.RoleCustomer)), h.process)
	r.GET("", h.listMine)
	r.GET("/:id", h.get)
	r.DELETE("/:id", middleware.RequireAdmin(h.authz), h.delete)
}

func (h *PaymentHandler) process(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	payment, err := h.payments.Process(c.Request.Context(), usecase.ProcessPaymentInput{
		AppointmentID: req.AppointmentID,
		CustomerID:    principal.UserID(),
		Amount:        req.Amount,
		Currency:      req.Currency,
		ProviderRef:   req.ProviderRef,
	})
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrAppointmentNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newPaymentSummary(*payment), CodePaymentProcessed))
}

func (h *PaymentHandler) listMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	payments, err := h.payments.ListByCustomer(c.Request.Context(), principal.UserID())
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newPaymentSummaries(payments), CodeOK))
}

func (h *PaymentHandler) get(c *gin.Context) {
	principal, _ := middleware.GetPrincipal(c)

	payment, err := h.payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrPaymentNotFound, Code: CodeResourceNotFound},
		)
		return
	}

	if !h.authz.IsAdminOrOwner(principal, payment.CustomerID) {
		Respond(c, Fail(CodeInsufficientPermissions))
		return
	}
	Respond(c, OK(newPaymentSummary(*payment), CodeOK))
}

func (h *PaymentHandler) delete(c *gin.Context) {
	if err := h.payments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrPaymentNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodePaymentDeleted))
}
