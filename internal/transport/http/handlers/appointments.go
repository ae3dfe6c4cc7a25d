package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// AppointmentHandler exposes booking endpoints.
type AppointmentHandler struct {
	appointments *usecase.AppointmentService
	authz        *usecase.OwnershipAuthorizer
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(appointments *usecase.AppointmentService, authz *usecase.OwnershipAuthorizer) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, authz: authz}
}

// RegisterRoutes binds appointment routes. The group must already require
// authentication.
func (h *AppointmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	adminOrOwner := middleware.RequireAdminOrOwner(h.authz, "id", h.authz.IsAppointmentOwner)

	r.POST("", middleware.RequireScope(string(domain.RoleAdmin), string(domain.RoleCustomer)), h.book)
	r.GET("", h.listMine)
	r.GET("/:id", adminOrOwner, h.get)
	r.PUT("/:id", middleware.RequireScope(string(domain.RoleAdmin), string(domain.RoleProfessional)), h.updateStatus)
	r.DELETE("/:id", adminOrOwner, h.cancel)
}

func (h *AppointmentHandler) book(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	appointment, err := h.appointments.Book(c.Request.Context(), usecase.BookAppointmentInput{
		CustomerID: principal.UserID(),
		ServiceID:  req.ServiceID,
		StartTime:  req.StartTime,
	})
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrServiceNotBookable, Code: CodeOperationNotAllowed},
		)
		return
	}
	Respond(c, OK(newAppointmentSummary(*appointment), CodeAppointmentBooked))
}

// listMine returns the caller's appointments, from either side of the
// booking depending on their scope.
func (h *AppointmentHandler) listMine(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		Respond(c, Fail(CodeUnauthorizedAccess))
		return
	}

	var (
		appointments []domain.Appointment
		err          error
	)
	if principal.Scope() == string(domain.RoleProfessional) {
		appointments, err = h.appointments.ListByProfessional(c.Request.Context(), principal.UserID())
	} else {
		appointments, err = h.appointments.ListByCustomer(c.Request.Context(), principal.UserID())
	}
	if err != nil {
		RespondWithMappedError(c, err)
		return
	}
	Respond(c, OK(newAppointmentSummaries(appointments), CodeOK))
}

func (h *AppointmentHandler) get(c *gin.Context) {
	appointment, err := h.appointments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrAppointmentNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newAppointmentSummary(*appointment), CodeOK))
}

func (h *AppointmentHandler) updateStatus(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	appointment, err := h.appointments.UpdateStatus(c.Request.Context(), c.Param("id"), domain.AppointmentStatus(req.Status))
	if err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrAppointmentNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(newAppointmentSummary(*appointment), CodeAppointmentUpdated))
}

func (h *AppointmentHandler) cancel(c *gin.Context) {
	if _, err := h.appointments.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrAppointmentNotFound, Code: CodeResourceNotFound},
		)
		return
	}
	Respond(c, OK(nil, CodeAppointmentCancelled))
}
