package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/core/domain"
)

// Response is the uniform result envelope every endpoint returns. The
// code decides the HTTP status via StatusForCode.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Code    string `json:"code"`
}

// OK builds a success envelope carrying data.
func OK(data any, code string) Response {
	return Response{Success: true, Data: data, Code: code}
}

// Fail builds a failure envelope with a null data field.
func Fail(code string) Response {
	return Response{Success: false, Data: nil, Code: code}
}

// Respond writes the envelope with the status its code maps to.
func Respond(c *gin.Context, res Response) {
	c.JSON(StatusForCode(res.Code, res.Success), res)
}

// UserSummary describes the public view of a user returned by the API.
type UserSummary struct {
	ID              string  `json:"id"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	RoleID          string  `json:"role_id"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
}

func newUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		RoleID:          user.RoleID,
		ProfileImageURL: user.ProfileImageURL,
	}
}

func newUserSummaries(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, user := range users {
		out = append(out, newUserSummary(user))
	}
	return out
}

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginData is the envelope payload of a successful login.
type LoginData struct {
	Token string      `json:"token"`
	Scope string      `json:"scope"`
	User  UserSummary `json:"user"`
}

// UpdateProfileRequest defines the payload for profile updates.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// RoleRequest defines the payload for role create/update.
type RoleRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleSummary describes a role returned by the API.
type RoleSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newRoleSummary(role domain.Role) RoleSummary {
	return RoleSummary{ID: role.ID, Name: string(role.Name)}
}

// BookAppointmentRequest defines the payload for booking an appointment.
type BookAppointmentRequest struct {
	ServiceID string    `json:"service_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
}

// UpdateAppointmentRequest defines the payload for status changes.
type UpdateAppointmentRequest struct {
	Status string `json:"status" binding:"required"`
}

// AppointmentSummary describes an appointment returned by the API.
type AppointmentSummary struct {
	ID             string    `json:"id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	CustomerID     string    `json:"customer_id"`
	ProfessionalID string    `json:"professional_id"`
	ServiceID      string    `json:"service_id"`
}

func newAppointmentSummary(appointment domain.Appointment) AppointmentSummary {
	return AppointmentSummary{
		ID:             appointment.ID,
		StartTime:      appointment.StartTime,
		EndTime:        appointment.EndTime,
		Status:         string(appointment.Status),
		CustomerID:     appointment.CustomerID,
		ProfessionalID: appointment.ProfessionalID,
		ServiceID:      appointment.ServiceID,
	}
}

func newAppointmentSummaries(appointments []domain.Appointment) []AppointmentSummary {
	out := make([]AppointmentSummary, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, newAppointmentSummary(appointment))
	}
	return out
}

// SubmitReviewRequest defines the payload for submitting a review.
type SubmitReviewRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required"`
	Rating        int     `json:"rating" binding:"required"`
	Comment       *string `json:"comment"`
}

// UpdateReviewRequest defines the payload for editing a review.
type UpdateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

// ReviewSummary describes a review returned by the API.
type ReviewSummary struct {
	ID             string  `json:"id"`
	Rating         int     `json:"rating"`
	Comment        *string `json:"comment,omitempty"`
	CustomerID     string  `json:"customer_id"`
	ProfessionalID string  `json:"professional_id"`
	AppointmentID  string  `json:"appointment_id"`
}

func newReviewSummary(review domain.Review) ReviewSummary {
	return ReviewSummary{
		ID:             review.ID,
		Rating:         review.Rating,
		Comment:        review.Comment,
		CustomerID:     review.CustomerID,
		ProfessionalID: review.ProfessionalID,
		AppointmentID:  review.AppointmentID,
	}
}

func newReviewSummaries(reviews []domain.Review) []ReviewSummary {
	out := make([]ReviewSummary, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, newReviewSummary(review))
	}
	return out
}

// ServiceRequest defines the payload for catalog create/update.
type ServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
	Price           float64 `json:"price" binding:"required"`
	Active          *bool   `json:"active"`
}

// ServiceSummary describes a catalog entry returned by the API.
type ServiceSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	ProfessionalID  string  `json:"professional_id"`
	Active          bool    `json:"active"`
}

func newServiceSummary(service domain.Service) ServiceSummary {
	return ServiceSummary{
		ID:              service.ID,
		Name:            service.Name,
		Description:     service.Description,
		DurationMinutes: service.DurationMinutes,
		Price:           service.Price,
		ProfessionalID:  service.ProfessionalID,
		Active:          service.Active,
	}
}

func newServiceSummaries(services []domain.Service) []ServiceSummary {
	out := make([]ServiceSummary, 0, len(services))
	for _, service := range services {
		out = append(out, newServiceSummary(service))
	}
	return out
}

// ProcessPaymentRequest defines the payload for recording a charge.
type ProcessPaymentRequest struct {
	AppointmentID string  `json:"appointment_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Currency      string  `json:"currency" binding:"required"`
	ProviderRef   *string `json:"provider_ref"`
}

// PaymentSummary describes a payment returned by the API.
type PaymentSummary struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Status        string  `json:"status"`
	AppointmentID string  `json:"appointment_id"`
	CustomerID    string  `json:"customer_id"`
	ProviderRef   *string `json:"provider_ref,omitempty"`
}

func newPaymentSummary(payment domain.Payment) PaymentSummary {
	return PaymentSummary{
		ID:            payment.ID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Status:        string(payment.Status),
		AppointmentID: payment.AppointmentID,
		CustomerID:    payment.CustomerID,
		ProviderRef:   payment.ProviderRef,
	}
}

func newPaymentSummaries(payments []domain.Payment) []PaymentSummary {
	out := make([]PaymentSummary, 0, len(payments))
	for _, payment := range payments {
		out = append(out, newPaymentSummary(payment))
	}
	return out
}

// HealthResponse reports liveness information.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports the outcome of each readiness probe.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
