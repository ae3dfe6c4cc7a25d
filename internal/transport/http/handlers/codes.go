package handlers

import "net/http"

// Success codes returned in the result envelope. Clients key on these
// rather than on HTTP statuses.
const (
	CodeOK = "OK"

	CodeUserRegistered = "USER_REGISTERED"
	CodeUserLoggedIn   = "USER_LOGGED_IN"
	CodeUserUpdated    = "USER_UPDATED"
	CodeUserDeleted    = "USER_DELETED"

	CodeProfileImageUpdated = "PROFILE_IMAGE_UPDATED"
	CodeProfileImageDeleted = "PROFILE_IMAGE_DELETED"

	CodeAppointmentBooked    = "APPOINTMENT_BOOKED"
	CodeAppointmentUpdated   = "APPOINTMENT_UPDATED"
	CodeAppointmentCancelled = "APPOINTMENT_CANCELLED"
	CodePaymentProcessed     = "PAYMENT_PROCESSED"
	CodePaymentUpdated       = "PAYMENT_UPDATED"
	CodePaymentDeleted       = "PAYMENT_DELETED"
	CodeReviewSubmitted      = "REVIEW_SUBMITTED"
	CodeReviewUpdated        = "REVIEW_UPDATED"
	CodeReviewDeleted        = "REVIEW_DELETED"
	CodeRoleCreated          = "ROLE_CREATED"
	CodeRoleUpdated          = "ROLE_UPDATED"
	CodeRoleDeleted          = "ROLE_DELETED"
	CodeServiceAdded         = "SERVICE_ADDED"
	CodeServiceUpdated       = "SERVICE_UPDATED"
	CodeServiceDeleted       = "SERVICE_DELETED"
)

// Error codes returned in the result envelope.
const (
	CodeEmailAlreadyExists      = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeUserNotFound            = "USER_NOT_FOUND"
	CodeUnauthorizedAccess      = "UNAUTHORIZED_ACCESS"
	CodeInvalidRequestData      = "INVALID_REQUEST_DATA"
	CodeInternalServerError     = "INTERNAL_SERVER_ERROR"
	CodeResourceNotFound        = "RESOURCE_NOT_FOUND"
	CodeOperationNotAllowed     = "OPERATION_NOT_ALLOWED"
	CodeTokenExpired            = "TOKEN_EXPIRED"
	CodeTokenInvalidated        = "TOKEN_INVALIDATED"
	CodeInsufficientPermissions = "INSUFFICIENT_PERMISSIONS"
	CodeDuplicateResource       = "DUPLICATE_RESOURCE"
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeRateLimitExceeded       = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable      = "SERVICE_UNAVAILABLE"
)

// StatusForCode maps an envelope code to its HTTP status. Unknown codes
// fall back to 200 for successes and 500 for failures.
func StatusForCode(code string, success bool) int {
	switch code {
	case CodeResourceNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeUnauthorizedAccess, CodeTokenExpired, CodeTokenInvalidated:
		return http.StatusUnauthorized
	case CodeInsufficientPermissions, CodeOperationNotAllowed:
		return http.StatusForbidden
	case CodeInvalidRequestData, CodeValidationFailed, CodeInvalidCredentials:
		return http.StatusBadRequest
	case CodeDuplicateResource, CodeEmailAlreadyExists:
		return http.StatusConflict
	case CodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case CodeInternalServerError:
		return http.StatusInternalServerError

	case CodeUserRegistered, CodeAppointmentBooked, CodePaymentProcessed,
		CodeReviewSubmitted, CodeRoleCreated, CodeServiceAdded:
		return http.StatusCreated

	case CodeUserDeleted, CodeProfileImageDeleted, CodePaymentDeleted,
		CodeReviewDeleted, CodeRoleDeleted, CodeServiceDeleted,
		CodeAppointmentCancelled:
		return http.StatusNoContent
	}

	if success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
