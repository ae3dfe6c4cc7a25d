package handlers

import (
	"net/http"
	"testing"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code    string
		success bool
		want    int
	}{
		{CodeUserRegistered, true, http.StatusCreated},
		{CodeAppointmentBooked, true, http.StatusCreated},
		{CodeUserDeleted, true, http.StatusNoContent},
		{CodeAppointmentCancelled, true, http.StatusNoContent},
		{CodeUserLoggedIn, true, http.StatusOK},
		{CodeOK, true, http.StatusOK},
		{CodeUserNotFound, false, http.StatusNotFound},
		{CodeResourceNotFound, false, http.StatusNotFound},
		{CodeUnauthorizedAccess, false, http.StatusUnauthorized},
		{CodeTokenExpired, false, http.StatusUnauthorized},
		{CodeTokenInvalidated, false, http.StatusUnauthorized},
		{CodeInsufficientPermissions, false, http.StatusForbidden},
		{CodeOperationNotAllowed, false, http.StatusForbidden},
		{CodeInvalidRequestData, false, http.StatusBadRequest},
		{CodeValidationFailed, false, http.StatusBadRequest},
		{CodeInvalidCredentials, false, http.StatusBadRequest},
		{CodeEmailAlreadyExists, false, http.StatusConflict},
		{CodeDuplicateResource, false, http.StatusConflict},
		{CodeRateLimitExceeded, false, http.StatusTooManyRequests},
		{CodeServiceUnavailable, false, http.StatusServiceUnavailable},
		{CodeInternalServerError, false, http.StatusInternalServerError},
		{"SOMETHING_NEW", true, http.StatusOK},
		{"SOMETHING_BROKE", false, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := StatusForCode(tc.code, tc.success); got != tc.want {
			t.Errorf("StatusForCode(%q, %t) = %d, want %d", tc.code, tc.success, got, tc.want)
		}
	}
}
