package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/usecase"
)

// ErrorCase maps a sentinel error to an envelope code.
type ErrorCase struct {
	Err  error
	Code string
}

// RespondWithMappedError resolves the provided error against known cases.
// Validation errors always map to VALIDATION_FAILED; anything unmatched
// becomes INTERNAL_SERVER_ERROR.
func RespondWithMappedError(c *gin.Context, err error, cases ...ErrorCase) {
	if err == nil {
		Respond(c, OK(nil, CodeOK))
		return
	}

	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		Respond(c, Fail(CodeValidationFailed))
		return
	}

	for _, cs := range cases {
		if cs.Err == nil {
			continue
		}
		if errors.Is(err, cs.Err) {
			Respond(c, Fail(cs.Code))
			return
		}
	}

	Respond(c, Fail(CodeInternalServerError))
}
