package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bookerhq/booker-backend/internal/infra/logger"
	"github.com/bookerhq/booker-backend/internal/transport/http/middleware"
	"github.com/bookerhq/booker-backend/internal/usecase"
)

// AuthHandler exposes registration, login, and logout endpoints.
type AuthHandler struct {
	auth  *usecase.AuthService
	audit *logger.Audit
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *usecase.AuthService, audit *logger.Audit) *AuthHandler {
	if audit == nil {
		audit = logger.NewAudit(nil)
	}
	return &AuthHandler{auth: auth, audit: audit}
}

// RegisterRoutes binds authentication routes, applying optional middleware
// ahead of the rate-limited handlers.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, registerMiddlewares, loginMiddlewares []gin.HandlerFunc) {
	registerChain := append([]gin.HandlerFunc{}, registerMiddlewares...)
	registerChain = append(registerChain, h.register)
	r.POST("/register", registerChain...)

	loginChain := append([]gin.HandlerFunc{}, loginMiddlewares...)
	loginChain = append(loginChain, h.login)
	r.POST("/login", loginChain...)

	r.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.audit.Warning("registration rejected", "auth")
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrEmailAlreadyExists, Code: CodeEmailAlreadyExists},
			ErrorCase{Err: usecase.ErrRoleRegistryUnavailable, Code: CodeServiceUnavailable},
		)
		return
	}

	h.audit.Success("user registered", "auth")
	Respond(c, OK(newUserSummary(*user), CodeUserRegistered))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Respond(c, Fail(CodeInvalidRequestData))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.audit.Warning("login rejected", "auth")
		RespondWithMappedError(c, err,
			ErrorCase{Err: usecase.ErrInvalidCredentials, Code: CodeInvalidCredentials},
		)
		return
	}

	h.audit.Success("user logged in", "auth")
	Respond(c, OK(LoginData{
		Token: result.Token,
		Scope: result.Scope,
		User:  newUserSummary(result.User),
	}, CodeUserLoggedIn))
}

// logout ends the presented session. A request without a usable bearer
// token has no session to end and succeeds as a no-op.
func (h *AuthHandler) logout(c *gin.Context) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		Respond(c, OK(nil, CodeOK))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, usecase.ErrTokenNotActive) {
			Respond(c, OK(nil, CodeOK))
			return
		}
		RespondWithMappedError(c, err)
		return
	}

	h.audit.Success("user logged out", "auth")
	Respond(c, OK(nil, CodeOK))
}
