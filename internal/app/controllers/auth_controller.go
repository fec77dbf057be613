// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/gradesphere/internal/app/models/dto"
	"github.com/yigit/gradesphere/internal/app/services"
	"github.com/yigit/gradesphere/internal/middleware"
	"github.com/yigit/gradesphere/internal/pkg/auth"
)

// AuthController handles signup, login, logout and profile lookups
type AuthController struct {
	accountService *services.AccountService
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(accountService *services.AccountService, jwtService *auth.JWTService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		accountService: accountService,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Signup handles user registration
// @Summary Register a new student account
// @Description Creates an account, establishes the session and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse} "Account created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid signup request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.accountService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Signup failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken(user)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userID", user.ID).Msg("Account created")

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  *user,
	}))
}

// Login handles user login
// @Summary Authenticate a student
// @Description Validates credentials and returns an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid login request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.accountService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	token, expiresIn, err := c.jwtService.GenerateToken(user)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to generate token")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn},
		User:  *user,
	}))
}

// Logout handles logout
// @Summary Log out
// @Description Clears the persisted session
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse "Logged out"
// @Security BearerAuth
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.accountService.Logout(ctx.Request.Context()); err != nil {
		c.logger.Error().Err(err).Msg("Logout failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// Me returns the acting user's profile
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Security BearerAuth
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := middleware.ActingUserID(ctx)

	user, err := c.accountService.UserByID(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(user))
}
