package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	"github.com/spotilove/core/internal/model"
	"github.com/spotilove/core/internal/service/auth"
	usecase_user "github.com/spotilove/core/internal/usecase/user"
)

type Controller struct {
	users    *usecase_user.Usecase
	sessions *auth.Service
	logger   *slog.Logger
}

func New(users *usecase_user.Usecase, sessions *auth.Service) *Controller {
	return &Controller{
		users:    users,
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", c.register)
		authGroup.POST("/login", c.login)
		authGroup.POST("/logout", c.logout)
	}
}

type MusicProfileDTO struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
	Songs   []string `json:"songs"`
}

type RegisterRequestDTO struct {
	Name        string          `json:"name" binding:"required"`
	Age         int             `json:"age" binding:"required"`
	Gender      string          `json:"gender" binding:"required"`
	Orientation string          `json:"orientation" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	Password    string          `json:"password" binding:"required,min=6"`
	Bio         string          `json:"bio"`
	Location    string          `json:"location"`
	Profile     MusicProfileDTO `json:"music_profile" binding:"required"`
}

type RegisterResponseDTO struct {
	ID string `json:"id"`
}

// Register creates a user together with an initial music profile
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequestDTO true "Registration payload"
// @Success 201 {object} RegisterResponseDTO "User created"
// @Failure 400 {object} http_common.ErrorResponse "Invalid payload"
// @Failure 409 {object} http_common.ErrorResponse "Email already registered"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/register [post]
func (c *Controller) register(ctx *gin.Context) {
	var req RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	user, err := c.users.Register(ctx, usecase_user.RegisterParams{
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		Orientation: req.Orientation,
		Email:       req.Email,
		Password:    req.Password,
		Bio:         req.Bio,
		Location:    req.Location,
		Profile: model.MusicProfile{
			Genres:  req.Profile.Genres,
			Artists: req.Profile.Artists,
			Songs:   req.Profile.Songs,
		},
	})
	if err != nil {
		c.logger.Error("failed to register user", slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_user.ErrEmptyProfile):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "music profile must not be empty",
			})
		case errors.Is(err, usecase_user.ErrDuplicateEmail):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "email already registered",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, RegisterResponseDTO{ID: user.ID.String()})
}

type LoginRequestDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

// Login verifies credentials and issues a session token
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequestDTO true "Credentials"
// @Success 200 {object} LoginResponseDTO "Session issued"
// @Failure 401 {object} http_common.ErrorResponse "Invalid credentials"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	token, user, err := c.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "invalid credentials",
			})
			return
		}
		c.logger.Error("failed to log in", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, LoginResponseDTO{
		Token: token,
		ID:    user.ID.String(),
		Name:  user.Name,
	})
}

// Logout invalidates the presented session token
// @Summary Log out
// @Tags Auth
// @Success 204 "Session invalidated"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/logout [post]
func (c *Controller) logout(ctx *gin.Context) {
	token := ctx.GetHeader("X-Session-Token")
	if token == "" {
		ctx.Status(http.StatusNoContent)
		return
	}

	if err := c.sessions.Logout(token); err != nil {
		c.logger.Error("failed to log out", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}
