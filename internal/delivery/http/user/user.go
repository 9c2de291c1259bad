package http_user

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	http_auth_middleware "github.com/spotilove/core/internal/delivery/http/middleware/auth"
	"github.com/spotilove/core/internal/model"
	usecase_user "github.com/spotilove/core/internal/usecase/user"
)

const maxPhotoSize = 10 << 20

type Controller struct {
	usecase    *usecase_user.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger

	// Demo seeding endpoints are only registered when enabled.
	devRoutes bool
}

type Option func(*Controller)

func WithDevRoutes() Option {
	return func(c *Controller) {
		c.devRoutes = true
	}
}

func New(usecase *usecase_user.Usecase, middleware *http_auth_middleware.Middleware, opts ...Option) *Controller {
	c := &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users", c.middleware.AuthRequired())
	{
		users.GET("/me", c.me)
		users.PATCH("/me", c.update)
		users.PUT("/me/music-profile", c.replaceMusicProfile)
		users.POST("/me/photos", c.uploadPhoto)
	}

	if c.devRoutes {
		dev := router.Group("/dev")
		{
			dev.POST("/populate-users", c.populate)
			dev.DELETE("/clear-users", c.clear)
		}
	}
}

type UserResponseDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Orientation string   `json:"orientation"`
	Email       string   `json:"email"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Genres      []string `json:"genres"`
	Artists     []string `json:"artists"`
	Songs       []string `json:"songs"`
}

// Me returns the authenticated user's full profile
// @Summary Get own profile
// @Tags Users
// @Produce json
// @Success 200 {object} UserResponseDTO "Own profile"
// @Failure 404 {object} http_common.ErrorResponse "User not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /users/me [get]
func (c *Controller) me(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	user, err := c.usecase.Get(ctx, userID)
	if err != nil {
		c.logger.Error("failed to load user",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "user not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, toUserResponseDTO(user))
}

type UpdateRequestDTO struct {
	Age         int    `json:"age" binding:"required"`
	Gender      string `json:"gender" binding:"required"`
	Orientation string `json:"orientation" binding:"required"`
	Bio         string `json:"bio"`
}

// Update rewrites the basic profile fields
// @Summary Update own profile
// @Tags Users
// @Accept json
// @Success 204 "Profile updated"
// @Failure 400 {object} http_common.ErrorResponse "Invalid payload"
// @Failure 404 {object} http_common.ErrorResponse "User not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /users/me [patch]
func (c *Controller) update(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	var req UpdateRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	if err := c.usecase.UpdateBasic(ctx, userID, req.Age, req.Gender, req.Orientation, req.Bio); err != nil {
		c.logger.Error("failed to update user",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "user not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

type ReplaceMusicProfileRequestDTO struct {
	Genres  []string `json:"genres"`
	Artists []string `json:"artists"`
	Songs   []string `json:"songs"`
}

// ReplaceMusicProfile swaps the whole taste profile in one shot
// @Summary Replace music profile
// @Tags Users
// @Accept json
// @Success 204 "Profile replaced"
// @Failure 400 {object} http_common.ErrorResponse "Empty profile"
// @Failure 404 {object} http_common.ErrorResponse "User not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /users/me/music-profile [put]
func (c *Controller) replaceMusicProfile(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	var req ReplaceMusicProfileRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}

	err := c.usecase.ReplaceMusicProfile(ctx, model.MusicProfile{
		UserID:  userID,
		Genres:  req.Genres,
		Artists: req.Artists,
		Songs:   req.Songs,
	})
	if err != nil {
		c.logger.Error("failed to replace music profile",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_user.ErrEmptyProfile):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "music profile must not be empty",
			})
		case errors.Is(err, usecase_user.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "user not found",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

type UploadPhotoResponseDTO struct {
	URL string `json:"url"`
}

// UploadPhoto stores a profile photo in object storage
// @Summary Upload a photo
// @Tags Users
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file"
// @Success 201 {object} UploadPhotoResponseDTO "Photo stored"
// @Failure 400 {object} http_common.ErrorResponse "Invalid upload"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /users/me/photos [post]
func (c *Controller) uploadPhoto(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	header, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "missing photo file",
		})
		return
	}
	if header.Size > maxPhotoSize {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "photo too large",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "failed to read photo",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "failed to read photo",
		})
		return
	}

	url, err := c.usecase.UploadPhoto(ctx, userID, header.Filename, content)
	if err != nil {
		c.logger.Error("failed to upload photo",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		if errors.Is(err, usecase_user.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "user not found",
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, UploadPhotoResponseDTO{URL: url})
}

type PopulateResponseDTO struct {
	Created int `json:"created"`
}

func (c *Controller) populate(ctx *gin.Context) {
	count, _ := strconv.Atoi(ctx.DefaultQuery("count", "20"))

	created, err := c.usecase.PopulateDemoUsers(ctx, count)
	if err != nil {
		c.logger.Error("failed to populate demo users", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, PopulateResponseDTO{Created: created})
}

type ClearResponseDTO struct {
	Deleted int `json:"deleted"`
}

func (c *Controller) clear(ctx *gin.Context) {
	deleted, err := c.usecase.ClearUsers(ctx)
	if err != nil {
		c.logger.Error("failed to clear users", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, ClearResponseDTO{Deleted: deleted})
}

func toUserResponseDTO(u model.User) UserResponseDTO {
	dto := UserResponseDTO{
		ID:          u.ID.String(),
		Name:        u.Name,
		Age:         u.Age,
		Gender:      u.Gender,
		Orientation: u.Orientation,
		Email:       u.Email,
		Bio:         u.Bio,
		Location:    u.Location,
		Images:      u.Images,
	}
	if u.Profile != nil {
		dto.Genres = u.Profile.Genres
		dto.Artists = u.Profile.Artists
		dto.Songs = u.Profile.Songs
	}
	return dto
}
