package http_swipe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	http_auth_middleware "github.com/spotilove/core/internal/delivery/http/middleware/auth"
	usecase_swipe "github.com/spotilove/core/internal/usecase/swipe"
)

type Controller struct {
	usecase    *usecase_swipe.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_swipe.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	swipes := router.Group("/swipes", c.middleware.AuthRequired())
	{
		swipes.POST("", c.record)
		swipes.GET("/stats", c.stats)
	}

	matches := router.Group("/matches", c.middleware.AuthRequired())
	{
		matches.GET("", c.matches)
	}
}

type RecordRequestDTO struct {
	TargetID string `json:"target_id" binding:"required,uuid"`
	IsLike   *bool  `json:"is_like" binding:"required"`
}

type RecordResponseDTO struct {
	Matched bool `json:"matched"`
}

// Record persists a swipe decision
// @Summary Record a swipe
// @Tags Swipes
// @Accept json
// @Produce json
// @Param request body RecordRequestDTO true "Swipe decision"
// @Success 200 {object} RecordResponseDTO "Swipe recorded"
// @Failure 400 {object} http_common.ErrorResponse "Invalid payload or self swipe"
// @Failure 404 {object} http_common.ErrorResponse "Target not found"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /swipes [post]
func (c *Controller) record(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	var req RecordRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid target id",
		})
		return
	}

	matched, err := c.usecase.Record(ctx, userID, targetID, *req.IsLike)
	if err != nil {
		c.logger.Error("failed to record swipe",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_swipe.ErrSelfReference):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "cannot swipe on yourself",
			})
		case errors.Is(err, usecase_swipe.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "target not found",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, RecordResponseDTO{Matched: matched})
}

type MatchDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Bio      string   `json:"bio"`
	Location string   `json:"location"`
	Images   []string `json:"images"`
}

type MatchesResponseDTO struct {
	Matches []MatchDTO `json:"matches"`
}

// Matches lists users with a mutual like
// @Summary Get matches
// @Tags Swipes
// @Produce json
// @Success 200 {object} MatchesResponseDTO "Current matches"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /matches [get]
func (c *Controller) matches(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	users, err := c.usecase.Matches(ctx, userID)
	if err != nil {
		c.logger.Error("failed to get matches",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	resp := MatchesResponseDTO{Matches: make([]MatchDTO, 0, len(users))}
	for _, u := range users {
		resp.Matches = append(resp.Matches, MatchDTO{
			ID:       u.ID.String(),
			Name:     u.Name,
			Age:      u.Age,
			Bio:      u.Bio,
			Location: u.Location,
			Images:   u.Images,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

type StatsResponseDTO struct {
	TotalSwipes int     `json:"total_swipes"`
	Likes       int     `json:"likes"`
	Passes      int     `json:"passes"`
	Matches     int     `json:"matches"`
	LikeRate    float64 `json:"like_rate"`
}

// Stats reports the caller's swipe activity
// @Summary Get swipe stats
// @Tags Swipes
// @Produce json
// @Success 200 {object} StatsResponseDTO "Swipe statistics"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /swipes/stats [get]
func (c *Controller) stats(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	stats, err := c.usecase.Stats(ctx, userID)
	if err != nil {
		c.logger.Error("failed to get swipe stats",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, StatsResponseDTO{
		TotalSwipes: stats.TotalSwipes,
		Likes:       stats.Likes,
		Passes:      stats.Passes,
		Matches:     stats.Matches,
		LikeRate:    stats.LikeRate,
	})
}
