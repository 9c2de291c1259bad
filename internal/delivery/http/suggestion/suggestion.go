package http_suggestion

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	http_auth_middleware "github.com/spotilove/core/internal/delivery/http/middleware/auth"
	"github.com/spotilove/core/internal/model"
	usecase_suggestion "github.com/spotilove/core/internal/usecase/suggestion"
)

type Controller struct {
	usecase    *usecase_suggestion.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_suggestion.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions", c.middleware.AuthRequired())
	{
		suggestions.GET("", c.suggest)
	}
}

type SuggestedUserDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Gender   string   `json:"gender"`
	Bio      string   `json:"bio"`
	Location string   `json:"location"`
	Images   []string `json:"images"`
	Genres   []string `json:"genres"`
	Artists  []string `json:"artists"`
	Songs    []string `json:"songs"`
}

type SuggestionDTO struct {
	User     SuggestedUserDTO `json:"user"`
	Score    float64          `json:"score"`
	Position int              `json:"position"`
}

type SuggestResponseDTO struct {
	Status      string          `json:"status"`
	QueueSize   int             `json:"queue_size"`
	Suggestions []SuggestionDTO `json:"suggestions"`
}

// Suggest serves the top of the caller's ranked suggestion queue
// @Summary Get suggestions
// @Tags Suggestions
// @Produce json
// @Param count query int false "Number of suggestions, clamped to [1, 50]" default(10)
// @Success 200 {object} SuggestResponseDTO "Ranked suggestions"
// @Failure 401 {object} http_common.ErrorResponse "Not authenticated"
// @Failure 404 {object} http_common.ErrorResponse "User not found"
// @Failure 422 {object} http_common.ErrorResponse "User has no music profile"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /suggestions [get]
func (c *Controller) suggest(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	count, _ := strconv.Atoi(ctx.DefaultQuery("count", "0"))

	result, err := c.usecase.Suggest(ctx, userID, count)
	if err != nil {
		c.logger.Error("failed to get suggestions",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_suggestion.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "user not found",
			})
		case errors.Is(err, usecase_suggestion.ErrProfileMissing):
			ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
				Message: "profile missing",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	resp := SuggestResponseDTO{
		Status:      string(result.Status),
		QueueSize:   result.QueueSize,
		Suggestions: make([]SuggestionDTO, 0, len(result.Entries)),
	}
	for _, entry := range result.Entries {
		resp.Suggestions = append(resp.Suggestions, SuggestionDTO{
			User:     toSuggestedUserDTO(entry.User),
			Score:    entry.Score,
			Position: entry.Position,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

func toSuggestedUserDTO(u model.User) SuggestedUserDTO {
	dto := SuggestedUserDTO{
		ID:       u.ID.String(),
		Name:     u.Name,
		Age:      u.Age,
		Gender:   u.Gender,
		Bio:      u.Bio,
		Location: u.Location,
		Images:   u.Images,
	}
	if u.Profile != nil {
		dto.Genres = u.Profile.Genres
		dto.Artists = u.Profile.Artists
		dto.Songs = u.Profile.Songs
	}
	return dto
}
