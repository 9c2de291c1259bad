package http_chat

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	http_auth_middleware "github.com/spotilove/core/internal/delivery/http/middleware/auth"
	"github.com/spotilove/core/internal/model"
	usecase_chat "github.com/spotilove/core/internal/usecase/chat"
)

type Controller struct {
	usecase    *usecase_chat.Usecase
	middleware *http_auth_middleware.Middleware
	logger     *slog.Logger
}

func New(usecase *usecase_chat.Usecase, middleware *http_auth_middleware.Middleware) *Controller {
	return &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	messages := router.Group("/messages", c.middleware.AuthRequired())
	{
		messages.POST("", c.send)
		messages.GET("/unread-count", c.unreadCount)
		messages.GET("/:peer_id", c.conversation)
	}
}

type SendRequestDTO struct {
	ToUserID string `json:"to_user_id" binding:"required,uuid"`
	Content  string `json:"content" binding:"required"`
}

type MessageDTO struct {
	ID         string `json:"id"`
	FromUserID string `json:"from_user_id"`
	ToUserID   string `json:"to_user_id"`
	Content    string `json:"content"`
	SentAt     int64  `json:"sent_at"`
	IsRead     bool   `json:"is_read"`
}

// Send stores a message and pushes it to the recipient
// @Summary Send a message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body SendRequestDTO true "Message"
// @Success 201 {object} MessageDTO "Message stored"
// @Failure 400 {object} http_common.ErrorResponse "Invalid payload"
// @Failure 403 {object} http_common.ErrorResponse "Users are not matched"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /messages [post]
func (c *Controller) send(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	var req SendRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body",
		})
		return
	}
	toID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid recipient id",
		})
		return
	}

	msg, err := c.usecase.Send(ctx, userID, toID, req.Content)
	if err != nil {
		c.logger.Error("failed to send message",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		switch {
		case errors.Is(err, usecase_chat.ErrSelfReference),
			errors.Is(err, usecase_chat.ErrEmptyMessage):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
		case errors.Is(err, usecase_chat.ErrNotMatched):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Message: "users are not matched",
			})
		default:
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, toMessageDTO(msg))
}

type ConversationResponseDTO struct {
	Messages []MessageDTO `json:"messages"`
}

// Conversation returns the exchange with a peer, oldest first
// @Summary Get conversation
// @Tags Chat
// @Produce json
// @Param peer_id path string true "Peer user id"
// @Success 200 {object} ConversationResponseDTO "Conversation history"
// @Failure 400 {object} http_common.ErrorResponse "Invalid peer id"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /messages/{peer_id} [get]
func (c *Controller) conversation(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	peerID, err := uuid.Parse(ctx.Param("peer_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid peer id",
		})
		return
	}

	messages, err := c.usecase.Conversation(ctx, userID, peerID)
	if err != nil {
		c.logger.Error("failed to load conversation",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	resp := ConversationResponseDTO{Messages: make([]MessageDTO, 0, len(messages))}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, toMessageDTO(m))
	}

	ctx.JSON(http.StatusOK, resp)
}

type UnreadCountResponseDTO struct {
	Count int `json:"count"`
}

// UnreadCount reports how many messages await the caller
// @Summary Get unread count
// @Tags Chat
// @Produce json
// @Success 200 {object} UnreadCountResponseDTO "Unread messages"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Security SessionToken
// @Router /messages/unread-count [get]
func (c *Controller) unreadCount(ctx *gin.Context) {
	userID, ok := http_auth_middleware.UserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "not authenticated",
		})
		return
	}

	count, err := c.usecase.UnreadCount(ctx, userID)
	if err != nil {
		c.logger.Error("failed to count unread messages",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, UnreadCountResponseDTO{Count: count})
}

func toMessageDTO(m model.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID.String(),
		FromUserID: m.FromUserID.String(),
		ToUserID:   m.ToUserID.String(),
		Content:    m.Content,
		SentAt:     m.SentAt.Unix(),
		IsRead:     m.IsRead,
	}
}
