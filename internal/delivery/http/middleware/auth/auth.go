package http_auth_middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	http_common "github.com/spotilove/core/internal/delivery/http/common"
	"github.com/spotilove/core/internal/service/auth"
)

// ContextUserID is the gin context key the resolved user id is stored under.
const ContextUserID = "user_id"

const header = "X-Session-Token"

type Middleware struct {
	sessions *auth.Service
	logger   *slog.Logger
}

func New(sessions *auth.Service) *Middleware {
	return &Middleware{
		sessions: sessions,
		logger:   slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(header)
		if t == "" {
			m.logger.Error("missing session header", slog.String("header", header))
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "missing " + header + " header",
			})
			ctx.Abort()
			return
		}

		userID, err := m.sessions.Resolve(t)
		if err != nil {
			if errors.Is(err, auth.ErrSessionNotFound) {
				m.logger.Error("invalid session token")
				ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
					Message: "invalid session token",
				})
				ctx.Abort()
				return
			}
			m.logger.Error("failed to resolve session", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserID, userID)
		ctx.Next()
	}
}

// UserID pulls the authenticated user out of the gin context. It must only
// be called behind AuthRequired.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(ContextUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
