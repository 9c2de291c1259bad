package app

import (
	"context"
	"os"

	"github.com/spotilove/core/internal/config"
	http_auth "github.com/spotilove/core/internal/delivery/http/auth"
	http_chat "github.com/spotilove/core/internal/delivery/http/chat"
	http_init "github.com/spotilove/core/internal/delivery/http/init"
	http_auth_middleware "github.com/spotilove/core/internal/delivery/http/middleware/auth"
	http_suggestion "github.com/spotilove/core/internal/delivery/http/suggestion"
	http_swipe "github.com/spotilove/core/internal/delivery/http/swipe"
	http_user "github.com/spotilove/core/internal/delivery/http/user"
	ws_chat "github.com/spotilove/core/internal/delivery/ws/chat"
	infra_gemini "github.com/spotilove/core/internal/infra/gemini"
	infra_pg_init "github.com/spotilove/core/internal/infra/postgres/init"
	infra_postgres_chat "github.com/spotilove/core/internal/infra/postgres/chat"
	infra_postgres_queue "github.com/spotilove/core/internal/infra/postgres/queue"
	infra_postgres_swipe "github.com/spotilove/core/internal/infra/postgres/swipe"
	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	infra_redis_init "github.com/spotilove/core/internal/infra/redis/init"
	infra_session_cache "github.com/spotilove/core/internal/infra/redis/session"
	infra_s3 "github.com/spotilove/core/internal/infra/s3"
	"github.com/spotilove/core/internal/infra/s3mock"
	"github.com/spotilove/core/internal/service/auth"
	"github.com/spotilove/core/internal/service/compat"
	"github.com/spotilove/core/internal/service/enricher"
	usecase_chat "github.com/spotilove/core/internal/usecase/chat"
	usecase_suggestion "github.com/spotilove/core/internal/usecase/suggestion"
	usecase_swipe "github.com/spotilove/core/internal/usecase/swipe"
	usecase_user "github.com/spotilove/core/internal/usecase/user"
)

func Go(cfg *config.Config) {
	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	var photoStorage usecase_user.PhotoStorage
	if os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		photoStorage = s3mock.New()
	} else {
		s3conn := infra_s3.MustEstablishConn()
		storage, err := infra_s3.New(cfg.S3.Bucket, s3conn, cfg.S3.Prefix)
		if err != nil {
			panic(err)
		}
		photoStorage = storage
	}

	userRepository := infra_postgres_user.New(pgConn)
	queueRepository := infra_postgres_queue.New(pgConn)
	swipeRepository := infra_postgres_swipe.New(pgConn)
	chatRepository := infra_postgres_chat.New(pgConn)

	// The enricher writes from its own pool so a burst of slow external
	// calls cannot starve serving-path connections.
	enricherConn := infra_pg_init.MustEstablishConn(cfg.Postgres)
	enricherWorker := enricher.New(
		cfg.Enricher,
		infra_postgres_user.New(enricherConn),
		infra_postgres_queue.New(enricherConn),
		infra_gemini.New(cfg.Gemini),
	)
	go enricherWorker.Run(context.Background())

	scorer := compat.New()
	suggestionUC := usecase_suggestion.New(userRepository, queueRepository, swipeRepository, scorer, enricherWorker)
	swipeUC := usecase_swipe.New(swipeRepository, queueRepository, userRepository)
	userUC := usecase_user.New(userRepository, photoStorage)

	hub := ws_chat.NewHub()
	go hub.Run()
	chatUC := usecase_chat.New(chatRepository, swipeRepository, hub)

	sessionCache := infra_session_cache.New(redisConn, "session_cache")
	authService := auth.New(userRepository, sessionCache, cfg.Auth.SessionTTL)
	authMiddleware := http_auth_middleware.New(authService)

	userOpts := []http_user.Option{}
	if os.Getenv("ENABLE_DEV_ROUTES") == "true" {
		userOpts = append(userOpts, http_user.WithDevRoutes())
	}

	controllerPool := http_init.NewControllerPool()
	controllerPool.Add(http_auth.New(userUC, authService))
	controllerPool.Add(http_user.New(userUC, authMiddleware, userOpts...))
	controllerPool.Add(http_suggestion.New(suggestionUC, authMiddleware))
	controllerPool.Add(http_swipe.New(swipeUC, authMiddleware))
	controllerPool.Add(http_chat.New(chatUC, authMiddleware))
	controllerPool.Add(ws_chat.NewController(hub, authMiddleware))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
