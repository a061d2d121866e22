package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"salescoach.app/engine/common/id"
	"salescoach.app/engine/common/llm"
	"salescoach.app/engine/common/logger"
	"salescoach.app/engine/common/otel"
	"salescoach.app/engine/core/config"
	"salescoach.app/engine/core/db"
	"salescoach.app/engine/internal/coaching"
	"salescoach.app/engine/internal/http/middleware"
	httprouter "salescoach.app/engine/internal/http/router"
	"salescoach.app/engine/internal/lock"
	"salescoach.app/engine/internal/mail"
	"salescoach.app/engine/internal/retriever/knowledge"
	"salescoach.app/engine/internal/scorer"
	"salescoach.app/engine/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "coaching engine starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var guard lock.AnalysisGuard
	if cfg.Redis.Enabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(redisOpts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
			os.Exit(1)
		}
		guard = lock.NewRedisGuard(redisClient, cfg.Redis.LockTTL)
		slog.InfoContext(ctx, "redis connected, analysis locking enabled")
	} else {
		slog.WarnContext(ctx, "redis not configured, concurrent analyses of one conversation are not serialized")
	}

	llmCfg := llm.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		Model:          cfg.OpenAI.Model,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
	}

	var llmClient llm.Client
	if cfg.OpenAI.Enabled() {
		llmClient, err = llm.New(llmCfg)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create llm client", "error", err)
			os.Exit(1)
		}
		slog.InfoContext(ctx, "llm scoring enabled", "model", llmClient.Model())
	} else {
		slog.InfoContext(ctx, "llm not configured, scoring runs on heuristics only")
	}

	var retriever *knowledge.Retriever
	if cfg.OpenAI.Enabled() && cfg.Typesense.Enabled() {
		embedder, err := llm.NewEmbedder(llmCfg)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create embedder", "error", err)
			os.Exit(1)
		}
		searcher := knowledge.NewTypesenseSearcher(knowledge.TypesenseConfig{
			URL:        cfg.Typesense.URL,
			APIKey:     cfg.Typesense.APIKey,
			Collection: cfg.Typesense.Collection,
		})
		retriever = knowledge.NewRetriever(embedder, searcher)
		slog.InfoContext(ctx, "knowledge retrieval enabled", "collection", cfg.Typesense.Collection)
	} else {
		slog.InfoContext(ctx, "knowledge retrieval disabled, coaching composes without augmentation")
	}

	sender := mail.NewClient(mail.Config{
		Endpoint: cfg.Email.Endpoint,
		APIKey:   cfg.Email.APIKey,
		From:     cfg.Email.From,
	})
	if !cfg.Email.Enabled() {
		slog.WarnContext(ctx, "email transport not configured, sends will fail until it is")
	}

	stores := store.NewStores(database.Querier())

	services := coaching.NewServices(coaching.Deps{
		Stores:       stores,
		Scorer:       scorer.New(llmClient),
		Retriever:    retriever,
		Guard:        guard,
		Tx:           coaching.NewTxRunner(database),
		Sender:       sender,
		ReplyBaseURL: cfg.ReplyBaseURL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *coaching.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services)

	return router
}

const banner = `
 ██████╗ ██████╗  █████╗  ██████╗██╗  ██╗██╗███╗   ██╗ ██████╗     ███████╗███╗   ██╗ ██████╗ ██╗███╗   ██╗███████╗
██╔════╝██╔═══██╗██╔══██╗██╔════╝██║  ██║██║████╗  ██║██╔════╝     ██╔════╝████╗  ██║██╔════╝ ██║████╗  ██║██╔════╝
██║     ██║   ██║███████║██║     ███████║██║██╔██╗ ██║██║  ███╗    █████╗  ██╔██╗ ██║██║  ███╗██║██╔██╗ ██║█████╗
██║     ██║   ██║██╔══██║██║     ██╔══██║██║██║╚██╗██║██║   ██║    ██╔══╝  ██║╚██╗██║██║   ██║██║██║╚██╗██║██╔══╝
╚██████╗╚██████╔╝██║  ██║╚██████╗██║  ██║██║██║ ╚████║╚██████╔╝    ███████╗██║ ╚████║╚██████╔╝██║██║ ╚████║███████╗
 ╚═════╝ ╚═════╝ ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝╚═╝  ╚═══╝ ╚═════╝     ╚══════╝╚═╝  ╚═══╝ ╚═════╝ ╚═╝╚═╝  ╚═══╝╚══════╝
`
