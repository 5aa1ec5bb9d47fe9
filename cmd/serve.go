package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/rueidis"
	"github.com/spf13/cobra"

	config "taskhero.com/taskhero/internal/configs"
	"taskhero.com/taskhero/internal/gateway"
	"taskhero.com/taskhero/internal/grouping"
	httpapi "taskhero.com/taskhero/internal/http"
	"taskhero.com/taskhero/internal/queue"
	repository "taskhero.com/taskhero/internal/repositories"
	"taskhero.com/taskhero/internal/services"
	"taskhero.com/taskhero/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Starts the TaskHero web app and the generation worker pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// A slot covers a generation that is running or waiting in the queue.
		slots := cfg.GenerationWorkers + cfg.GenerationQueueSize

		var (
			tokens       queue.TokenManager
			sessionStore sessions.Store
		)
		if cfg.RedisEnabled {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			tokens, sessionStore = redisBackends(redisClient, cfg)
		} else {
			log.Println("redis disabled, using in-memory generation slots and sessions")
			tokens = queue.NewMemoryTokenManager(slots)
			sessionStore = sessions.NewMemoryStore(cfg.SessionTTL)
		}

		if err := tokens.InitializeTokens(ctx, slots); err != nil {
			return err
		}

		generator := gateway.New(gateway.Config{
			URL:          cfg.GenerateURL,
			DefaultModel: cfg.GenerateModel,
			Timeout:      cfg.GenerateTimeout,
		})
		pool := services.NewGenerationPool(generator, tokens, cfg.GenerationWorkers, cfg.GenerationQueueSize)

		taskService := services.NewTaskService(
			repository.NewTaskRepository(database),
			repository.NewActivityRepository(database),
			grouping.New(grouping.DefaultConfig()),
		)
		promptService := services.NewPromptService(repository.NewPromptRepository(database), pool)
		authService := services.NewAuthService(repository.NewUserRepository(database), sessionStore, cfg.BcryptCost)

		renderer, err := httpapi.NewRenderer()
		if err != nil {
			return err
		}

		e := echo.New()
		e.HideBanner = true
		e.Renderer = renderer
		httpapi.Register(e, httpapi.NewHandler(taskService, promptService, authService), cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("server stopped: %v", err)
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown failed: %v", err)
		}
		pool.Shutdown(shutdownCtx)

		log.Println("HTTP server and generation pool shut down gracefully")
		return nil
	},
}

func redisBackends(client rueidis.Client, cfg config.Config) (queue.TokenManager, sessions.Store) {
	return queue.NewRedisTokenManager(client, cfg.RedisSlotsKey),
		sessions.NewRedisStore(client, cfg.RedisSessionPrefix, cfg.SessionTTL)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
