package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/zlog"

	resvhandler "github.com/casaluna/reservations/internal/api/handlers/reservation"
	"github.com/casaluna/reservations/internal/api/router"
	"github.com/casaluna/reservations/internal/api/server"
	"github.com/casaluna/reservations/internal/config"
	"github.com/casaluna/reservations/internal/notifier"
	resvrepo "github.com/casaluna/reservations/internal/repository/reservation"
	resvsvc "github.com/casaluna/reservations/internal/service/reservation"
	"github.com/casaluna/reservations/pkg/email"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()

	if err := godotenv.Load(); err != nil {
		zlog.Logger.Info().Msg(".env not found, using process environment")
	}

	cfg := config.Must()
	val := validator.New()

	repo, err := resvrepo.NewRepository(cfg.Storage.Dir)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("failed to init reservation storage")
	}

	var client *email.Client
	if cfg.Email.Configured() {
		smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to parse smtp port")
		}

		client = email.NewClient(
			cfg.Email.SMTPHost,
			smtpPort,
			cfg.Email.Username,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.Email.Timeout,
		)
	}

	state := notifier.Configure(cfg.Email, client)
	ntf := notifier.New(client, state, cfg.Restaurant)

	service := resvsvc.NewService(repo, ntf)
	handler := resvhandler.NewHandler(service, val, cfg)

	r := router.New(handler, "./public")
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	zlog.Logger.Info().
		Str("addr", cfg.Server.HTTPPort).
		Str("mail_channel", state.String()).
		Msg("server started")

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}
}
