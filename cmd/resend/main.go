// Command resend re-sends both notifications for every stored
// reservation. It is a recovery tool for outages of the mail channel:
// records written while sends were failing get their emails again.
package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/zlog"

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

	// Correlates every line of one run in aggregated logs.
	log := zlog.Logger.With().Str("run_id", uuid.New().String()).Logger()

	repo, err := resvrepo.NewRepository(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("failed to open reservation storage")
	}

	var client *email.Client
	if cfg.Email.Configured() {
		smtpPort, err := strconv.Atoi(cfg.Email.SMTPPort)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse smtp port")
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
	if state != notifier.StateReady {
		log.Warn().Str("state", state.String()).Msg("mail channel not ready, all records will be skipped")
	}

	service := resvsvc.NewService(repo, notifier.New(client, state, cfg.Restaurant))

	results, err := service.ResendAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resend notifications")
	}

	var full, partial, skipped int
	for _, res := range results {
		if res.Outcome.Skipped {
			skipped++
			log.Warn().Str("id", res.ID).Msg("skipped, mail channel not ready")
			continue
		}

		log.Info().
			Str("id", res.ID).
			Bool("restaurant", res.Outcome.Restaurant).
			Bool("guest", res.Outcome.Guest).
			Msg("resend attempted")

		if res.Outcome.Full() {
			full++
		} else {
			partial++
		}
	}

	log.Info().
		Int("records", len(results)).
		Int("full", full).
		Int("partial", partial).
		Int("skipped", skipped).
		Msg("resend finished")
}
