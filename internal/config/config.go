package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	App        App        `mapstructure:"app"`
	Server     Server     `mapstructure:"server"`
	Storage    Storage    `mapstructure:"storage"`
	Email      Email      `mapstructure:"email"`
	Restaurant Restaurant `mapstructure:"restaurant"`
}

// App holds application-wide settings.
type App struct {
	Env string `mapstructure:"env"` // "development" or "production"
}

// Production reports whether the app runs in production mode.
// Error details are hidden from HTTP responses in production.
func (a App) Production() bool {
	return a.Env == "production"
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Storage holds the reservation record store configuration.
type Storage struct {
	Dir string `mapstructure:"dir"` // directory holding one file per reservation
}

// Email holds SMTP configuration for sending notifications.
//
// Username and Password are the two required secrets: when either is
// missing the mail channel is disabled, not an error.
type Email struct {
	SMTPHost string        `mapstructure:"smtp_host"`
	SMTPPort string        `mapstructure:"smtp_port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	Timeout  time.Duration `mapstructure:"timeout"` // cap on a single SMTP exchange
}

// Configured reports whether both SMTP secrets are present.
func (e Email) Configured() bool {
	return e.Username != "" && e.Password != ""
}

// Restaurant identifies the venue on whose behalf notifications are sent.
type Restaurant struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"` // inbox receiving reservation summaries
	Phone string `mapstructure:"phone"` // fallback contact surfaced to guests on failure
}

// mustBindEnv binds critical environment variables to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"app.env": "APP_ENV",

		"server.http_port": "HTTP_PORT",

		"storage.dir": "RESERVATIONS_DIR",

		"email.smtp_host": "SMTP_HOST",
		"email.smtp_port": "SMTP_PORT",
		"email.username":  "SMTP_USER",
		"email.password":  "SMTP_PASS",
		"email.from":      "SMTP_FROM",

		"restaurant.name":  "RESTAURANT_NAME",
		"restaurant.email": "RESTAURANT_EMAIL",
		"restaurant.phone": "RESTAURANT_PHONE",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// Must loads and validates the configuration from file and environment variables.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	// The restaurant inbox defaults to the SMTP account itself.
	if cfg.Restaurant.Email == "" {
		cfg.Restaurant.Email = cfg.Email.Username
	}

	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}

	return &cfg
}
