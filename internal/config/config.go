package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// WebConfig centraliza la configuracion del servidor que muestra el portfolio.
type WebConfig struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"8080"`
	BackendURL     string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
	AdminURL       string        `env:"ADMIN_URL" envDefault:"/admin/"`
	GinMode        string        `env:"GIN_MODE" envDefault:"release"`
}

// APIConfig centraliza la configuracion del backend que sirve /api/portfolio/.
type APIConfig struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8000"`
	DatabaseURL     string        `env:"DATABASE_URL,required,notEmpty"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	MediaRoot       string        `env:"MEDIA_ROOT" envDefault:"media"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	SMTPHost        string        `env:"SMTP_HOST"`
	SMTPPort        int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser        string        `env:"SMTP_USER"`
	SMTPPass        string        `env:"SMTP_PASS"`
	SMTPFrom        string        `env:"SMTP_FROM"`
	SMTPFromName    string        `env:"SMTP_FROM_NAME"`
	SMTPUseTLS      bool          `env:"SMTP_USE_TLS" envDefault:"false"`
	ContactNotifyTo string        `env:"CONTACT_NOTIFY_TO"`
	ContactWindow   time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`
	ContactMax      int           `env:"CONTACT_RATE_MAX" envDefault:"5"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
}

// LoadWebConfig carga la configuracion del servidor web desde variables de entorno.
func LoadWebConfig() (*WebConfig, error) {
	var cfg WebConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAPIConfig carga la configuracion del backend desde variables de entorno.
func LoadAPIConfig() (*APIConfig, error) {
	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
