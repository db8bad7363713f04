package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	JWTUserSecret    string `env:"JWT_USER_SECRET"`

	CryptoPayToken   string `env:"CRYPTO_PAY_TOKEN"`
	CryptoPayBaseURL string `env:"CRYPTO_PAY_BASE_URL" envDefault:"https://testnet-pay.crypt.bot"`

	// Бизнес-настройки. Протягиваются в сервисы явно, внутри бизнес-логики
	// глобальное состояние не читается.
	OrderLifetimeMinutes   int           `env:"ORDER_LIFETIME_MINUTES" envDefault:"60"`
	NoResponseCloseMinutes int           `env:"NO_RESPONSE_CLOSE_MINUTES" envDefault:"15"`
	MaxExecutorsPerOrder   int           `env:"MAX_EXECUTORS_PER_ORDER" envDefault:"3"`
	OrderTakeCost          int64         `env:"ORDER_TAKE_COST" envDefault:"2"`
	SweepInterval          time.Duration `env:"SWEEP_INTERVAL" envDefault:"60s"`
}

// Rules неизменяемый набор бизнес-правил для конструирования сервисов.
type Rules struct {
	OrderLifetimeMinutes   int
	NoResponseCloseMinutes int
	MaxExecutorsPerOrder   int
	OrderTakeCost          int64
}

func (c *Config) Rules() Rules {
	return Rules{
		OrderLifetimeMinutes:   c.OrderLifetimeMinutes,
		NoResponseCloseMinutes: c.NoResponseCloseMinutes,
		MaxExecutorsPerOrder:   c.MaxExecutorsPerOrder,
		OrderTakeCost:          c.OrderTakeCost,
	}
}

func LoadConfig() (*Config, error) {
	// .env опционален, ошибку отсутствия файла игнорируем.
	_ = godotenv.Load()

	var envConfig Config
	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	var flagsConfig Config
	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.TelegramBotToken == "" {
		return nil, errors.New("telegram bot token is not set")
	}
	if conf.JWTUserSecret == "" {
		return nil, errors.New("JWT secret is not set")
	}
	return conf, nil
}

func MustLoadConfig() *Config {
	config, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return config
}

func loadFlags(flagConfig *Config) {
	flag.StringVar(&flagConfig.RunAddress, "a", "localhost:8080", "Run address in format host:port")
	flag.StringVar(&flagConfig.DatabaseDSN, "d", "", "Database DSN")
	flag.StringVar(&flagConfig.MigrationsDir, "m", "internal/db/migrations", "Database migrations directory")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
