package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log        Logger         `mapstructure:"logger"`
	DB         Database       `mapstructure:"database"`
	API        API            `mapstructure:"api"`
	Cache      Cache          `mapstructure:"cache"`
	MarketData MarketData     `mapstructure:"market_data"`
	Screener   Screener       `mapstructure:"screener"`
	Telegram   TelegramConfig `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// MarketData configures the price-history provider.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	HistoryRange        string        `mapstructure:"history_range"`
	Interval            string        `mapstructure:"interval"`
}

// Screener configures the instrument universe, the run schedule and the
// engine parameters behind periodic screenings. Zero-valued engine fields
// fall back to the engine defaults.
type Screener struct {
	Universe        []string `mapstructure:"universe"`
	CronSchedule    string   `mapstructure:"cron_schedule"`
	Significance    float64  `mapstructure:"significance"`
	EntryZ          float64  `mapstructure:"entry_z"`
	ExitZ           float64  `mapstructure:"exit_z"`
	Window          int      `mapstructure:"window"`
	ADFLag          int      `mapstructure:"adf_lag"`
	CostRate        float64  `mapstructure:"cost_rate"`
	StopLoss        float64  `mapstructure:"stop_loss"`
	InitialNotional float64  `mapstructure:"initial_notional"`
	TrainRatio      float64  `mapstructure:"train_ratio"`
	MinObservations int      `mapstructure:"min_observations"`
	MaxWorkers      int      `mapstructure:"max_workers"`
}

type TelegramConfig struct {
	Enabled             bool          `mapstructure:"enabled"`
	BotToken            string        `mapstructure:"bot_token"`
	ChatID              int64         `mapstructure:"chat_id"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxMessagePerSecond int           `mapstructure:"max_message_per_second"`
}

func Load() (*Config, error) {
	// A local .env is optional; real environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
