package config

import (
	"errors"
	"flag"
	"fmt"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	DatabaseDSN   string `env:"DATABASE_URI"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`

	GatewayAPIURL   string `env:"GATEWAY_API_URL"`
	GatewayInstance string `env:"GATEWAY_INSTANCE"`
	GatewayToken    string `env:"GATEWAY_TOKEN"`
	WebsiteURL      string `env:"WEBSITE_URL"`

	// крон-расписания проходов. По умолчанию: начисление ежечасно, отчеты ежедневно,
	// рекомендации каждые 6 часов.
	AccrualSpec    string `env:"ACCRUAL_SPEC" envDefault:"0 * * * *"`
	ReportSpec     string `env:"REPORT_SPEC" envDefault:"0 9 * * *"`
	SuggestionSpec string `env:"SUGGESTION_SPEC" envDefault:"30 */6 * * *"`
}

func LoadConfig() (*Config, error) {
	var flagsConfig, envConfig Config

	if envParseErr := env.Parse(&envConfig); envParseErr != nil {
		return nil, fmt.Errorf("parse env config: %s", envParseErr.Error())
	}

	loadFlags(&flagsConfig)

	conf := mergeConfig(&envConfig, &flagsConfig)
	if conf.DatabaseDSN == "" {
		return nil, errors.New("database DSN is not set")
	}
	if conf.GatewayInstance == "" || conf.GatewayToken == "" {
		return nil, errors.New("gateway credentials are not set")
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
	flag.StringVar(&flagConfig.MigrationsDir, "m", "migrations", "Database migrations directory")
	flag.StringVar(&flagConfig.GatewayAPIURL, "g", "https://api.ultramsg.com", "Messaging gateway base URL")

	flag.Parse()
}

func mergeConfig(envConfig, flagsConfig *Config) *Config {
	merged := *envConfig
	merged.RunAddress = defaultIfBlank(envConfig.RunAddress, flagsConfig.RunAddress)
	merged.DatabaseDSN = defaultIfBlank(envConfig.DatabaseDSN, flagsConfig.DatabaseDSN)
	merged.MigrationsDir = defaultIfBlank(envConfig.MigrationsDir, flagsConfig.MigrationsDir)
	merged.GatewayAPIURL = defaultIfBlank(envConfig.GatewayAPIURL, flagsConfig.GatewayAPIURL)
	return &merged
}

func defaultIfBlank(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
