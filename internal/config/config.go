package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type EscrowConfig struct {
	Env string `yaml:"env"`
	EscrowDB         `yaml:"escrow_db"`
	LogConfig        `yaml:"log_config"`
	HTTPServer       `yaml:"http_server"`
	MetricsServer    `yaml:"metrics_server"`
	KafkaService     `yaml:"kafka-service"`
	AnalyticsService `yaml:"analytics-service"`
	Commission       `yaml:"commission"`
	Marketplace      `yaml:"marketplace"`
}

type EscrowDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MetricsServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AnalyticsService struct {
	BaseURL string `yaml:"base_url"`
}

type Commission struct {
	// Доля платформы (reach) в процентах от суммы сделки
	PlatformFeePercent float64 `yaml:"platform_fee_percent"`
}

type Marketplace struct {
	CallbackUrl string `yaml:"callback_url"`
}

func MustLoad() *EscrowConfig {

	// Processing env config variable and file
	configPath := os.Getenv("ESCROW_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("ESCROW_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg EscrowConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
