package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del dashboard.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Serve     ServeConfig     `yaml:"serve"`
	Log       LogConfig       `yaml:"log"`
}

// DataConfig describe de dónde se cargan los dos datasets.
type DataConfig struct {
	Source     string `yaml:"source"`      // csv | sqlite
	Dir        string `yaml:"dir"`         // directorio con los CSVs
	TradesFile string `yaml:"trades_file"` // log de trades cerrados
	EquityFile string `yaml:"equity_file"` // serie temporal de equity
	DSN        string `yaml:"dsn"`         // ruta al journal SQLite (source: sqlite)
}

// DashboardConfig controla el artefacto HTML y la tabla de trades recientes.
type DashboardConfig struct {
	Title        string `yaml:"title"`
	OutDir       string `yaml:"out_dir"`
	RecentTrades int    `yaml:"recent_trades"`
}

// ServeConfig controla el servidor local opcional.
type ServeConfig struct {
	Addr           string  `yaml:"addr"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Si el YAML no existe se usan los defaults — el dashboard tiene que poder
// arrancar sin configuración, junto a los CSVs del backtest.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// sin archivo: solo defaults
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Los nombres de archivo por defecto son los que emite el motor de backtest.
func setDefaults(cfg *Config) {
	if cfg.Data.Source == "" {
		cfg.Data.Source = "csv"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.TradesFile == "" {
		cfg.Data.TradesFile = "backtest_trades.csv"
	}
	if cfg.Data.EquityFile == "" {
		cfg.Data.EquityFile = "backtest_equity_curve.csv"
	}
	if cfg.Data.DSN == "" {
		cfg.Data.DSN = "backtest.db"
	}
	if cfg.Dashboard.Title == "" {
		cfg.Dashboard.Title = "Backtest Results"
	}
	if cfg.Dashboard.OutDir == "" {
		cfg.Dashboard.OutDir = "."
	}
	if cfg.Dashboard.RecentTrades <= 0 {
		cfg.Dashboard.RecentTrades = 10
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8000"
	}
	if cfg.Serve.RequestsPerSec <= 0 {
		cfg.Serve.RequestsPerSec = 20
	}
	if cfg.Serve.Burst <= 0 {
		cfg.Serve.Burst = 40
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
