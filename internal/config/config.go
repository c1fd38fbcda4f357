// Package config carga la configuración del servicio desde defaults,
// variables de entorno y, opcionalmente, un archivo (yaml/json/toml).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"vet-clinic-records/internal/platform/logger"
)

const (
	keyPort           = "PORT"
	keyDBDriver       = "DB_DRIVER"
	keyDBDSN          = "DB_DSN"
	keySQLitePath     = "SQLITE_PATH"
	keyDBMaxOpenConns = "DB_MAX_OPEN_CONNS"
	keyLogLevel       = "LOG_LEVEL"
	keyLogFormat      = "LOG_FORMAT"
	keyAppName        = "APP_NAME"
)

// Drivers soportados.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port           string
	DBDriver       string
	DBDSN          string
	SQLitePath     string
	DBMaxOpenConns int
	LogLevel       logger.Level
	LogFormat      logger.Format
	AppName        string
}

// Addr devuelve la dirección de escucha HTTP.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load arma la configuración. configFile vacío significa solo env + defaults;
// un archivo indicado que no existe es un error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyDBDriver, DriverMemory)
	v.SetDefault(keyDBDSN, "")
	v.SetDefault(keySQLitePath, "vetclinic.db")
	v.SetDefault(keyDBMaxOpenConns, 10)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyAppName, "vet-clinic-records")
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:           strings.TrimSpace(v.GetString(keyPort)),
		DBDriver:       strings.ToLower(strings.TrimSpace(v.GetString(keyDBDriver))),
		DBDSN:          strings.TrimSpace(v.GetString(keyDBDSN)),
		SQLitePath:     strings.TrimSpace(v.GetString(keySQLitePath)),
		DBMaxOpenConns: v.GetInt(keyDBMaxOpenConns),
		LogLevel:       logger.ParseLevel(v.GetString(keyLogLevel)),
		LogFormat:      logger.ParseFormat(v.GetString(keyLogFormat)),
		AppName:        strings.TrimSpace(v.GetString(keyAppName)),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, keyPort)
	}
	switch c.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		// sin DSN no hay fallback silencioso a memoria
		if c.DBDSN == "" {
			return fmt.Errorf("%w: %s=postgres requires %s", ErrInvalidConfig, keyDBDriver, keyDBDSN)
		}
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, keyDBDriver, c.DBDriver)
	}
	if c.DBMaxOpenConns <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, keyDBMaxOpenConns)
	}
	return nil
}
