package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type (
	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		SecretKey    string
		Build        string
		RollbarToken string
		Server       ServerConfig
		Store        StoreConfig
		Log          LogConfig
	}

	ServerConfig struct {
		Host                      string
		Address                   string
		DisableRequestLogs        bool
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
	}

	// StoreConfig selects where the persisted collections live.
	// Path is used by the file and sqlite backends, DSN by postgres.
	StoreConfig struct {
		Backend string
		Path    string
		DSN     string
	}

	LogConfig struct {
		Level  string
		Pretty bool
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Aménagement")
	conf.SetDefault("secretKey", "kf9+l2p#x7w!amenag3ment$v&7q*0zt^c5r@u8e1(bn)y4")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.disableRequestLogs", false)
	conf.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("store.backend", BackendFile)
	conf.SetDefault("store.path", "data")
	conf.SetDefault("store.dsn", "")
	conf.SetDefault("log.level", "debug")
	conf.SetDefault("log.pretty", true)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
		conf.SetDefault("store.backend", BackendMemory)
		conf.SetDefault("server.disableRequestLogs", true)
	case "QA", "PROD":
		conf.SetDefault("debug", false)
		conf.SetDefault("log.level", "info")
		conf.SetDefault("log.pretty", false)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	cfg := &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      conf.GetString("server.host"),
			Address:                   conf.GetString("server.address"),
			DisableRequestLogs:        conf.GetBool("server.disableRequestLogs"),
			JWTExpirationDelta:        conf.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           conf.GetDuration("server.shutdownTimeout"),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(conf.GetString("store.backend")),
			Path:    conf.GetString("store.path"),
			DSN:     conf.GetString("store.dsn"),
		},
		Log: LogConfig{
			Level:  conf.GetString("log.level"),
			Pretty: conf.GetBool("log.pretty"),
		},
	}
	if err := cfg.Check(); err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// Check reports the first set of invalid settings.
func (c *Config) Check() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.AppName, "appName"),
		vala.StringNotEmpty(c.SecretKey, "secretKey"),
		vala.StringNotEmpty(c.Server.Address, "server.address"),
		oneOf(c.Store.Backend, "store.backend", BackendMemory, BackendFile, BackendSQLite, BackendPostgres),
		requiredFor(c.Store.Backend == BackendFile || c.Store.Backend == BackendSQLite, c.Store.Path, "store.path"),
		requiredFor(c.Store.Backend == BackendPostgres, c.Store.DSN, "store.dsn"),
	).Check()
}

func oneOf(val, name string, choices ...string) vala.Checker {
	return func() (bool, string) {
		for _, c := range choices {
			if val == c {
				return true, ""
			}
		}
		return false, fmt.Sprintf("parameter %s must be one of %v (got %q)", name, choices, val)
	}
}

func requiredFor(cond bool, val, name string) vala.Checker {
	return func() (bool, string) {
		if cond && val == "" {
			return false, fmt.Sprintf("parameter %s is required by the selected backend", name)
		}
		return true, ""
	}
}
