package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/akozyrev/folio/internal/logger"
)

const (
	defaultListenAddr      = "localhost:8000"
	defaultLoggingLevel    = logger.LevelInfo
	defaultEnvironment     = logger.EnvProduction
	defaultAccessTTL       = 15 * time.Minute
	defaultRefreshTTL      = 7 * 24 * time.Hour
	defaultBcryptCost      = 12
	defaultLoginRateWindow = 5 * time.Minute
	defaultLoginRateMax    = 5
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address the API will listen on
	ListenAddr string

	// Database to connect to
	DatabaseDSN string

	// Redis backing the login rate limiter; empty disables the limiter
	RedisAddr string

	// Secrets for the two token classes
	// Both required, at least 32 bytes, distinct from each other
	AccessSecret  string
	RefreshSecret string

	// Token lifetimes
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Bcrypt cost factor for password hashing
	BcryptCost int

	// Login and refresh endpoint rate limit: max requests per window
	LoginRateWindow time.Duration
	LoginRateMax    int

	// Environment
	Environment string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:        defaultLoggingLevel,
		ListenAddr:      defaultListenAddr,
		Environment:     defaultEnvironment,
		AccessTTL:       defaultAccessTTL,
		RefreshTTL:      defaultRefreshTTL,
		BcryptCost:      defaultBcryptCost,
		LoginRateWindow: defaultLoginRateWindow,
		LoginRateMax:    defaultLoginRateMax,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		return c.LoadEnv(func(key string) string {
			return envMap[key]
		})
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) error {
	var parseErr error

	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setDuration := func(o *time.Duration) func(value string) {
		return func(value string) {
			if value == "" {
				return
			}
			d, err := time.ParseDuration(value)
			if err != nil {
				parseErr = errors.Join(parseErr, err)
				return
			}
			*o = d
		}
	}
	setInt := func(o *int) func(value string) {
		return func(value string) {
			if value == "" {
				return
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				parseErr = errors.Join(parseErr, err)
				return
			}
			*o = n
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":             setString(&c.ListenAddr),
		"DATABASE_URI":            setString(&c.DatabaseDSN),
		"REDIS_ADDR":              setString(&c.RedisAddr),
		"JWT_ACCESS_SECRET":       setString(&c.AccessSecret),
		"JWT_REFRESH_SECRET":      setString(&c.RefreshSecret),
		"JWT_ACCESS_TTL":          setDuration(&c.AccessTTL),
		"JWT_REFRESH_TTL":         setDuration(&c.RefreshTTL),
		"BCRYPT_COST":             setInt(&c.BcryptCost),
		"LOGIN_RATE_LIMIT_WINDOW": setDuration(&c.LoginRateWindow),
		"LOGIN_RATE_LIMIT_MAX":    setInt(&c.LoginRateMax),
		"LOG_LEVEL":               setString(&c.LogLevel),
		"ENVIRONMENT":             setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}

	return parseErr
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("folio", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabaseDSN, "database", "d", c.DatabaseDSN, "Database connection string")
	fs.StringVar(&c.RedisAddr, "redis", c.RedisAddr, "Redis address for the login rate limiter")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")

	return fs.Parse(args)
}

// Validate what can't wait until first use
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is required"))
	}
	if c.BcryptCost < 10 || c.BcryptCost > 15 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of sane range [10, 15]", c.BcryptCost))
	}
	if c.LoginRateWindow < time.Second {
		errs = append(errs, fmt.Errorf("login rate limit window %s is below one second", c.LoginRateWindow))
	}

	return errors.Join(errs...)
}
