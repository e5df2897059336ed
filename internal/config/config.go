// Package config loads application configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // showtime zone must resolve on hosts without zoneinfo

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"github.com/iliyamo/cinema-storefront/internal/booking"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env        string        // APP_ENV (dev, test, prod)
	Port       string        // APP_PORT
	APIBaseURL string        // API_BASE_URL, backend REST root
	APITimeout time.Duration // API_TIMEOUT
	JWTSecret  string        // JWT_SECRET, signs storefront session tokens

	AccessTTLMin int           // ACCESS_TOKEN_TTL_MIN
	SessionTTL   time.Duration // SESSION_TTL, idle lifetime of a checkout

	SeatPrice     int64          // SEAT_PRICE
	ShowTimeTZ    string         // SHOWTIME_TZ
	Location      *time.Location // resolved ShowTimeTZ
	DateStripDays int            // DATE_STRIP_DAYS

	// Receipt journal; disabled when DB_HOST is empty.
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	RabbitURL string // RABBITMQ_URL; publishing disabled when empty
	LogLevel  string // LOG_LEVEL
}

// Load reads configuration values from the environment and returns a
// Config.  Missing required variables and malformed values stop the
// program with a fatal log message.
func Load() Config {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv is Load without the .env file and without exiting.
func FromEnv() (Config, error) {
	var e env
	cfg := Config{
		Env:        e.must("APP_ENV"),
		Port:       e.must("APP_PORT"),
		APIBaseURL: e.must("API_BASE_URL"),
		JWTSecret:  e.must("JWT_SECRET"),

		APITimeout:    e.duration("API_TIMEOUT", 10*time.Second),
		AccessTTLMin:  e.integer("ACCESS_TOKEN_TTL_MIN", 60),
		SessionTTL:    e.duration("SESSION_TTL", 30*time.Minute),
		SeatPrice:     int64(e.integer("SEAT_PRICE", int(booking.DefaultSeatPrice))),
		ShowTimeTZ:    e.str("SHOWTIME_TZ", "Asia/Ho_Chi_Minh"),
		DateStripDays: e.integer("DATE_STRIP_DAYS", 7),

		DBUser: os.Getenv("DB_USER"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: os.Getenv("DB_HOST"),
		DBPort: e.str("DB_PORT", "3306"),
		DBName: os.Getenv("DB_NAME"),

		RabbitURL: e.str("RABBITMQ_URL", os.Getenv("AMQP_URL")),
		LogLevel:  os.Getenv("LOG_LEVEL"),
	}
	if err := e.err(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that parsed but are not usable and resolves
// Location.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL %q is not an absolute URL", c.APIBaseURL))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Errorf("APP_PORT %q is not a number", c.Port))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, errors.New("API_TIMEOUT must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.AccessTTLMin <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL_MIN must be positive"))
	}
	if c.SeatPrice < 0 {
		errs = append(errs, errors.New("SEAT_PRICE must not be negative"))
	}
	if c.DateStripDays < 1 {
		errs = append(errs, errors.New("DATE_STRIP_DAYS must be at least 1"))
	}
	loc, err := time.LoadLocation(c.ShowTimeTZ)
	if err != nil {
		errs = append(errs, fmt.Errorf("SHOWTIME_TZ: %w", err))
	} else {
		c.Location = loc
	}
	if c.DBHost != "" && (c.DBUser == "" || c.DBName == "") {
		errs = append(errs, errors.New("DB_USER and DB_NAME are required when DB_HOST is set"))
	}
	return errors.Join(errs...)
}

// JournalEnabled reports whether the receipt journal database is
// configured.
func (c Config) JournalEnabled() bool { return c.DBHost != "" }

// DSN returns the MySQL data source name for the receipt journal.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPass
	mc.Net = "tcp"
	mc.Addr = c.DBHost + ":" + c.DBPort
	mc.DBName = c.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// AccessTTL is AccessTTLMin as a duration.
func (c Config) AccessTTL() time.Duration { return time.Duration(c.AccessTTLMin) * time.Minute }
