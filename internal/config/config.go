// Package config loads the booking configuration from environment
// variables (with a .env file taking precedence) and the optional tool
// preferences file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"deskbooker/internal/booking"

	"github.com/joho/godotenv"
)

// Defaults for the optional variables.
const (
	DefaultLocation   = "10 York Road"
	DefaultDays       = "wednesday,thursday"
	DefaultWeeksAhead = 2
)

// ErrMissingCredentials is the remediation-bearing error for absent
// credentials. It aborts the run before any browser work starts.
var ErrMissingCredentials = errors.New(
	"WEWORK_EMAIL and WEWORK_PASSWORD must be set in the environment or .env file")

// Config is the flat, immutable per-run configuration.
type Config struct {
	Email      string
	Password   string
	Location   string
	Days       []string // normalized day names, for display
	Headless   bool
	WeeksAhead int
	Debug      bool
}

// Weekdays returns the parsed weekday set. Config is only constructed via
// FromEnv, which validates the names, so this cannot fail afterwards.
func (c Config) Weekdays() []time.Weekday {
	days, _ := booking.ParseDays(c.Days)
	return days
}

// FromEnv loads configuration from the environment. Values in envFile
// override the process environment, mirroring how the tool has always
// treated the .env file as authoritative. A missing envFile is not an
// error; missing credentials are.
func FromEnv(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Overload(envFile); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	email := os.Getenv("WEWORK_EMAIL")
	password := os.Getenv("WEWORK_PASSWORD")
	if email == "" || password == "" {
		return Config{}, ErrMissingCredentials
	}

	cfg := Config{
		Email:    email,
		Password: password,
		Location: getenv("WEWORK_LOCATION", DefaultLocation),
		Headless: true,
	}

	daysRaw := getenv("BOOKING_DAYS", DefaultDays)
	for _, d := range strings.Split(daysRaw, ",") {
		cfg.Days = append(cfg.Days, strings.ToLower(strings.TrimSpace(d)))
	}
	if _, err := booking.ParseDays(cfg.Days); err != nil {
		return Config{}, fmt.Errorf("BOOKING_DAYS: %w", err)
	}

	cfg.Headless = strings.ToLower(getenv("HEADLESS", "true")) == "true"

	weeks := getenv("WEEKS_AHEAD", strconv.Itoa(DefaultWeeksAhead))
	n, err := strconv.Atoi(weeks)
	if err != nil || n < 0 {
		return Config{}, fmt.Errorf("invalid WEEKS_AHEAD %q", weeks)
	}
	cfg.WeeksAhead = n

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
