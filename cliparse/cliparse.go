// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
	PublicURL         string

	QuestionsPath      string
	DefaultRegion      string
	Voice              string
	ValidateSignatures bool

	StoreTimeout   time.Duration
	GatewayTimeout time.Duration
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var validate string

	fs := flag.NewFlagSet("voice-interview", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.PublicURL, "public-url", "", "Public base URL the gateway calls back on")

	// Gateway credentials (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TwilioAccountSID, "twilio-sid", "", "Twilio account SID (prefer env)")
	fs.StringVar(&cfg.TwilioAuthToken, "twilio-token", "", "Twilio auth token (prefer env)")
	fs.StringVar(&cfg.TwilioPhoneNumber, "twilio-from", "", "Caller ID for outbound calls")

	// Interview behaviour
	fs.StringVar(&cfg.QuestionsPath, "questions", "", "Path to questions file (JSON or YAML)")
	fs.StringVar(&cfg.DefaultRegion, "region", "", "Default phone number region (ISO 3166 code)")
	fs.StringVar(&cfg.Voice, "voice", "", "Voice used for spoken prompts")
	fs.StringVar(&validate, "validate-signatures", "", "Validate gateway webhook signatures (true/false)")
	fs.DurationVar(&cfg.StoreTimeout, "store-timeout", 0, "Timeout for session store operations")
	fs.DurationVar(&cfg.GatewayTimeout, "gateway-timeout", 0, "Timeout for gateway API requests")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "postgres" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:interview.db"
	}

	cfg.TwilioAccountSID = fallback(cfg.TwilioAccountSID, "TWILIO_ACCOUNT_SID", "")
	cfg.TwilioAuthToken = fallback(cfg.TwilioAuthToken, "TWILIO_AUTH_TOKEN", "")
	cfg.TwilioPhoneNumber = fallback(cfg.TwilioPhoneNumber, "TWILIO_PHONE_NUMBER", "")
	cfg.QuestionsPath = fallback(cfg.QuestionsPath, "QUESTIONS_PATH", "questions.json")
	cfg.DefaultRegion = strings.ToUpper(fallback(cfg.DefaultRegion, "DEFAULT_REGION", "IN"))
	cfg.Voice = fallback(cfg.Voice, "VOICE", "Polly.Amy")

	// The gateway must be able to reach us
	cfg.PublicURL = strings.TrimRight(fallback(cfg.PublicURL, "PUBLIC_URL", ""), "/")
	if cfg.PublicURL == "" {
		return Config{}, errors.New("PUBLIC_URL required")
	}

	validate = fallback(validate, "VALIDATE_SIGNATURES", "true")
	v, err := strconv.ParseBool(validate)
	if err != nil {
		return Config{}, errors.New("invalid VALIDATE_SIGNATURES value")
	}
	cfg.ValidateSignatures = v
	if cfg.ValidateSignatures && cfg.TwilioAuthToken == "" {
		return Config{}, errors.New("TWILIO_AUTH_TOKEN required when signature validation is enabled")
	}

	if cfg.StoreTimeout, err = durationFallback(cfg.StoreTimeout, "STORE_TIMEOUT", 3*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.GatewayTimeout, err = durationFallback(cfg.GatewayTimeout, "GATEWAY_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func fallback(value, env, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

func durationFallback(value time.Duration, env string, def time.Duration) (time.Duration, error) {
	if value > 0 {
		return value, nil
	}
	s := os.Getenv(env)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", env)
	}
	return d, nil
}
