package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	StoreFile     = "file"
	StoreDynamoDB = "dynamodb"
	StoreRedis    = "redis"
	StoreMemory   = "memory"

	defaultPort         = 8080
	defaultHTTPTimeout  = 30 * time.Second
	defaultIPNCacheFile = "pesapal_ipn.json"
)

// Config is read from the environment. A .env file is honoured through
// godotenv/autoload in the binaries.
type Config struct {
	Port         int
	Pesapal      PesapalConfig
	IPNStore     string
	IPNCacheFile string
	OrderStore   string
	Redis        RedisConfig
	AWS          AWSConfig
}

type PesapalConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	Live           bool
	BaseURL        string
	HTTPTimeout    time.Duration

	// IPNID is a notification id registered out of band (PESAPAL_IPN_ID).
	IPNID string

	// IPNURL is the callback URL registered when no notification id is known.
	IPNURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AWSConfig mirrors the local-friendly defaults used for DynamoDB:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
type AWSConfig struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	DynamoDBEndpoint string
}

// Load reads the configuration. Missing Pesapal credentials are not an error
// here; the gateway constructor reports them.
func Load() (Config, error) {
	var errs []error

	port, err := getenvInt("PORT", defaultPort)
	errs = append(errs, err)
	live, err := getenvBool("PESAPAL_LIVE", false)
	errs = append(errs, err)
	timeout, err := getenvDuration("PESAPAL_HTTP_TIMEOUT", defaultHTTPTimeout)
	errs = append(errs, err)
	redisDB, err := getenvInt("REDIS_DB", 0)
	errs = append(errs, err)

	cfg := Config{
		Port: port,
		Pesapal: PesapalConfig{
			ConsumerKey:    strings.TrimSpace(os.Getenv("PESAPAL_CONSUMER_KEY")),
			ConsumerSecret: strings.TrimSpace(os.Getenv("PESAPAL_CONSUMER_SECRET")),
			Live:           live,
			BaseURL:        strings.TrimSpace(os.Getenv("PESAPAL_BASE_URL")),
			HTTPTimeout:    timeout,
			IPNID:          strings.TrimSpace(os.Getenv("PESAPAL_IPN_ID")),
			IPNURL:         strings.TrimSpace(os.Getenv("PESAPAL_IPN_URL")),
		},
		IPNStore:     strings.ToLower(getenvDefault("PESAPAL_IPN_STORE", StoreFile)),
		IPNCacheFile: getenvDefault("PESAPAL_IPN_CACHE_FILE", defaultIPNCacheFile),
		OrderStore:   strings.ToLower(getenvDefault("ORDER_STORE", StoreDynamoDB)),
		Redis: RedisConfig{
			Addr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		AWS: AWSConfig{
			Region:           getenvDefault("AWS_REGION", "us-east-1"),
			AccessKeyID:      getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		},
	}

	switch cfg.IPNStore {
	case StoreFile, StoreDynamoDB, StoreRedis, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: PESAPAL_IPN_STORE=%q", ErrInvalidConfig, cfg.IPNStore))
	}
	switch cfg.OrderStore {
	case StoreDynamoDB, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("%w: ORDER_STORE=%q", ErrInvalidConfig, cfg.OrderStore))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def, nil
	case "1", "true", "yes", "on", "live":
		return true, nil
	case "0", "false", "no", "off", "sandbox":
		return false, nil
	}
	return def, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def, fmt.Errorf("%w: %s=%q is not a positive duration", ErrInvalidConfig, key, v)
	}
	return d, nil
}
