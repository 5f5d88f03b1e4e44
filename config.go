package dynamo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config describes how to connect to DynamoDB.
// Environment variables override values read from files:
//
//	DYNAMO_REGION (or AWS_REGION)
//	DYNAMO_ENDPOINT
//	DYNAMO_PROFILE
//	DYNAMO_ACCESS_KEY_ID, DYNAMO_SECRET_ACCESS_KEY, DYNAMO_SESSION_TOKEN
//	DYNAMO_RETRY_TIMEOUT (a duration such as "30s"; "0" disables retrying)
//	DYNAMO_LOG_LEVEL (debug, info, warn, error; empty disables logging)
type Config struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Profile  string `yaml:"profile"`

	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token"`

	RetryTimeout time.Duration `yaml:"retry_timeout"`
	LogLevel     string        `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{RetryTimeout: DefaultRetryTimeout}
}

// LoadConfig reads the configuration from the environment.
// Each of envFiles is loaded into the environment first with godotenv;
// variables that are already set take precedence.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("dynamo: load env files: %w", err)
		}
	}
	cfg := DefaultConfig()
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFile reads the configuration from a YAML file, then applies the environment.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dynamo: open config: %w", err)
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("dynamo: parse %s: %w", path, err)
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfig decodes a YAML configuration from r.
// Unknown fields are an error.
func ReadConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) loadEnv() error {
	if v := getEnv("DYNAMO_REGION", os.Getenv("AWS_REGION")); v != "" {
		cfg.Region = v
	}
	cfg.Endpoint = getEnv("DYNAMO_ENDPOINT", cfg.Endpoint)
	cfg.Profile = getEnv("DYNAMO_PROFILE", cfg.Profile)
	cfg.AccessKeyID = getEnv("DYNAMO_ACCESS_KEY_ID", cfg.AccessKeyID)
	cfg.SecretAccessKey = getEnv("DYNAMO_SECRET_ACCESS_KEY", cfg.SecretAccessKey)
	cfg.SessionToken = getEnv("DYNAMO_SESSION_TOKEN", cfg.SessionToken)
	cfg.LogLevel = getEnv("DYNAMO_LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("DYNAMO_RETRY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("dynamo: DYNAMO_RETRY_TIMEOUT: %w", err)
		}
		cfg.RetryTimeout = d
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// AWS builds an AWS SDK configuration, starting from the SDK's default chain.
func (cfg *Config) AWS(ctx context.Context) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return aws.Config{}, errors.New("dynamo: access key ID and secret access key must be set together")
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("dynamo: load AWS config: %w", err)
	}
	return awsCfg, nil
}

// Logger builds a production zap logger at the configured level,
// or a no-op logger if no level is set.
func (cfg *Config) Logger() (*zap.Logger, error) {
	if cfg.LogLevel == "" {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("dynamo: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build()
}

// NewClient creates a client from this configuration.
// opts are applied after the configured logger and retry timeout.
func (cfg *Config) NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	awsCfg, err := cfg.AWS(ctx)
	if err != nil {
		return nil, err
	}
	log, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	api := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	opts = append([]Option{WithLogger(log), WithRetryTimeout(cfg.RetryTimeout)}, opts...)
	return NewFromAPI(api, opts...), nil
}
