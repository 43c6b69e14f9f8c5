// Package config reads binder settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Konsultn-Engineering/ebind"
	"github.com/Konsultn-Engineering/ebind/dialect"
	"github.com/Konsultn-Engineering/ebind/logger"
	"github.com/Konsultn-Engineering/ebind/source"
)

var (
	ErrParsingConfig  = errors.New("failed to parse environment variables into config")
	ErrLoadingEnvFile = errors.New("failed to load env file")
)

type Config struct {
	// Fixed positional token. Empty means the dialect's tokens, or "?".
	Placeholder string `env:"EBIND_PLACEHOLDER"`
	Dialect     string `env:"EBIND_DIALECT"`

	FileLoopLimit       int  `env:"EBIND_FILE_LOOP_LIMIT" envDefault:"1000"`
	StructuralLoopLimit int  `env:"EBIND_STRUCTURAL_LOOP_LIMIT" envDefault:"1000"`
	ValueLoopLimit      int  `env:"EBIND_VALUE_LOOP_LIMIT" envDefault:"10"`
	MaxLength           int  `env:"EBIND_MAX_LENGTH" envDefault:"16777216"`
	Compact             bool `env:"EBIND_COMPACT" envDefault:"false"`

	SkipFiles bool `env:"EBIND_SKIP_FILES" envDefault:"false"`

	// Query files come from S3 when a bucket is set, otherwise from BaseDir.
	BaseDir   string   `env:"EBIND_BASE_DIR"`
	S3        S3Config `envPrefix:"EBIND_S3_"`
	CacheSize int      `env:"EBIND_CACHE_SIZE" envDefault:"0"`

	Log LogConfig `envPrefix:"EBIND_LOG_"`
}

type S3Config struct {
	Bucket         string `env:"BUCKET"`
	Region         string `env:"REGION"`
	Prefix         string `env:"PREFIX"`
	Endpoint       string `env:"ENDPOINT"`
	AccessKeyID    string `env:"ACCESS_KEY_ID"`
	SecretKey      string `env:"SECRET_ACCESS_KEY"`
	ForcePathStyle bool   `env:"FORCE_PATH_STYLE" envDefault:"false"`
}

type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	Debug      bool   `env:"DEBUG" envDefault:"false"`
	Output     string `env:"OUTPUT" envDefault:"stderr"`
	TimeFormat string `env:"TIME_FORMAT"`
}

// Load reads the given .env files, or ./.env if present when none are given,
// and parses the environment. Variables already set are not overridden.
func Load(paths ...string) (Config, error) {
	if len(paths) > 0 {
		if err := godotenv.Load(paths...); err != nil {
			return Config{}, errors.Join(ErrLoadingEnvFile, err)
		}
	} else {
		// The default file is optional
		_ = godotenv.Load()
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Reader builds the file reader for file markers.
func (c Config) Reader(ctx context.Context) (source.Reader, error) {
	var (
		reader source.Reader
		err    error
	)
	if c.S3.Bucket != "" {
		reader, err = source.NewS3(ctx, source.S3Config{
			Bucket:         c.S3.Bucket,
			Region:         c.S3.Region,
			Prefix:         c.S3.Prefix,
			AccessKeyID:    c.S3.AccessKeyID,
			SecretKey:      c.S3.SecretKey,
			Endpoint:       c.S3.Endpoint,
			ForcePathStyle: c.S3.ForcePathStyle,
		})
	} else {
		reader, err = source.NewDir(c.BaseDir)
	}
	if err != nil {
		return nil, err
	}

	if c.CacheSize > 0 {
		return source.NewCached(reader, c.CacheSize)
	}
	return reader, nil
}

// Options turns the configuration into binder options.
func (c Config) Options(ctx context.Context) ([]ebind.Option, error) {
	var opts []ebind.Option

	if c.Dialect != "" {
		d, err := dialect.ByName(c.Dialect)
		if err != nil {
			return nil, fmt.Errorf("EBIND_DIALECT: %w", err)
		}
		opts = append(opts, ebind.WithDialect(d))
	}
	if c.Placeholder != "" {
		opts = append(opts, ebind.WithMarker(c.Placeholder))
	}

	if c.SkipFiles {
		opts = append(opts, ebind.WithFileInlining(false))
	} else {
		reader, err := c.Reader(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ebind.WithReader(reader))
	}

	log, err := logger.New(logger.Config{
		Level:      c.Log.Level,
		Debug:      c.Log.Debug,
		Output:     c.Log.Output,
		TimeFormat: c.Log.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("EBIND_LOG: %w", err)
	}

	opts = append(opts,
		ebind.WithFileLoopLimit(c.FileLoopLimit),
		ebind.WithStructuralLoopLimit(c.StructuralLoopLimit),
		ebind.WithValueLoopLimit(c.ValueLoopLimit),
		ebind.WithMaxLength(c.MaxLength),
		ebind.WithCompact(c.Compact),
		ebind.WithLogger(logger.WithComponent(log, "ebind")),
	)
	return opts, nil
}

// Binder is shorthand for ebind.New with Options.
func (c Config) Binder(ctx context.Context) (*ebind.Binder, error) {
	opts, err := c.Options(ctx)
	if err != nil {
		return nil, err
	}
	return ebind.New(opts...), nil
}
