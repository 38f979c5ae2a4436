package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/viant/tabconv/conv"
)

// Config represents tabcast settings, read from the environment (and .env)
// and overridden by flags
type Config struct {
	Input       string            `env:"TABCAST_INPUT"`
	Output      string            `env:"TABCAST_OUTPUT"`
	Format      string            `env:"TABCAST_FORMAT" envDefault:"csv"`
	Types       map[string]string `env:"TABCAST_TYPES" envSeparator:"," envKeyValSeparator:":"`
	ThousandSep string            `env:"TABCAST_THOUSAND_SEP" envDefault:","`
	DecimalSep  string            `env:"TABCAST_DECIMAL_SEP" envDefault:"."`
	Places      int               `env:"TABCAST_PLACES" envDefault:"2"`
	RoundDown   bool              `env:"TABCAST_ROUND_DOWN"`
	DayFirst    bool              `env:"TABCAST_DAY_FIRST"`
	TimeFormat  string            `env:"TABCAST_TIME_FORMAT"`
	Delimiter   string            `env:"TABCAST_DELIMITER" envDefault:","`
	Encoding    string            `env:"TABCAST_ENCODING" envDefault:"utf-8"`
	BOM         bool              `env:"TABCAST_BOM"`
	LogLevel    string            `env:"TABCAST_LOG_LEVEL" envDefault:"info"`
}

var errInvalidConfig = errors.New("invalid config")

// LoadConfig reads the optional .env file, the environment and then args
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(errInvalidConfig, err)
	}

	flags := flag.NewFlagSet("tabcast", flag.ContinueOnError)
	flags.StringVar(&cfg.Input, "in", cfg.Input, "input CSV file or http(s) URL, stdin when empty")
	flags.StringVar(&cfg.Output, "out", cfg.Output, "output file or directory, stdout when empty")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "output format: csv or json")
	types := flags.String("types", "", "column types, e.g. id:int,price:decimal,since:date")
	flags.StringVar(&cfg.ThousandSep, "thousand-sep", cfg.ThousandSep, "thousands separator")
	flags.StringVar(&cfg.DecimalSep, "decimal-sep", cfg.DecimalSep, "decimal separator")
	flags.IntVar(&cfg.Places, "places", cfg.Places, "decimal places")
	flags.BoolVar(&cfg.RoundDown, "round-down", cfg.RoundDown, "round half down")
	flags.BoolVar(&cfg.DayFirst, "day-first", cfg.DayFirst, "read ambiguous dates day first")
	flags.StringVar(&cfg.TimeFormat, "time-format", cfg.TimeFormat, "output time format, e.g. %Y-%m-%d")
	flags.StringVar(&cfg.Delimiter, "delimiter", cfg.Delimiter, "CSV delimiter")
	flags.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "output CSV charset")
	flags.BoolVar(&cfg.BOM, "bom", cfg.BOM, "prefix CSV output with a byte order mark")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Join(errInvalidConfig, err)
	}
	if *types != "" {
		if cfg.Types == nil {
			cfg.Types = map[string]string{}
		}
		for _, pair := range strings.Split(*types, ",") {
			name, typ, ok := strings.Cut(pair, ":")
			if !ok {
				return nil, fmt.Errorf("%w: type %q, expected column:type", errInvalidConfig, pair)
			}
			cfg.Types[strings.TrimSpace(name)] = strings.TrimSpace(typ)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks the config
func (c *Config) Validate() error {
	switch c.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("%w: format %q", errInvalidConfig, c.Format)
	}
	if len(c.Delimiter) != 1 {
		return fmt.Errorf("%w: delimiter %q, expected single byte", errInvalidConfig, c.Delimiter)
	}
	for _, sep := range []string{c.ThousandSep, c.DecimalSep} {
		if utf8.RuneCountInString(sep) > 1 {
			return fmt.Errorf("%w: separator %q, expected single character", errInvalidConfig, sep)
		}
	}
	_, err := c.ColumnTypes()
	return err
}

// ColumnTypes resolves the configured column types
func (c *Config) ColumnTypes() (map[string]conv.Type, error) {
	ret := make(map[string]conv.Type, len(c.Types))
	for name, typ := range c.Types {
		resolved, err := conv.ParseType(typ)
		if err != nil {
			return nil, fmt.Errorf("%w: column %v: %w", errInvalidConfig, name, err)
		}
		ret[name] = resolved
	}
	return ret, nil
}

// Options returns the coercion options
func (c *Config) Options(logger *slog.Logger) []conv.Option {
	return []conv.Option{
		conv.WithSeparators(firstRune(c.ThousandSep), firstRune(c.DecimalSep)),
		conv.WithPlaces(c.Places),
		conv.WithRoundUp(!c.RoundDown),
		conv.WithDayFirst(c.DayFirst),
		conv.WithLogger(logger),
	}
}

// Level returns the configured log level
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func firstRune(value string) rune {
	r, _ := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
