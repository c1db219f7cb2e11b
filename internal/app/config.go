package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vk/rspecgen/internal/rspec"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPath string // hcl file or directory; empty selects the built-in catalog

	Profile    string
	ParamsFile string   // hcl file of top-level attributes
	Set        []string // name=value, applied over ParamsFile
	Format     string   `validate:"omitempty,oneof=rspec yaml json"`
	OutputPath string   // empty or "-" writes to the output writer

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// NewConfig validates cfg and fills in defaults. When no format is given it
// is inferred from the output path.
func NewConfig(cfg Config) (*Config, error) {
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid %s %q: must be one of %s", flagName(fe.Field()), fe.Value(), strings.ReplaceAll(fe.Param(), " ", ", "))
		}
		return nil, err
	}

	if cfg.Format == "" {
		cfg.Format = string(rspec.FormatRSpec)
		if cfg.writesFile() {
			cfg.Format = string(rspec.FormatFromPath(cfg.OutputPath))
		}
	}
	return &cfg, nil
}

func (c *Config) writesFile() bool {
	return c.OutputPath != "" && c.OutputPath != "-"
}

func flagName(field string) string {
	switch field {
	case "LogFormat":
		return "log-format"
	case "LogLevel":
		return "log-level"
	default:
		return strings.ToLower(field)
	}
}
