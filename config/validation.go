package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration is usable for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.Server.Port == "" {
		errs = append(errs, ValidationError{"server.port", "is required"})
	}

	switch cfg.DB.Driver {
	case DriverSQLite:
		if cfg.DB.DSN == "" {
			errs = append(errs, ValidationError{"db.dsn", "is required for sqlite"})
		}
		if cfg.Env == Production {
			errs = append(errs, ValidationError{"db.driver", "sqlite is not supported in production"})
		}
	case DriverPostgres:
		if cfg.DB.DSN == "" && cfg.DB.Host == "" {
			errs = append(errs, ValidationError{"db.host", "is required for postgres"})
		}
		if cfg.Env == Production && cfg.DB.DSN == "" && cfg.DB.Password == "" {
			errs = append(errs, ValidationError{"db.password", "db_password secret is required in production"})
		}
	default:
		errs = append(errs, ValidationError{"db.driver", fmt.Sprintf("unknown driver %q", cfg.DB.Driver)})
	}

	switch cfg.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
		if cfg.LLM.APIKey == "" {
			errs = append(errs, ValidationError{"llm.api_key", "LLM_API_KEY, LLM_API_KEY_FILE or the llm_api_key secret must be set"})
		}
	case ProviderBedrock:
		if cfg.LLM.Region == "" {
			errs = append(errs, ValidationError{"llm.region", "is required for bedrock"})
		}
	default:
		errs = append(errs, ValidationError{"llm.provider", fmt.Sprintf("unknown provider %q", cfg.LLM.Provider)})
	}

	if cfg.LLM.CapableModel == "" || cfg.LLM.LightweightModel == "" {
		errs = append(errs, ValidationError{"llm.models", "capable and lightweight models are required"})
	}
	if cfg.LLM.Timeout <= 0 {
		errs = append(errs, ValidationError{"llm.timeout", "must be positive"})
	}

	if cfg.RateLimit.Limit <= 0 || cfg.RateLimit.Window <= 0 {
		errs = append(errs, ValidationError{"rate_limit", "window and limit must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
