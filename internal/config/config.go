package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every setting the tool needs. It is constructed once at
// startup and passed by reference; nothing reads ambient state afterwards.
type Config struct {
	APIKey     string `mapstructure:"api_key" validate:"required"`
	InstanceID string `mapstructure:"instance_id" validate:"required"`
	PoolID     string `mapstructure:"pool_id" validate:"required"`
	Path       string `mapstructure:"path" validate:"required"`

	JobName            string `mapstructure:"job_name"`
	TransformationName string `mapstructure:"transformation_name"`

	ChunkSize  int           `mapstructure:"chunk_size" validate:"gt=0"`
	ChunkPause time.Duration `mapstructure:"chunk_pause"`

	LogFile  string `mapstructure:"log_file"`
	LogLevel string `mapstructure:"log_level"`
}

// envBindings maps config keys to the environment variables the tool
// historically reads. CLI flags override these.
var envBindings = map[string]string{
	"api_key":             "CELONIS_API_KEY",
	"instance_id":         "CELONIS_INSTANCE_ID",
	"pool_id":             "CELONIS_POOL_ID",
	"path":                "DATA_SOURCE_PATH",
	"job_name":            "CELONIS_JOB_NAME",
	"transformation_name": "CELONIS_TRANSFORMATION_NAME",
	"chunk_size":          "CELONIS_CHUNK_SIZE",
	"chunk_pause":         "CELONIS_CHUNK_PAUSE",
	"log_file":            "CELONIS_LOG_FILE",
	"log_level":           "CELONIS_LOG_LEVEL",
}

// Load resolves configuration from defaults, an optional .env file,
// environment variables and CLI flags, in ascending precedence. A missing
// required setting is a fatal startup error.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// A .env file is optional; real environment variables win over its contents.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed {
				return
			}
			if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("error binding flags: %w", bindErr)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	config.InstanceID = normalizeBaseURL(config.InstanceID)

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("job_name", "TEST_DATA_JOB")
	v.SetDefault("transformation_name", "TEST_TRANSFORMATION")
	v.SetDefault("chunk_size", 100000)
	v.SetDefault("chunk_pause", "10s")
	v.SetDefault("log_file", "celonis_push.log")
	v.SetDefault("log_level", "info")
}

func validate(config *Config) error {
	err := validator.New().Struct(config)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	missing := make([]string, 0, len(errs))
	for _, fe := range errs {
		missing = append(missing, fieldKey(fe.StructField()))
	}
	return fmt.Errorf("missing or invalid required configuration: %s", strings.Join(missing, ", "))
}

// fieldKey reports the config key (and its environment variable) for a
// struct field, so error messages point at something the user can set.
func fieldKey(field string) string {
	keys := map[string]string{
		"APIKey":     "api_key",
		"InstanceID": "instance_id",
		"PoolID":     "pool_id",
		"Path":       "path",
		"ChunkSize":  "chunk_size",
	}
	key, ok := keys[field]
	if !ok {
		return field
	}
	if env, ok := envBindings[key]; ok {
		return fmt.Sprintf("%s (%s)", key, env)
	}
	return key
}

// normalizeBaseURL accepts either a full URL or a bare Celonis instance name
// and returns the API base URL without a trailing slash.
func normalizeBaseURL(instance string) string {
	base := instance
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = fmt.Sprintf("https://%s.celonis.cloud", base)
	}
	return strings.TrimRight(base, "/")
}
