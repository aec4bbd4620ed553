package config

import (
	"reflect"
	"strings"

	"project-sync/core/database"
	"project-sync/core/localcache"
	"project-sync/core/logger"
	"project-sync/core/remote"
	"project-sync/core/server"
	"project-sync/core/storage"
	"project-sync/core/worker"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds the SQL connection used by the sql remote backend.
	Database database.Config `mapstructure:"database"`
	// Storage holds the object storage used by the object remote backend.
	Storage storage.Config `mapstructure:"storage"`
	// Remote selects the remote document store backend.
	Remote remote.Config `mapstructure:"remote"`
	// Cache holds configuration for the local snapshot cache.
	Cache localcache.Config `mapstructure:"cache"`
	// Worker sizes the reconciliation execution host.
	Worker worker.Config `mapstructure:"worker"`
}

// LoadConfig loads configuration from environment variables and the .env
// file in path.
func LoadConfig(path string) (*Config, error) {
	// Resolve the .env file next to the given directory
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Defaults also register every key for AutomaticEnv
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. WORKER_QUEUE_SIZE -> worker.queue_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and sets a viper default for every field from
// its 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// Accept pointers to config structs too
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Untagged fields are not configuration
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested sections get a dotted prefix
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
