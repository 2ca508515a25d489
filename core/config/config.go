package config

import (
	"path/filepath"
	"reflect"
	"strings"

	"mana-vault/core/database"
	"mana-vault/core/logger"
	"mana-vault/core/server"
	"mana-vault/core/storage"
	"mana-vault/feature/index"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per concern.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage index artifacts are published to.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the application database (collection, rebuild status).
	Database database.Config `mapstructure:"database"`
	// Index holds configuration for the upstream snapshot, the index store and rebuilds.
	Index index.Config `mapstructure:"index"`
}

// LoadConfig reads dir/.env, when present, and then the environment.
// Values in .env override variables already set in the process.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	setDefaults(v, reflect.TypeOf(Config{}), "")

	// INDEX_UPSTREAM_PATH -> index.upstream_path
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults walks t and registers the `default` tag of every leaf field under its
// dotted mapstructure key. AutomaticEnv only resolves keys viper already knows, so
// a leaf without a default is registered with an empty one.
func setDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			setDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
