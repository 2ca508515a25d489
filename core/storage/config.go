package storage

import "time"

// Config holds configuration for the object storage index artifacts are published to.
type Config struct {
	// Endpoint is the host of the storage service. An http:// or https:// prefix is accepted.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL enables TLS for endpoints given without a scheme.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket receives published index artifacts.
	Bucket string `mapstructure:"bucket" default:"mana-vault"`
	// Region of the bucket, empty for MinIO.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the wait for a response.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
