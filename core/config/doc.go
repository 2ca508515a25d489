// Package config provides configuration management for mana-vault.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file, with defaults declared on the struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: application store connection (sqlite, mysql or postgres)
//   - Storage: S3/MinIO credentials and the publication bucket
//   - Log: Logging level and format
//   - Index: upstream snapshot path, index store path, rebuild schedule and query limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Index.UpstreamPath)
package config
