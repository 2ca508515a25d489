package index

// Config holds configuration for the upstream snapshot and the search index store.
type Config struct {
	// UpstreamPath is the path of the read-only upstream SQLite snapshot.
	UpstreamPath string `mapstructure:"upstream_path" default:"data/AllPrintings.sqlite"`
	// IndexPath is the path of the index store owned by the builder.
	IndexPath string `mapstructure:"index_path" default:"data/card-index.sqlite"`
	// Schedule is a cron expression for scheduled rebuilds. Empty disables scheduling.
	Schedule string `mapstructure:"schedule" default:""`
	// ProgressEvery logs a progress line every N scanned printings.
	ProgressEvery int `mapstructure:"progress_every" default:"5000"`
	// BatchSize is the number of rows per bulk insert statement.
	BatchSize int `mapstructure:"batch_size" default:"500"`
	// Publish uploads the built index to object storage after every successful rebuild.
	Publish bool `mapstructure:"publish" default:"false"`
	// PublishObject is the object name of the published index artifact.
	PublishObject string `mapstructure:"publish_object" default:"index/card-index.sqlite"`
	// QueryLimitMax caps the page size of search queries.
	QueryLimitMax int `mapstructure:"query_limit_max" default:"200"`
}

func (c Config) batchSize() int {
	if c.BatchSize <= 0 {
		return 500
	}
	return c.BatchSize
}

func (c Config) progressEvery() int64 {
	if c.ProgressEvery <= 0 {
		return 5000
	}
	return int64(c.ProgressEvery)
}
