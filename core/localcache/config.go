package localcache

// Config holds configuration for the local snapshot cache.
type Config struct {
	// Path is the BoltDB file path.
	Path string `mapstructure:"path" default:"project-sync.db"`
	// TimeoutSeconds bounds how long Open waits for the file lock.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
