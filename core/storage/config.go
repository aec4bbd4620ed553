package storage

// Config holds the S3/MinIO connection used by the object document store.
type Config struct {
	// Endpoint is the host[:port] of the storage service. A scheme is stripped.
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket holds every project's documents.
	Bucket string `mapstructure:"bucket" default:"project-sync"`
	// Prefix is prepended to every object key.
	Prefix string `mapstructure:"prefix" default:"projects"`
	// Region is used when the bucket has to be created.
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing, TLS handshake and first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
