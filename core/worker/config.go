package worker

// Config holds configuration for the execution host.
type Config struct {
	// Workers is the number of reconciliation goroutines.
	Workers int `mapstructure:"workers" default:"1"`
	// QueueSize is the capacity of the inbound and outbound queues.
	QueueSize int `mapstructure:"queue_size" default:"64"`
}
