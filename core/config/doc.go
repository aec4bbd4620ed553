// Package config loads the application configuration.
//
// Values come from struct tag defaults, then a .env file, then environment
// variables. Nested keys map to upper-case variables joined by underscores:
// worker.queue_size is WORKER_QUEUE_SIZE.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Log: level and format
//   - Database: SQL connection for the sql remote backend
//   - Storage: S3/MinIO connection for the object remote backend
//   - Remote: backend selection and timeouts
//   - Cache: local snapshot cache file
//   - Worker: execution host size
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
