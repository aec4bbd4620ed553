// Package storage connects to S3-compatible object storage.
//
// Client is the subset of the MinIO client the object document store needs.
// Keeping it an interface lets tests substitute core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	store := objectstore.New(client, cfg.Storage.Bucket, cfg.Storage.Prefix)
package storage
