// Package localcache is the on-device cache of project snapshots.
//
// Snapshots are stored as JSON blobs in a single BoltDB bucket, keyed by
// project id. Get normalizes timestamps so a cached snapshot can be compared
// directly with one read from the remote store.
//
// # Usage
//
//	cache, err := localcache.Open(cfg.Cache)
//	defer cache.Close()
//
//	err = cache.Put(ctx, snapshot)
//	snapshot, err := cache.Get(ctx, "project-id")
package localcache
