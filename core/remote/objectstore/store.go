package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/snapshot"
	"project-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

const objectExt = ".json"

// Store is a remote.Store backed by object storage.
type Store struct {
	client storage.Client
	bucket string
	prefix string
}

var _ remote.Store = (*Store)(nil)

// New creates a Store writing under prefix in bucket.
func New(client storage.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *Store) projectPrefix(projectID string) string {
	return path.Join(s.prefix, projectID) + "/"
}

func (s *Store) objectKey(projectID, documentID string) string {
	return s.projectPrefix(projectID) + documentID + objectExt
}

// LoadSnapshot lists and reads every object under the project's prefix.
func (s *Store) LoadSnapshot(ctx context.Context, projectID string) (*reconcile.Snapshot, error) {
	prefix := s.projectPrefix(projectID)

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects for project %s: %w", projectID, obj.Err)
		}
		// Skip anything this store did not write
		if !strings.HasSuffix(obj.Key, objectExt) {
			continue
		}
		keys = append(keys, obj.Key)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", remote.ErrProjectNotFound, projectID)
	}
	// Listing order is backend specific
	sort.Strings(keys)

	ids := make([]string, 0, len(keys))
	docs := make([]reconcile.Document, 0, len(keys))
	for _, key := range keys {
		doc, err := s.readDocument(ctx, key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(key, prefix), objectExt))
		docs = append(docs, doc)
	}

	snap, err := remote.Assemble(projectID, ids, docs)
	if err != nil {
		return nil, err
	}
	return snapshot.Normalize(snap), nil
}

func (s *Store) readDocument(ctx context.Context, key string) (reconcile.Document, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}
	var doc reconcile.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode object %s: %w", key, err)
	}
	return doc, nil
}

// WriteDocument uploads the document as JSON, replacing any previous object.
func (s *Store) WriteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	data, err := json.Marshal(op.Document)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", op.DocumentID, err)
	}
	key := s.objectKey(projectID, op.DocumentID)
	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

// WriteDocuments uploads documents one by one; object storage has no batch put.
func (s *Store) WriteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	for _, op := range ops {
		if err := s.WriteDocument(ctx, projectID, op); err != nil {
			return err
		}
	}
	return nil
}

// DeleteDocument removes a single object.
func (s *Store) DeleteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	key := s.objectKey(projectID, op.DocumentID)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", key, err)
	}
	return nil
}

// DeleteDocuments removes objects through the multi-object delete API.
func (s *Store) DeleteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(ops))
	for _, op := range ops {
		objectsCh <- minio.ObjectInfo{Key: s.objectKey(projectID, op.DocumentID)}
	}
	close(objectsCh)

	var failed []string
	for e := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if e.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", e.ObjectName, e.Err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("batch delete had %d errors: %v", len(failed), failed)
	}
	return nil
}
