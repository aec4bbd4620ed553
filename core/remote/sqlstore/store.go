package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"project-sync/core/database"
	"project-sync/core/reconcile"
	"project-sync/core/remote"
	"project-sync/core/snapshot"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a remote.Store backed by a SQL table.
type Store struct {
	db *gorm.DB
}

var _ remote.Store = (*Store)(nil)

// New creates a Store over db. Call Migrate before first use.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the documents table and checks its columns.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&DocumentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate %s table: %w", TableName, err)
	}
	missing, err := database.MissingColumns(s.db.WithContext(ctx), TableName, requiredColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %v", TableName, missing)
	}
	return nil
}

// LoadSnapshot reads every row of projectID ordered by id.
func (s *Store) LoadSnapshot(ctx context.Context, projectID string) (*reconcile.Snapshot, error) {
	var records []DocumentRecord
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load documents for project %s: %w", projectID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", remote.ErrProjectNotFound, projectID)
	}

	ids := make([]string, 0, len(records))
	docs := make([]reconcile.Document, 0, len(records))
	for _, r := range records {
		var doc reconcile.Document
		if err := json.Unmarshal([]byte(r.Body), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", r.ID, err)
		}
		ids = append(ids, r.ID)
		docs = append(docs, doc)
	}

	snap, err := remote.Assemble(projectID, ids, docs)
	if err != nil {
		return nil, err
	}
	return snapshot.Normalize(snap), nil
}

// WriteDocument upserts a single document.
func (s *Store) WriteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	return s.WriteDocuments(ctx, projectID, []reconcile.Operation{op})
}

// WriteDocuments upserts all documents in one statement.
func (s *Store) WriteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	records := make([]DocumentRecord, 0, len(ops))
	for _, op := range ops {
		body, err := json.Marshal(op.Document)
		if err != nil {
			return fmt.Errorf("failed to encode document %s: %w", op.DocumentID, err)
		}
		records = append(records, DocumentRecord{
			ProjectID: projectID,
			ID:        op.DocumentID,
			Kind:      string(op.EntityKind),
			Body:      string(body),
		})
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "body", "updated_at"}),
		}).
		Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to upsert documents: %w", err)
	}
	return nil
}

// DeleteDocument removes a single document.
func (s *Store) DeleteDocument(ctx context.Context, projectID string, op reconcile.Operation) error {
	return s.DeleteDocuments(ctx, projectID, []reconcile.Operation{op})
}

// DeleteDocuments removes all targeted documents with one IN clause.
// Deleting a missing document is not an error.
func (s *Store) DeleteDocuments(ctx context.Context, projectID string, ops []reconcile.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	ids := make([]string, 0, len(ops))
	for _, op := range ops {
		ids = append(ids, op.DocumentID)
	}

	err := s.db.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Delete(&DocumentRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
