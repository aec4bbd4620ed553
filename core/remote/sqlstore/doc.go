// Package sqlstore keeps project documents in a SQL table through GORM.
//
// Every document is one row of the documents table, keyed by
// (project_id, id). The body column holds the document as JSON and kind holds
// its classified entity kind. Writes are upserts; batch deletes use a single
// IN clause.
//
// # Usage
//
//	store := sqlstore.New(db)
//	if err := store.Migrate(ctx); err != nil {
//	    return err
//	}
//	snapshot, err := store.LoadSnapshot(ctx, "project-id")
package sqlstore
