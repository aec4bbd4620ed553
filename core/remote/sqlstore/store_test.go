package sqlstore

import (
	"context"
	"errors"
	"testing"

	"project-sync/core/database"
	"project-sync/core/reconcile"
	"project-sync/core/remote"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupStore(t *testing.T) (*Store, *gorm.DB) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store := New(db)
	require.NoError(t, store.Migrate(context.Background()))
	return store, db
}

func localSnapshot() *reconcile.Snapshot {
	return &reconcile.Snapshot{
		Project: reconcile.Document{
			"id": "p1", "type": "Default", "boardIds": []any{"e1"}, "updatedAt": int64(1700000000000),
		},
		DesignSystem: reconcile.Document{"id": "d1", "type": "DesignSystem", "colors": []any{"#fff"}},
		ElementProperties: map[string]reconcile.Document{
			"e1": {"id": "e1", "type": "Element", "elementType": "Board", "name": "Hero"},
			"c1": {"id": "c1", "type": "CodeComponent", "name": "Button"},
		},
		Assets: map[string]reconcile.Document{
			"a1": {"id": "a1", "type": "Asset", "size": 1024},
		},
	}
}

func TestStore_LoadSnapshot_NotFound(t *testing.T) {
	store, _ := setupStore(t)

	_, err := store.LoadSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, remote.ErrProjectNotFound)
}

func TestStore_RoundTrip(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()
	local := localSnapshot()

	plan, err := reconcile.ReconcileWithPlan(local, &reconcile.Snapshot{
		Project:           reconcile.Document{"id": "p1", "type": "Default"},
		DesignSystem:      reconcile.Document{"id": "d1", "type": "DesignSystem"},
		ElementProperties: map[string]reconcile.Document{},
	})
	require.NoError(t, err)

	executed, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 5, executed)

	var count int64
	require.NoError(t, db.Model(&DocumentRecord{}).Where("project_id = ?", "p1").Count(&count).Error)
	assert.Equal(t, int64(5), count)

	loaded, err := store.LoadSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", loaded.ProjectID())
	assert.Len(t, loaded.ElementProperties, 2)
	assert.Len(t, loaded.Assets, 1)

	ops, err := reconcile.Reconcile(local, loaded)
	require.NoError(t, err)
	assert.Empty(t, ops, "stored snapshot must reconcile cleanly with its source")
}

func TestStore_UpsertAndDelete(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	local := localSnapshot()

	seed := []reconcile.Operation{
		reconcile.Write(reconcile.EntityProject, "p1", local.Project),
		reconcile.Write(reconcile.EntityDesignSystem, "d1", local.DesignSystem),
		reconcile.Write(reconcile.EntityElement, "e1", local.ElementProperties["e1"]),
		reconcile.Write(reconcile.EntityElement, "e2", reconcile.Document{"id": "e2", "type": "Element"}),
	}
	require.NoError(t, store.WriteDocuments(ctx, "p1", seed))

	renamed := reconcile.Document{"id": "e1", "type": "Element", "elementType": "Board", "name": "Renamed"}
	require.NoError(t, store.WriteDocument(ctx, "p1", reconcile.Write(reconcile.EntityElement, "e1", renamed)))
	require.NoError(t, store.DeleteDocument(ctx, "p1", reconcile.Delete(reconcile.EntityElement, "e2")))
	require.NoError(t, store.DeleteDocuments(ctx, "p1", []reconcile.Operation{reconcile.Delete(reconcile.EntityElement, "missing")}))

	loaded, err := store.LoadSnapshot(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, loaded.ElementProperties, 1)
	assert.Equal(t, "Renamed", loaded.ElementProperties["e1"]["name"])
}

func TestStore_ProjectsAreIsolated(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	for _, pid := range []string{"p1", "p2"} {
		require.NoError(t, store.WriteDocuments(ctx, pid, []reconcile.Operation{
			reconcile.Write(reconcile.EntityProject, pid, reconcile.Document{"id": pid, "type": "Default"}),
			reconcile.Write(reconcile.EntityElement, "shared", reconcile.Document{"id": "shared", "type": "Element", "owner": pid}),
		}))
	}
	require.NoError(t, store.DeleteDocuments(ctx, "p1", []reconcile.Operation{reconcile.Delete(reconcile.EntityElement, "shared")}))

	p2, err := store.LoadSnapshot(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", p2.ElementProperties["shared"]["owner"])
}

func TestStore_EmptyBatches(t *testing.T) {
	store, _ := setupStore(t)
	assert.NoError(t, store.WriteDocuments(context.Background(), "p1", nil))
	assert.NoError(t, store.DeleteDocuments(context.Background(), "p1", nil))
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return New(db), mock
}

func TestStore_QueryFailure(t *testing.T) {
	store, mock := setupMockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `documents`").WillReturnError(errors.New("connection reset"))

	_, err := store.LoadSnapshot(context.Background(), "p1")
	assert.ErrorContains(t, err, "failed to load documents for project p1")
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteFailure(t *testing.T) {
	store, mock := setupMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `documents`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := store.DeleteDocuments(context.Background(), "p1", []reconcile.Operation{reconcile.Delete(reconcile.EntityElement, "e1")})
	assert.ErrorContains(t, err, "failed to delete documents")
	assert.NoError(t, mock.ExpectationsWereMet())
}
