package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"project-sync/core/database"
	"project-sync/core/reconcile"
	"project-sync/core/remote/sqlstore"
	"project-sync/core/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	localFixture  = "../core/snapshot/testdata/local.yaml"
	remoteFixture = "../core/snapshot/testdata/remote.json"
)

func TestPlanFromSources_Files(t *testing.T) {
	local, err := snapshot.ReadFile(localFixture)
	require.NoError(t, err)

	plan, err := planFromSources(context.Background(), local, remoteFixture, nil)
	require.NoError(t, err)

	assert.Equal(t, "p1", plan.ProjectID)
	assert.Equal(t, 2, plan.Summary.Deletes)
	assert.Equal(t, 1, plan.Summary.Writes)
}

func TestPlanFromSources_Store(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store := sqlstore.New(db)
	require.NoError(t, store.Migrate(ctx))

	local, err := snapshot.ReadFile(localFixture)
	require.NoError(t, err)

	plan, err := planFromSources(ctx, local, "", store)
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Summary.Writes, "unknown project is an initial upload")

	executed, err := reconcile.ApplyPlan(ctx, store, plan, reconcile.ApplyOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 4, executed)

	plan, err = planFromSources(ctx, local, "", store)
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
}

func TestWritePlan(t *testing.T) {
	plan := reconcile.BuildPlan("p1", []reconcile.Operation{reconcile.Delete(reconcile.EntityElement, "e3")})

	var buf bytes.Buffer
	require.NoError(t, writePlan(plan, "", &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "p1", decoded["projectId"])
	assert.Len(t, decoded["syncOperations"], 1)

	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, writePlan(plan, path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, strings.TrimSpace(buf.String()), string(data))
}

func TestConfirmDestructiveAction(t *testing.T) {
	tests := []struct {
		name  string
		yes   bool
		input string
		want  bool
	}{
		{"auto confirmed", true, "", true},
		{"typed yes", false, "yes\n", true},
		{"typed yes without newline", false, "yes", true},
		{"typed no", false, "no\n", false},
		{"empty input", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yesConfirm = tt.yes
			t.Cleanup(func() { yesConfirm = false })

			var out bytes.Buffer
			assert.Equal(t, tt.want, confirmDestructiveAction(strings.NewReader(tt.input), &out))
			assert.NotEmpty(t, out.String())
		})
	}
}
