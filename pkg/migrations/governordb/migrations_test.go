package governordb

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"

	"github.com/impactchain/npo-governance/pkg/pgutil"
)

func TestGovernorDBMigrations_ApplyAndRollback(t *testing.T) {
	db := pgutil.SetupTestDB(t)
	ctx := context.Background()

	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	group, err := migrator.Migrate(ctx)
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if group.IsZero() {
		t.Fatal("expected migrations to run, but none were applied")
	}

	for _, table := range []string{"workflows", "workflow_mints", "bun_migrations"} {
		pgutil.AssertTableExists(t, db, table)
	}
	pgutil.AssertIndexExists(t, db, "idx_workflows_organization")
	pgutil.AssertIndexExists(t, db, "idx_workflows_token_id")
	pgutil.AssertIndexExists(t, db, "idx_workflow_mints_workflow_id")

	if _, err := migrator.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "workflows")
	pgutil.AssertTableNotExists(t, db, "workflow_mints")
}
