package governordb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/impactchain/npo-governance/pkg/journal"
	mghelper "github.com/impactchain/npo-governance/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating workflows table...")
		if err := mghelper.CreateSchema(ctx, db, &journal.WorkflowDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &journal.WorkflowDao{}, "organization", "token_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping workflows table...")
		return mghelper.DropTables(ctx, db, &journal.WorkflowDao{})
	})
}
