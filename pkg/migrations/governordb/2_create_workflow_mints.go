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
		log.Println("creating workflow_mints table...")
		if err := mghelper.CreateSchema(ctx, db, &journal.MintDao{}); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, &journal.MintDao{}, "workflow_id")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping workflow_mints table...")
		return mghelper.DropTables(ctx, db, &journal.MintDao{})
	})
}
