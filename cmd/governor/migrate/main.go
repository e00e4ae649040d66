package main

import (
	"context"
	"flag"
	"log"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/impactchain/npo-governance/pkg/config"
	"github.com/impactchain/npo-governance/pkg/migrations/governordb"
	"github.com/impactchain/npo-governance/pkg/pgutil"
	mghelper "github.com/impactchain/npo-governance/pkg/pgutil/migrations"
)

func main() {
	cfgPath := flag.String("config", "config.example.yaml", "Path to configuration file")
	flag.Usage = mghelper.Usage
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("error reading configuration file: %s", err.Error())
	}
	if !cfg.Database.Enabled {
		log.Fatalf("journal database is disabled in %s", *cfgPath)
	}

	ctx := context.Background()
	db, err := pgutil.ConnectDB(ctx, &cfg.Database, zap.NewNop())
	if err != nil {
		log.Fatalf("error connecting to database: %s", err.Error())
	}
	defer db.Close()

	log.Printf("Running migrations for governor journal database (%s)...\n", cfg.Database.Database)

	migrator := migrate.NewMigrator(db, governordb.Migrations)

	if err := mghelper.RunMigrations(ctx, migrator, flag.Args()...); err != nil {
		mghelper.Exitf(err.Error())
	}
}
