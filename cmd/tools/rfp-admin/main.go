// cmd/tools/rfp-admin/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"rfp-dashboard/internal/common/config"
	"rfp-dashboard/internal/common/database"
	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/logger"
	dynamicssync "rfp-dashboard/internal/services/crm/dynamics-sync"
	"rfp-dashboard/internal/store"
)

func main() {
	initCmd := flag.NewFlagSet("init-db", flag.ExitOnError)
	testCmd := flag.NewFlagSet("test-connection", flag.ExitOnError)
	syncCmd := flag.NewFlagSet("sync", flag.ExitOnError)
	bulkCmd := flag.NewFlagSet("bulk-sync", flag.ExitOnError)

	seed := initCmd.Bool("seed", true, "Insert sample RFPs and team members when the rfps table is empty")

	rfpID := syncCmd.String("rfp", "", "RFP id to sync")
	syncAs := syncCmd.String("as", "auto", "Entity to create (lead, opportunity, auto)")

	rfpIDs := bulkCmd.String("rfps", "", "Comma separated RFP ids")
	bulkAs := bulkCmd.String("as", "auto", "Entity to create (lead, opportunity, auto)")

	timeout := 2 * time.Minute

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewStructured(cfg.Logging.Level, "console")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch os.Args[1] {
	case "init-db":
		initCmd.Parse(os.Args[2:])
		pg := openPostgres(ctx, cfg)
		defer pg.Close()
		if err := pg.InitSchema(ctx, *seed); err != nil {
			fmt.Printf("Error initializing schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database schema ready")

	case "test-connection":
		testCmd.Parse(os.Args[2:])
		client := dynamics.NewFromApp(cfg.Integrations.Dynamics365, log)
		exitOn(printJSON(client.TestConnection(ctx)))

	case "sync":
		syncCmd.Parse(os.Args[2:])
		if *rfpID == "" {
			fmt.Println("Error: -rfp is required for sync.")
			syncCmd.Usage()
			os.Exit(1)
		}
		mode := parseMode(*syncAs)
		pg := openPostgres(ctx, cfg)
		defer pg.Close()
		exitOn(printJSON(newSyncService(cfg, pg, log).SyncOne(ctx, *rfpID, mode)))

	case "bulk-sync":
		bulkCmd.Parse(os.Args[2:])
		ids := splitIDs(*rfpIDs)
		if len(ids) == 0 {
			fmt.Println("Error: -rfps is required for bulk-sync.")
			bulkCmd.Usage()
			os.Exit(1)
		}
		mode := parseMode(*bulkAs)
		pg := openPostgres(ctx, cfg)
		defer pg.Close()
		exitOn(printJSON(newSyncService(cfg, pg, log).SyncMany(ctx, ids, mode)))

	default:
		help()
		os.Exit(1)
	}
}

func help() {
	fmt.Println("Usage: rfp-admin <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init-db          Create tables and optionally seed sample data")
	fmt.Println("  test-connection  Call WhoAmI against the configured Dynamics 365 environment")
	fmt.Println("  sync             Sync one RFP to Dynamics 365")
	fmt.Println("  bulk-sync        Sync several RFPs to Dynamics 365 in order")
}

func openPostgres(ctx context.Context, cfg *config.Config) *database.Postgres {
	pg, err := database.OpenPostgres(ctx, cfg.Database.Postgres)
	if err != nil {
		fmt.Printf("Error connecting to postgres: %v\n", err)
		os.Exit(1)
	}
	return pg
}

// newSyncService builds the orchestrator without ledger or events; CLI syncs
// are not recorded.
func newSyncService(cfg *config.Config, pg *database.Postgres, log logger.Logger) *dynamicssync.Service {
	return dynamicssync.NewService(dynamicssync.ServiceDependencies{
		RFPs:   store.New(pg.DB),
		CRM:    dynamics.NewFromApp(cfg.Integrations.Dynamics365, log),
		Logger: log,
	}, dynamicssync.DefaultConfig())
}

func parseMode(s string) dynamicssync.Mode {
	mode, err := dynamicssync.ParseMode(s)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return mode
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func exitOn(err error) {
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
