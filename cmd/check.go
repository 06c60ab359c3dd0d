package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"receiving-manager/core/config"
	"receiving-manager/core/database"
	"receiving-manager/core/logger"
	"receiving-manager/core/storage"
	"receiving-manager/feature/integrity"
	"receiving-manager/feature/integrity/checks"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the check command
	checkFix     bool
	checkMigrate bool
	checkJSON    bool
)

// errCheckFailed is returned when at least one check reports a problem.
var errCheckFailed = errors.New("receiving checks failed")

// checkCmd verifies that the receiving tables and the bucket are usable.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the receiving database schema and storage bucket",
	Long: `Checks that the receiving tables expose every required column and that the bucket
holds the manifests, packs and receipts folders.

Examples:
  # Report only
  check

  # Create the bucket and the missing tables/columns
  check --fix --migrate

  # Save the report as JSON
  check --json`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "Create the bucket and its folders when they do not exist")
	checkCmd.Flags().BoolVar(&checkMigrate, "migrate", false, "Create or update the receiving tables")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Save the report as JSON")

	RootCmd.AddCommand(checkCmd)
}

// checkReport is the outcome of all checks.
type checkReport struct {
	Source   string         `json:"source"`
	Database *databaseCheck `json:"database,omitempty"`
	Storage  *storageCheck  `json:"storage,omitempty"`
}

type databaseCheck struct {
	Status   string              `json:"status"`
	Migrated bool                `json:"migrated"`
	Missing  map[string][]string `json:"missing,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type storageCheck struct {
	Status  string   `json:"status"`
	Bucket  string   `json:"bucket"`
	Created bool     `json:"created"`
	Missing []string `json:"missing,omitempty"`
	Fixed   []string `json:"fixed,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// OK reports whether every check that ran passed.
func (r checkReport) OK() bool {
	if r.Database != nil && r.Database.Status != "ok" {
		return false
	}
	if r.Storage != nil && r.Storage.Status != "ok" {
		return false
	}
	return true
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	startTime := time.Now()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	report := checkReport{Source: cfg.Server.Source}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		report.Database = &databaseCheck{Status: "error", Error: err.Error()}
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		report.Storage = &storageCheck{Status: "error", Bucket: cfg.Storage.Bucket, Error: err.Error()}
	}

	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Storage.Region, logg, db)
	if db != nil {
		report.Database = checkDatabase(svc, checkMigrate)
	}
	if client != nil {
		report.Storage = checkStorage(ctx, svc, checkFix)
	}

	printCheckReport(logg, report)

	if checkJSON {
		filename := fmt.Sprintf("check_receiving_%d.json", time.Now().Unix())
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		logg.Info("JSON report saved", zap.String("file", filename))
	}

	logg.Info("Receiving checks completed", zap.Bool("ok", report.OK()), zap.Duration("execution_time", time.Since(startTime)))
	if !report.OK() {
		return errCheckFailed
	}
	return nil
}

// schemaChecker is the part of integrity.Service the database check needs.
type schemaChecker interface {
	Migrate() error
	CheckSchema() (*checks.SchemaReport, error)
}

func checkDatabase(db schemaChecker, migrate bool) *databaseCheck {
	res := &databaseCheck{Status: "ok"}

	if migrate {
		if err := db.Migrate(); err != nil {
			res.Status = "error"
			res.Error = fmt.Sprintf("migration failed: %v", err)
			return res
		}
		res.Migrated = true
	}

	report, err := db.CheckSchema()
	if err != nil {
		res.Status = "error"
		res.Error = err.Error()
		return res
	}
	if len(report.Errors) > 0 {
		res.Status = "error"
		res.Error = strings.Join(report.Errors, "; ")
	}
	if missing := report.Missing(); len(missing) > 0 {
		if res.Status == "ok" {
			res.Status = "missing"
		}
		res.Missing = missing
	}
	return res
}

// structureChecker is the part of integrity.Service the storage check needs.
type structureChecker interface {
	Bucket() string
	EnsureBucket(ctx context.Context) (bool, error)
	CheckStructure(ctx context.Context) ([]string, error)
	FixStructure(ctx context.Context, missing []string) error
}

func checkStorage(ctx context.Context, s structureChecker, fix bool) *storageCheck {
	res := &storageCheck{Status: "ok", Bucket: s.Bucket()}

	if fix {
		created, err := s.EnsureBucket(ctx)
		if err != nil {
			res.Status = "error"
			res.Error = err.Error()
			return res
		}
		res.Created = created
	}

	missing, err := s.CheckStructure(ctx)
	switch {
	case errors.Is(err, checks.ErrBucketMissing):
		res.Status = "missing"
		return res
	case err != nil:
		res.Status = "error"
		res.Error = err.Error()
		return res
	}

	if len(missing) == 0 {
		return res
	}
	if !fix {
		res.Status = "missing"
		res.Missing = missing
		return res
	}
	if err := s.FixStructure(ctx, missing); err != nil {
		res.Status = "error"
		res.Error = err.Error()
		res.Missing = missing
		return res
	}
	res.Fixed = missing
	return res
}

func printCheckReport(l *zap.Logger, r checkReport) {
	if d := r.Database; d != nil {
		fields := []zap.Field{zap.String("status", d.Status), zap.Bool("migrated", d.Migrated)}
		if d.Error != "" {
			fields = append(fields, zap.String("error", d.Error))
		}
		l.Info("Database schema", fields...)

		tables := make([]string, 0, len(d.Missing))
		for table := range d.Missing {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			l.Warn("Missing columns", zap.String("table", table), zap.Strings("columns", d.Missing[table]))
		}
	}

	if s := r.Storage; s != nil {
		fields := []zap.Field{zap.String("status", s.Status), zap.String("bucket", s.Bucket), zap.Bool("created", s.Created)}
		if s.Error != "" {
			fields = append(fields, zap.String("error", s.Error))
		}
		l.Info("Storage bucket", fields...)
		if len(s.Missing) > 0 {
			l.Warn("Missing folders", zap.Strings("folders", s.Missing))
		}
		if len(s.Fixed) > 0 {
			l.Info("Created folders", zap.Strings("folders", s.Fixed))
		}
	}
}
