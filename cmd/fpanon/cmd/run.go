package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fpvault/fpanon/internal/config"
	"github.com/fpvault/fpanon/internal/model"
	"github.com/fpvault/fpanon/internal/processor"
	"github.com/fpvault/fpanon/internal/profiles"
	"github.com/fpvault/fpanon/internal/stats"
	"github.com/fpvault/fpanon/internal/vault"
)

var (
	inputPath   string
	outputPath  string
	vaultPath   string
	vaultPass   string
	profileName string
	sessionSeed string
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Anonymize a CSV file",
	Long: `Read a CSV file, classify each column, and write an
anonymized copy under the selected profile.

Example:
  fpanon run --input customers.csv --output anon.csv --profile default --seed prod-2026
  fpanon run --input customers.csv --output anon.csv --profile gdpr_compliant --vault ./session.vault`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnonymization()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&inputPath, "input", "", "path to the input CSV file")
	runCmd.Flags().StringVar(&outputPath, "output", "", "path to write the anonymized CSV file")
	runCmd.Flags().StringVar(&vaultPath, "vault", "", "path to the encrypted mapping vault (overrides config)")
	runCmd.Flags().StringVar(&vaultPass, "vault-password", "", "vault password (overrides config)")
	runCmd.Flags().StringVar(&profileName, "profile", "", "named profile: default, gdpr_compliant, test_data, fast_hash, referential_integrity")
	runCmd.Flags().StringVar(&sessionSeed, "seed", "", "session seed (overrides config)")

	_ = viper.BindPFlag("vault.path", runCmd.Flags().Lookup("vault"))
	_ = viper.BindPFlag("vault.password", runCmd.Flags().Lookup("vault-password"))
	_ = viper.BindPFlag("profile.name", runCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("profile.seed", runCmd.Flags().Lookup("seed"))
}

func runAnonymization() error {
	cfg, err := config.LoadFromViper()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := config.CLIOverrides{}
	if vaultPath != "" {
		overrides.VaultPath = &vaultPath
	}
	if vaultPass != "" {
		overrides.Password = &vaultPass
	}
	if profileName != "" {
		overrides.Profile = &profileName
	}
	if sessionSeed != "" {
		overrides.Seed = &sessionSeed
	}
	cfg.ApplyOverrides(overrides)

	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("--input and --output are required")
	}

	table, err := readCSVTable(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	profile := profileFromConfig(cfg.Profile)

	var v *vault.Vault
	if profile.Mode != model.HMAC && cfg.Vault.Path != "" {
		opts := vault.Options{Password: cfg.Vault.Password, CacheSize: cfg.Vault.CacheSize}
		if cfg.Vault.KeyFile != "" {
			key, _, err := vault.LoadKey(cfg.Vault.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to load key file: %w", err)
			}
			opts.Key = key
		}
		v, err = vault.Open(cfg.Vault.Path, opts)
		if err != nil {
			return fmt.Errorf("failed to open vault: %w", err)
		}
		defer v.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := processor.New(profile, v)

	start := time.Now()
	report, err := proc.ProcessTable(ctx, table)
	if err != nil {
		return fmt.Errorf("anonymization failed: %w", err)
	}
	elapsed := time.Since(start)

	if err := writeCSVTable(outputPath, table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !quiet {
		printReport(report, elapsed, v)
	}
	return nil
}

func profileFromConfig(pc config.ProfileConfig) model.Profile {
	switch pc.Name {
	case "gdpr_compliant":
		return profiles.GDPRCompliant(pc.Seed)
	case "test_data":
		return profiles.TestData()
	case "fast_hash":
		return profiles.FastHash(pc.Seed)
	case "referential_integrity":
		return profiles.ReferentialIntegrity(pc.Seed)
	case "default":
		return profiles.Default(pc.Seed)
	case "":
		if pc.Mode == "" {
			return profiles.Default(pc.Seed)
		}
		fallthrough
	default:
		return model.Profile{
			Name:                 pc.Name,
			Mode:                 parseMode(pc.Mode),
			Seed:                 pc.Seed,
			PreserveDomain:       pc.PreserveDomain,
			FullySynthetic:       pc.FullySynthetic,
			ReferentialIntegrity: pc.ReferentialIntegrity,
		}
	}
}

func parseMode(mode string) model.AnonymizationMode {
	switch mode {
	case "FPE":
		return model.FPE
	case "HMAC":
		return model.HMAC
	case "HYBRID":
		return model.Hybrid
	default:
		return model.Fake
	}
}

func readCSVTable(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &model.Table{}, nil
	}

	columns := records[0]
	table := &model.Table{Columns: columns}
	for _, record := range records[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			var value *string
			if i < len(record) && record[i] != "" {
				v := record[i]
				value = &v
			}
			row[i] = model.Cell{Column: col, Value: value}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func writeCSVTable(path string, table *model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			if cell.Value != nil {
				record[i] = *cell.Value
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func printReport(report *processor.Report, elapsed time.Duration, v *vault.Vault) {
	collector := stats.NewCollector()
	for _, col := range report.Columns {
		collector.RecordColumn(stats.ColumnStats{
			Column:            col.Column,
			DataType:          col.DataType.String(),
			CellsProcessed:    int64(col.CellsProcessed),
			CellsSkipped:      int64(col.CellsSkippedNull),
			CollisionWarnings: int64(col.CollisionWarnings),
		})
	}

	vaultMappings := 0
	if v != nil {
		if s, err := v.Statistics(); err == nil {
			vaultMappings = s.TotalMappings
		}
	}

	final := collector.Finalize(elapsed, vaultMappings)
	stats.NewReporter().Report(final, os.Stdout)
}
