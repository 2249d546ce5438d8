package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/KaramelBytes/zillow-eda/internal/split"
	"github.com/KaramelBytes/zillow-eda/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	splOutDir string
	splSeed   int64
)

// splitManifest describes one split run on disk.
type splitManifest struct {
	ID        string    `yaml:"id"`
	CreatedAt time.Time `yaml:"created_at"`
	Source    string    `yaml:"source"`
	Seed      int64     `yaml:"seed"`
	Rows      int       `yaml:"rows"`
	Train     int       `yaml:"train"`
	Validate  int       `yaml:"validate"`
	Test      int       `yaml:"test"`
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the cleaned table into train/validate/test csv files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, origin, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		seed := cfg.SplitSeed
		if cmd.Flags().Changed("seed") {
			seed = splSeed
		}
		res, err := split.Split(t, seed)
		if err != nil {
			return err
		}
		parts := []struct {
			name string
			t    *dataset.Table
		}{{"train", res.Train}, {"validate", res.Validate}, {"test", res.Test}}
		for _, p := range parts {
			var buf bytes.Buffer
			if err := p.t.WriteCSV(&buf); err != nil {
				return err
			}
			path := filepath.Join(splOutDir, p.name+".csv")
			if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", p.name, err)
			}
		}
		train, validate, test := res.Sizes()
		m := splitManifest{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Source:    fmt.Sprintf("%s (%s)", cfg.CacheFile, origin),
			Seed:      seed,
			Rows:      t.Len(),
			Train:     train,
			Validate:  validate,
			Test:      test,
		}
		b, err := yaml.Marshal(&m)
		if err != nil {
			return fmt.Errorf("marshal manifest: %w", err)
		}
		if err := utils.SafeWriteFile(filepath.Join(splOutDir, "split.yaml"), b); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		fmt.Printf("✓ Split %d rows into train=%d validate=%d test=%d (seed %d) in %s\n",
			t.Len(), train, validate, test, seed, splOutDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVar(&splOutDir, "out-dir", "splits", "directory for train.csv, validate.csv, test.csv and split.yaml")
	splitCmd.Flags().Int64Var(&splSeed, "seed", split.DefaultSeed, "random seed (overrides config split_seed)")
}
