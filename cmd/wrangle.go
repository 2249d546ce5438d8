package cmd

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/zillow-eda/internal/analysis"
	"github.com/KaramelBytes/zillow-eda/internal/utils"
	"github.com/spf13/cobra"
)

var (
	wrgOutputPath string
	wrgDescribe   bool
)

var wrangleCmd = &cobra.Command{
	Use:   "wrangle",
	Short: "Acquire and clean the property table",
	Long: `Reads the csv cache if present, otherwise queries the remote database and saves
the result as the cache. Rows with missing values are dropped and the whole-number
columns are truncated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, origin, err := loadTable(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("✓ Loaded %d rows (%s)\n", t.Len(), origin)

		if wrgOutputPath != "" {
			var buf bytes.Buffer
			if err := t.WriteCSV(&buf); err != nil {
				return err
			}
			if err := utils.SafeWriteFile(wrgOutputPath, buf.Bytes()); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote cleaned table to %s\n", wrgOutputPath)
		}
		if wrgDescribe {
			rep, err := analysis.Describe(filepath.Base(cfg.CacheFile), t)
			if err != nil {
				return err
			}
			fmt.Println(rep.Markdown())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wrangleCmd)
	wrangleCmd.Flags().StringVarP(&wrgOutputPath, "output", "o", "", "optional path to write the cleaned table (csv)")
	wrangleCmd.Flags().BoolVar(&wrgDescribe, "describe", false, "print summary statistics for each column")
}
