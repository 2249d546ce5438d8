package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/KaramelBytes/zillow-eda/internal/dataset"
	"github.com/KaramelBytes/zillow-eda/internal/plot"
	"github.com/spf13/cobra"
)

var (
	pltOutput  string
	pltSubset  string
	pltColumns []string
	pltSample  int
	pltBins    int
	pltCat     string
	pltCont    string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Produce plot data (JSON) for exploring variable relationships",
}

var plotPairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pair plot with regression fits for every pair of numeric columns",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := plotTable(cmd)
		if err != nil {
			return err
		}
		opt := plot.DefaultPairOptions()
		if len(pltColumns) > 0 {
			opt.Columns = pltColumns
		}
		opt.Bins = pltBins
		opt.SampleRows = cfg.PlotSampleRows
		if cmd.Flags().Changed("sample") {
			opt.SampleRows = pltSample
		}
		opt.Seed = cfg.SplitSeed
		f, err := plot.VariablePairs(t, opt)
		if err != nil {
			return err
		}
		return writeFigure(f, "pairs.json")
	},
}

var plotCatContCmd = &cobra.Command{
	Use:   "catcont",
	Short: "Box, violin and bar panels of a continuous column per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pltCat == "" || pltCont == "" {
			return fmt.Errorf("--cat and --cont are required")
		}
		t, err := plotTable(cmd)
		if err != nil {
			return err
		}
		f, err := plot.CategoricalVsContinuous(t, pltCat, pltCont)
		if err != nil {
			return err
		}
		return writeFigure(f, fmt.Sprintf("catcont_%s_%s.json", pltCat, pltCont))
	},
}

func plotTable(cmd *cobra.Command) (*dataset.Table, error) {
	t, _, err := loadTable(cmd.Context())
	if err != nil {
		return nil, err
	}
	return selectSubset(t, pltSubset, cfg.SplitSeed)
}

func writeFigure(f *plot.Figure, defaultName string) error {
	out := pltOutput
	if out == "" {
		out = filepath.Join(cfg.PlotsDir, defaultName)
	}
	if err := f.WriteJSON(out); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s (%d rows, %d panels) to %s\n", f.Kind, f.Rows, len(f.Panels), out)
	return nil
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.AddCommand(plotPairsCmd)
	plotCmd.AddCommand(plotCatContCmd)
	plotCmd.PersistentFlags().StringVarP(&pltOutput, "output", "o", "", "output path (default <plots_dir>/<plot>.json)")
	plotCmd.PersistentFlags().StringVar(&pltSubset, "subset", "train", "rows to plot: all|train|validate|test")
	plotPairsCmd.Flags().StringSliceVar(&pltColumns, "columns", nil, "columns to cross (default all)")
	plotPairsCmd.Flags().IntVar(&pltSample, "sample", 0, "max rows to plot, 0 = all (default from config plot_sample_rows)")
	plotPairsCmd.Flags().IntVar(&pltBins, "bins", 10, "histogram bins on the diagonal")
	plotCatContCmd.Flags().StringVar(&pltCat, "cat", "", "categorical column, e.g. fips")
	plotCatContCmd.Flags().StringVar(&pltCont, "cont", "", "continuous column, e.g. taxvaluedollarcnt")
}
