package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	cfgpkg "github.com/KaramelBytes/zillow-eda/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("cache_file: %s\n", cfg.CacheFile)
		fmt.Printf("category: %s\n", cfg.Category)
		fmt.Printf("db_name: %s\n", cfg.DBName)
		if cfg.DBURL != "" {
			fmt.Printf("db_url: %s\n", maskURL(cfg.DBURL))
		}
		if cfg.DBHost != "" {
			fmt.Printf("db_host: %s\n", cfg.DBHost)
		}
		if cfg.DBUser != "" {
			fmt.Printf("db_user: %s\n", cfg.DBUser)
		}
		fmt.Printf("db_password: %s\n", mask(cfg.DBPassword))
		fmt.Printf("split_seed: %d\n", cfg.SplitSeed)
		fmt.Printf("plots_dir: %s\n", cfg.PlotsDir)
		fmt.Printf("plot_sample_rows: %d\n", cfg.PlotSampleRows)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if _, err := requireConfig(); err != nil {
			return err
		}
		switch key {
		case "cache_file":
			cfg.CacheFile = val
		case "category":
			cfg.Category = val
		case "db_name":
			cfg.DBName = val
		case "db_url":
			cfg.DBURL = val
		case "db_host":
			cfg.DBHost = val
		case "db_user":
			cfg.DBUser = val
		case "db_password":
			cfg.DBPassword = val
		case "split_seed":
			i, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid int for split_seed: %w", err)
			}
			cfg.SplitSeed = i
		case "plots_dir":
			cfg.PlotsDir = val
		case "plot_sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for plot_sample_rows: %v", val)
			}
			cfg.PlotSampleRows = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}

func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return mask(raw)
	}
	return u.Redacted()
}
