package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/zillow-eda/internal/env"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	CacheFile string `mapstructure:"cache_file" yaml:"cache_file"`
	Category  string `mapstructure:"category" yaml:"category"`

	// Remote database. DBURL, when set, is used verbatim; otherwise the URL is
	// assembled from host and credentials for DBName.
	DBName     string `mapstructure:"db_name" yaml:"db_name"`
	DBURL      string `mapstructure:"db_url" yaml:"db_url"`
	DBHost     string `mapstructure:"db_host" yaml:"db_host"`
	DBUser     string `mapstructure:"db_user" yaml:"db_user"`
	DBPassword string `mapstructure:"db_password" yaml:"db_password"`

	SplitSeed int64 `mapstructure:"split_seed" yaml:"split_seed"`

	// Plot output
	PlotsDir       string `mapstructure:"plots_dir" yaml:"plots_dir"`
	PlotSampleRows int    `mapstructure:"plot_sample_rows" yaml:"plot_sample_rows"`
}

// URLFunc returns the credential resolver the loader calls on a cache miss.
func (c *Global) URLFunc() env.URLFunc {
	if c.DBURL != "" {
		return env.Static(c.DBURL)
	}
	creds := env.Credentials{User: c.DBUser, Password: c.DBPassword, Host: c.DBHost}
	return creds.DBURL
}

// DefaultPath returns ~/.zillow/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".zillow", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.zillow/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("ZILLOW")
	v.AutomaticEnv()

	v.SetDefault("cache_file", "zillow.csv")
	v.SetDefault("category", "Single Family Residential")
	v.SetDefault("db_name", "zillow")
	v.SetDefault("db_url", "")
	v.SetDefault("db_host", "")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("split_seed", 123)
	v.SetDefault("plots_dir", "plots")
	v.SetDefault("plot_sample_rows", 1000)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".zillow"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read; a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
