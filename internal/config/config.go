package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/refhist/refhist/internal/env"
)

var (
	vCfg   = viper.New()
	cfgDir string
)

func Load() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	cfgDir = filepath.Join(home, ".refhist")

	vCfg.SetConfigName("config")
	vCfg.SetConfigType("yaml")
	vCfg.AddConfigPath(cfgDir)

	vCfg.SetDefault("default_encoding", "")
	vCfg.SetDefault("history_dir", ".refactorings")

	if err := vCfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

// GetDefaultEncoding returns the charset assumed for index streams when no
// per-stream encoding flag is given. Empty means UTF-8.
func GetDefaultEncoding() string {
	return vCfg.GetString("default_encoding")
}

// GetHistoryDir returns the history directory used by record/read when no
// --dir flag is given. The REFHIST_HISTORY_DIR env var wins over config.
func GetHistoryDir() string {
	if dir := env.HistoryDir(); dir != "" {
		return dir
	}
	return vCfg.GetString("history_dir")
}
