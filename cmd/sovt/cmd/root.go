package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tillerino/sovt"
)

var rootCmd = &cobra.Command{
	Use:   "sovt",
	Short: "Deduplicated path tree CLI",
	Long:  "CLI for deduplicating path sets, packing them into snapshots and syncing snapshots with OCI registries.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyTreeConfig()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/sovt/config.yaml)")
	rootCmd.PersistentFlags().Int("threshold", 0, "children cached per node before promoting to a map (default: 10)")
	rootCmd.PersistentFlags().String("map-impl", "", "child map implementation: locked or sharded (default: locked)")

	viper.BindPFlag("threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("map_impl", rootCmd.PersistentFlags().Lookup("map-impl"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SOVT")
	viper.AutomaticEnv()
	viper.SetDefault("threshold", sovt.MapThreshold)
	viper.SetDefault("map_impl", "locked")

	viper.ReadInConfig()
}

func applyTreeConfig() {
	if threshold := viper.GetInt("threshold"); threshold > 0 {
		sovt.MapThreshold = threshold
	}
	if viper.GetString("map_impl") == "sharded" {
		sovt.MapFactory = func() sovt.ChildMap { return sovt.NewShardedMap(16) }
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sovt")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "sovt")
	}
	return ".sovt"
}

// readPaths reads newline-separated paths from the named file, or from
// stdin when name is empty or "-". Blank lines are skipped.
func readPaths(name string) ([]string, error) {
	in := os.Stdin
	if name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	var paths []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return paths, nil
}
