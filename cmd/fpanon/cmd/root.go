// Package cmd implements the CLI commands for fpanon. It is a thin
// demonstration harness over the engine/vault/processor library, not
// a full external CLI/profile-registry surface.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fpvault/fpanon/internal/version"
)

var (
	cfgFile       string
	quiet         bool
	configLoadErr error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fpanon",
	Short: "Format-preserving anonymization for tabular data",
	Long: `fpanon replaces sensitive values in tabular records with
format-preserving replacements — synthetic look-alikes, deterministic
substitutions, or one-way hashes — while keeping an encrypted mapping
vault so reversible modes can be looked up or reversed later.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./fpanon.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress the summary report")

	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if len(os.Args) > 1 {
		cmd := os.Args[1]
		if cmd == "version" || cmd == "help" || cmd == "--help" || cmd == "-h" {
			return
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configName := "fpanon.yaml"
		searchPaths := []string{"."}

		if exe, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Dir(exe))
		}

		var foundConfig string
		for _, dir := range searchPaths {
			path := filepath.Join(dir, configName)
			if _, err := os.Stat(path); err == nil {
				foundConfig = path
				break
			}
		}

		if foundConfig != "" {
			viper.SetConfigFile(foundConfig)
		} else {
			viper.SetConfigName("fpanon")
			viper.SetConfigType("yaml")
			viper.AddConfigPath(".")
		}
	}

	viper.SetEnvPrefix("FPANON")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		configLoadErr = err
	}
}

// CheckConfigLoaded returns an error if no config file was loaded.
// Commands that require configuration should call this.
func CheckConfigLoaded() error {
	if configLoadErr != nil {
		if _, ok := configLoadErr.(viper.ConfigFileNotFoundError); ok {
			if cfgFile != "" {
				return fmt.Errorf("config file not found: %s", cfgFile)
			}
			return fmt.Errorf("no config file found. Create fpanon.yaml or specify one with --config")
		}
		if file := viper.ConfigFileUsed(); file != "" {
			return fmt.Errorf("error reading config file %s: %w", file, configLoadErr)
		}
		return fmt.Errorf("error reading config file: %w", configLoadErr)
	}
	return nil
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fpanon %s (built %s)\n", version.Version, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
