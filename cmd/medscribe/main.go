package main

import (
	"fmt"
	"os"

	"github.com/jwulff/medscribe/internal/config"
	"github.com/jwulff/medscribe/internal/db"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var cfgFile string

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/medscribe/config.yaml)")
	rootCmd.PersistentFlags().String("locale", "en-US", "Recognition locale")
	rootCmd.PersistentFlags().String("recognizer", config.RecognizerDaemon, "Speech backend: daemon or none")
	rootCmd.PersistentFlags().String("socket", "", "Speech daemon socket path")
	rootCmd.PersistentFlags().String("templates", "", "Extra templates YAML file")
	rootCmd.PersistentFlags().String("archive", "", "Report archive database path, e.g. "+db.DefaultDBPath()+" (empty disables archiving)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")

	rootCmd.Flags().String("export-dir", ".", "Directory for saved reports")
	rootCmd.Flags().Bool("dated", false, "Date-stamp saved report filenames")

	viper.BindPFlag("locale", rootCmd.PersistentFlags().Lookup("locale"))
	viper.BindPFlag("recognizer", rootCmd.PersistentFlags().Lookup("recognizer"))
	viper.BindPFlag("socket_path", rootCmd.PersistentFlags().Lookup("socket"))
	viper.BindPFlag("templates_file", rootCmd.PersistentFlags().Lookup("templates"))
	viper.BindPFlag("archive_path", rootCmd.PersistentFlags().Lookup("archive"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("export_dir", rootCmd.Flags().Lookup("export-dir"))
	viper.BindPFlag("dated_filename", rootCmd.Flags().Lookup("dated"))

	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	config.Prepare(viper.GetViper(), cfgFile)
	if err := config.ReadFile(viper.GetViper()); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "medscribe",
	Short: "Dictate medical reports in the terminal",
	Long: `medscribe is a terminal editor for medical reports. It captures speech
into four sections (advice, operation, post-operative notes, discharge summary),
inserts operative-note templates, and exports the report as text, HTML or an
archived record.`,
	SilenceUsage: true,
	RunE:         runEditor,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "medscribe", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
