package cmd

import (
	"github.com/careercompass/api/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "career-compass"

var rootCmd = &cobra.Command{
	Use:           app,
	Short:         "Career Compass API: career recommendations, job sync and progress tracking",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute runs the root command. Without a subcommand it serves HTTP.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error); overrides LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-format", "", "json or text; overrides LOG_FORMAT")

	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("LOG_FORMAT", rootCmd.PersistentFlags().Lookup("log-format"))
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}
