package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "founderpath",
	Short: "Startup lessons, an AI mentor and founder tools in your terminal",
	Long: "FounderPath: bite-sized entrepreneurship lessons with quizzes and XP, " +
		"a streaming AI mentor, document generators and book summaries.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOUNDERPATH_DB env var)")
	rootCmd.PersistentFlags().String("store", "", "Profile store engine: sqlite or json (overrides FOUNDERPATH_STORE)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides FOUNDERPATH_CONFIG)")

	rootCmd.AddCommand(lessonCmd)
	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}
