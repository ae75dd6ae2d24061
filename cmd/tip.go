package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Print today's founder tip",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		client, err := env.contentClient(cmd)
		if err != nil {
			return err
		}
		fmt.Println(client.GenerateDailyTip(cmd.Context()))
		return nil
	},
}
