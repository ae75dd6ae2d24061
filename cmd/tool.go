package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/catalog"
	"github.com/founderpath/founderpath/internal/tools"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "List and run founder document generators",
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tool templates and their inputs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range catalog.Default().Tools {
			fmt.Printf("%-16s  %s\n", t.ID, t.Name)
			fmt.Printf("%-16s  %s\n", "", t.Description)
			fmt.Printf("%-16s  inputs: %s\n\n", "", strings.Join(t.Keys(), ", "))
		}
	},
}

var toolRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Generate a document from a tool template",
	Long:  "Generate a document. Supply inputs with --set key=value; inputs left out are sent empty.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, ok := catalog.Default().Tool(args[0])
		if !ok {
			return fmt.Errorf("unknown tool %q (see: founderpath tool list)", args[0])
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		dryRun, _ := cmd.Flags().GetBool("prompt")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		var gen tools.Generator
		if !dryRun {
			client, err := env.contentClient(cmd)
			if err != nil {
				return err
			}
			gen = client
		}

		run := tools.NewRun(gen, tmpl, env.log)
		for _, s := range sets {
			key, value, ok := strings.Cut(s, "=")
			if !ok {
				return fmt.Errorf("--set %q: want key=value", s)
			}
			if err := run.Set(key, value); err != nil {
				return fmt.Errorf("--set %s: %w", key, err)
			}
		}
		run.Present()

		if dryRun {
			fmt.Println(run.Prompt())
			return nil
		}
		out, _ := run.Generate(cmd.Context())
		fmt.Println(out)
		return nil
	},
}

func init() {
	toolRunCmd.Flags().StringArray("set", nil, "Input value as key=value (repeatable)")
	toolRunCmd.Flags().Bool("prompt", false, "Print the interpolated prompt instead of generating")

	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolRunCmd)
}
