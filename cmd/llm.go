package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/founderpath/founderpath/internal/llm"
	"github.com/founderpath/founderpath/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the content requests FounderPath sent to the AI provider",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent content requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")

		if purpose != "" && !slices.Contains(llm.Purposes(), purpose) {
			return fmt.Errorf("unknown purpose %q (want one of %s)", purpose, strings.Join(llm.Purposes(), ", "))
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if failedOnly {
			events = slices.DeleteFunc(events, func(e store.LLMRequestEvent) bool { return e.Success })
		}
		if len(events) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-12s  %-28s  %6s  %6s  %7s  %s\n",
			"ID", "When", "Feature", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗ " + truncate(e.ErrorMessage, 30)
			}
			fmt.Printf("%-5d  %-16s  %-12s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				llm.FeatureName(e.Purpose),
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("request %d not found", id)
		}

		fmt.Printf("Request #%d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Feature:   %s (%s)\n", llm.FeatureName(e.Purpose), e.Purpose)
		fmt.Printf("Model:     %s / %s\n", e.Provider, e.Model)
		fmt.Printf("Tokens:    %d in, %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if !e.Success {
			fmt.Printf("Failed:    %s\n", e.ErrorMessage)
		}

		printSection("PROMPT", e.RequestBody)
		printSection("REPLY", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per feature and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			fmt.Println("No AI usage recorded yet.")
			return nil
		}

		fmt.Println("Usage by Feature")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n", "Feature", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))
		var calls, in, out int
		for _, st := range stats {
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				llm.FeatureName(st.Purpose), st.Calls, st.InputTokens, st.OutputTokens,
				st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
			calls += st.Calls
			in += st.InputTokens
			out += st.OutputTokens
		}
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "TOTAL", calls, in, out, in+out)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Estimated Cost (USD)")
		fmt.Println(strings.Repeat("─", 72))
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			cost := llm.LookupCost(mu.Model)
			if cost == nil {
				unpriced = append(unpriced, mu.Model)
				fmt.Printf("%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, "?")
				continue
			}
			c := cost.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			fmt.Printf("%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
		}
		fmt.Println(strings.Repeat("─", 72))
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %12s  %10s\n", label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func printSection(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose ("+strings.Join(llm.Purposes(), ", ")+")")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
