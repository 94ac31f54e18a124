package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/store"
	"github.com/abhisek/aitutor/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the model request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No model calls recorded.")
			return nil
		}

		t := logTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			t.Row(
				strconv.FormatInt(e.ID, 10),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				ok,
			)
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"ID", strconv.FormatInt(e.ID, 10)},
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		for _, f := range fields {
			fmt.Fprintf(out, "%s %s\n", theme.Hint.Render(fmt.Sprintf("%-9s", f[0]+":")), f[1])
		}

		writeSection(out, "Prompt", e.RequestBody)
		writeSection(out, "Reply", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No model usage recorded yet.")
			return nil
		}

		usage := logTable("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		for _, u := range byPurpose {
			usage.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.Itoa(u.InputTokens+u.OutputTokens),
				strconv.FormatInt(u.AvgLatencyMs, 10))
		}
		in := lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.InputTokens })
		outTok := lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.OutputTokens })
		usage.Row("TOTAL",
			strconv.Itoa(lo.SumBy(byPurpose, func(u store.PurposeUsage) int { return u.Calls })),
			strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in+outTok), "")

		fmt.Fprintln(out, theme.Heading.Render("Usage by purpose"))
		fmt.Fprintln(out, usage.Render())

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		costs := logTable("Model", "Calls", "Input", "Output", "Cost")
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			price := "?"
			if c := llm.LookupCost(mu.Model); c != nil {
				usd := c.Cost(mu.InputTokens, mu.OutputTokens)
				total += usd
				price = formatCost(usd)
			} else {
				unpriced = append(unpriced, mu.Model)
			}
			costs.Row(truncate(mu.Model, 32), strconv.Itoa(mu.Calls),
				strconv.Itoa(mu.InputTokens), strconv.Itoa(mu.OutputTokens), price)
		}
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		costs.Row(label, "", "", "", formatCost(total))

		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Heading.Render("Estimated cost (USD)"))
		fmt.Fprintln(out, costs.Render())
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "Pricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// openEventLog opens the request log named by --db or the config.
func openEventLog(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func logTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		})
}

func writeSection(w io.Writer, title, body string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Heading.Render(title))
	if body == "" {
		body = theme.Hint.Render("(not captured)")
	}
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (quiz-gen or explain)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
