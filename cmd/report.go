package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Open shared quiz reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report_id|path>",
	Short: "Print the dashboard for a shared report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadShared(cmd, args[0])
		if err != nil {
			return err
		}
		d := report.Build(a.StudentName, a.GradeYear, a.QuizHistory)
		fmt.Fprintln(cmd.OutOrStdout(), report.RenderTerminal(d))
		return nil
	},
}

var reportPDFCmd = &cobra.Command{
	Use:   "pdf <report_id|path>",
	Short: "Render a shared report as PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadShared(cmd, args[0])
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("output")
		path, err := report.ExportPDFTo(out, a.QuizHistory)
		if err != nil {
			return err
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", path)
		return nil
	},
}

func init() {
	reportPDFCmd.Flags().StringP("output", "o", report.PDFFileName, "Output file")

	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportPDFCmd)
}

// loadShared resolves ref as a report_id in the share directory, or
// otherwise as a path to an artifact file.
func loadShared(cmd *cobra.Command, ref string) (*report.Artifact, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return report.LoadArtifact(ref)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	shares, err := report.NewShareStore(cfg.Share.Dir, cfg.Server.BaseURL)
	if err != nil {
		return nil, err
	}
	return shares.Load(ref)
}
