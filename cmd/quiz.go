package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/session"
	"github.com/abhisek/aitutor/internal/tui"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take quizzes in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

func init() {
	addQuizFlags(quizCmd)
}

func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Student name")
	cmd.Flags().String("grade", "", `Grade/year, e.g. "Grade 7" or "College"`)
	cmd.Flags().String("topic", "", "Start a quiz on this topic right away")
	cmd.Flags().String("api-key", "", "Model API key (overrides the configured key)")
}

func runQuiz(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	provider, err := e.provider(cmd)
	if err != nil {
		return fmt.Errorf("no model available: %w\nSet an API key with --api-key or an environment variable such as GEMINI_API_KEY", err)
	}

	shares, err := report.NewShareStore(e.cfg.Share.Dir, e.cfg.Server.BaseURL)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	grade, _ := cmd.Flags().GetString("grade")
	topic, _ := cmd.Flags().GetString("topic")

	sess := session.New(uuid.NewString(), time.Now())
	if name != "" && grade != "" {
		p, err := session.NewProfile(name, normalizeGrade(grade))
		if err != nil {
			return err
		}
		if err := sess.SetProfile(p); err != nil {
			return err
		}
	}

	deps := &tui.Deps{
		Ctx:       cmd.Context(),
		Session:   sess,
		Generator: quiz.New(provider, quizConfig(e.cfg), e.logger),
		Shares:    shares,
	}
	return tui.Run(deps, tui.Options{Name: name, Topic: topic})
}

// normalizeGrade lets --grade 7 stand for "Grade 7".
func normalizeGrade(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, g := range session.Grades {
		if strings.EqualFold(g, raw) || strings.EqualFold(g, "Grade "+raw) {
			return g
		}
	}
	return raw
}
