package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/explain"
)

var askCmd = &cobra.Command{
	Use:   "ask <question or topic...>",
	Short: "Explain a question or topic",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(cmd)
		if err != nil {
			return err
		}

		answer, err := explain.NewService(provider, explain.DefaultConfig()).
			Explain(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
		return nil
	},
}

func init() {
	askCmd.Flags().String("api-key", "", "Model API key (overrides the configured key)")
}
