package cmd

import (
	"regexp"
	"slices"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aitutor/internal/session"
)

func TestNormalizeGrade(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Grade 7", "Grade 7"},
		{"7", "Grade 7"},
		{"  grade 12 ", "Grade 12"},
		{"college", "College"},
		{"Undergraduate", "Undergraduate"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeGrade(tt.in))
		})
	}
}

func TestGradeFlagExamplesAreValid(t *testing.T) {
	cmd := &cobra.Command{Use: "quiz"}
	addQuizFlags(cmd)

	flag := cmd.Flags().Lookup("grade")
	require.NotNil(t, flag)

	examples := regexp.MustCompile(`"([^"]+)"`).FindAllStringSubmatch(flag.Usage, -1)
	require.NotEmpty(t, examples)
	for _, m := range examples {
		grade := normalizeGrade(m[1])
		assert.True(t, slices.Contains(session.Grades, grade), "help example %q is not a known grade", m[1])
		_, err := session.NewProfile("Ada", grade)
		assert.NoError(t, err, "help example %q", m[1])
	}
}
