package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// DefaultStudentName is reported when no profile has been saved.
	DefaultStudentName = "Anonymous"
	// DefaultGrade is the first entry of Grades.
	DefaultGrade = "Not specified"
)

// Grades is the closed list of grade/year values a profile may carry.
var Grades = []string{
	DefaultGrade,
	"Grade 1", "Grade 2", "Grade 3", "Grade 4", "Grade 5", "Grade 6",
	"Grade 7", "Grade 8", "Grade 9", "Grade 10", "Grade 11", "Grade 12",
	"College",
}

var (
	ErrNameRequired = errors.New("please enter your name")
	ErrUnknownGrade = errors.New("unknown grade/year")
)

// Profile identifies the student for the lifetime of a session.
type Profile struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
}

// NewProfile validates name and grade. A blank grade means DefaultGrade.
// The name is stored as entered; only blankness is rejected.
func NewProfile(name, grade string) (Profile, error) {
	if strings.TrimSpace(name) == "" {
		return Profile{}, ErrNameRequired
	}
	if grade == "" {
		grade = DefaultGrade
	}
	if !slices.Contains(Grades, grade) {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownGrade, grade)
	}
	return Profile{Name: name, Grade: grade}, nil
}
