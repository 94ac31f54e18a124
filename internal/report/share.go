package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/aitutor/internal/quiz"
)

// DefaultShareDir is where share artifacts land when none is configured.
const DefaultShareDir = "memlog"

var (
	// ErrInvalidReportID is returned for ids that are not UUIDs.
	ErrInvalidReportID = errors.New("invalid report id")
	// ErrReportNotFound is returned when no artifact exists for an id.
	ErrReportNotFound = errors.New("report not found")
)

// Artifact is the JSON document behind a share link.
type Artifact struct {
	StudentName string        `json:"student_name"`
	GradeYear   string        `json:"grade_year"`
	QuizHistory []quiz.Record `json:"quiz_history"`
}

// Link identifies a saved artifact.
type Link struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// ShareStore writes artifacts as <dir>/<id>.json. There is no access
// control, expiry or cleanup.
type ShareStore struct {
	dir     string
	baseURL string
}

// NewShareStore creates dir if needed.
func NewShareStore(dir, baseURL string) (*ShareStore, error) {
	if dir == "" {
		dir = DefaultShareDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create share dir: %w", err)
	}
	return &ShareStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the directory artifacts are written to.
func (s *ShareStore) Dir() string { return s.dir }

// Save writes a under a fresh id and returns its link.
func (s *ShareStore) Save(a Artifact) (*Link, error) {
	if a.QuizHistory == nil {
		a.QuizHistory = []quiz.Record{}
	}
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}

	id := uuid.NewString()
	path := s.path(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	return &Link{ID: id, Path: path, URL: s.URL(id)}, nil
}

// URL is the share link for id.
func (s *ShareStore) URL(id string) string {
	return s.baseURL + "/?report_id=" + url.QueryEscape(id)
}

// Load reads the artifact saved under id.
func (s *ShareStore) Load(id string) (*Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidReportID
	}
	a, err := LoadArtifact(s.path(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrReportNotFound
	}
	return a, err
}

func (s *ShareStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// LoadArtifact reads and validates an artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeArtifact(data)
}

// DecodeArtifact validates data against the artifact schema and decodes it.
func DecodeArtifact(data []byte) (*Artifact, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	sch, err := artifactSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}

const artifactSchemaJSON = `{
  "type": "object",
  "required": ["student_name", "grade_year", "quiz_history"],
  "properties": {
    "student_name": {"type": "string"},
    "grade_year": {"type": "string"},
    "quiz_history": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["quiz_topic", "questions", "user_answers", "correct_answers", "score", "timestamp"],
        "properties": {
          "student_name": {"type": "string"},
          "grade_year": {"type": "string"},
          "quiz_topic": {"type": "string"},
          "questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["question", "options"],
              "properties": {
                "question": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}}
              }
            }
          },
          "user_answers": {"type": "array", "items": {"type": "string"}},
          "correct_answers": {"type": "array", "items": {"type": "string"}},
          "score": {"type": "number", "minimum": 0, "maximum": 100},
          "timestamp": {"type": "string"}
        }
      }
    }
  }
}`

var (
	artifactOnce   sync.Once
	artifactCached *jsonschema.Schema
	artifactErr    error
)

func artifactSchema() (*jsonschema.Schema, error) {
	artifactOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(artifactSchemaJSON))
		if err != nil {
			artifactErr = fmt.Errorf("parse artifact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const u = "schema://share-artifact.json"
		if err := c.AddResource(u, doc); err != nil {
			artifactErr = fmt.Errorf("add artifact schema: %w", err)
			return
		}
		artifactCached, artifactErr = c.Compile(u)
	})
	return artifactCached, artifactErr
}
