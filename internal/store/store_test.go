package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if err := s.DB().Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='llm_request_events'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "llm_request_events" {
		t.Errorf("table name = %q, want 'llm_request_events'", name)
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "explain", Success: true,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "quiz-gen",
		InputTokens:  120,
		OutputTokens: 480,
		LatencyMs:    950,
		Success:      true,
		RequestBody:  "[user]\nGenerate a multiple-choice quiz on Photosynthesis",
		ResponseBody: "Question 1: ...",
	}
	if err := repo.AppendLLMRequest(ctx, data); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected event, got nil")
	}
	if got.LLMRequestEventData != data {
		t.Errorf("data = %+v, want %+v", got.LLMRequestEventData, data)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v is not recent", got.Timestamp)
	}
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestQueryLLMEventsFilters(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	purposes := []string{"explain", "quiz-gen", "quiz-gen", "explain", "quiz-gen"}
	for _, p := range purposes {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: p, Success: true,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("all = %d, want 5", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID <= all[i].ID {
			t.Fatalf("events not newest first: %d before %d", all[i-1].ID, all[i].ID)
		}
	}

	quiz, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "quiz-gen"})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(quiz) != 3 {
		t.Errorf("quiz-gen = %d, want 3", len(quiz))
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}

	oldest := all[len(all)-1].ID
	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: oldest})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 4 {
		t.Errorf("after = %d, want 4", len(after))
	}

	newest := all[0].ID
	before, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: newest, After: oldest})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(before) != 3 {
		t.Errorf("between = %d, want 3", len(before))
	}

	future, err := repo.QueryLLMEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future = %d, want 0", len(future))
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	rows := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 500, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 20, OutputTokens: 300, LatencyMs: 700, Success: true},
	}
	for _, r := range rows {
		if err := repo.AppendLLMRequest(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	want := []PurposeUsage{
		{Purpose: "explain", Calls: 1, InputTokens: 20, OutputTokens: 300, AvgLatencyMs: 700},
		{Purpose: "quiz-gen", Calls: 2, InputTokens: 200, OutputTokens: 600, AvgLatencyMs: 750},
	}
	if len(byPurpose) != len(want) {
		t.Fatalf("by purpose = %+v, want %+v", byPurpose, want)
	}
	for i := range want {
		if byPurpose[i] != want[i] {
			t.Errorf("by purpose[%d] = %+v, want %+v", i, byPurpose[i], want[i])
		}
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("by model = %+v, want 2 rows", byModel)
	}
	if byModel[0].Model != "gemini-2.0-flash" || byModel[0].Calls != 2 || byModel[0].OutputTokens != 600 {
		t.Errorf("by model[0] = %+v", byModel[0])
	}
}
