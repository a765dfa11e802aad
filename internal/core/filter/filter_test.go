package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/recur/internal/core/task"
)

func completedTask(ago time.Duration, now time.Time) task.Task {
	done := now.Add(-ago)
	return task.Task{
		ID:          "t1",
		Title:       "Morning Run",
		ProjectID:   "p1",
		ProjectName: "Health",
		Tags:        []string{"daily", "fitness"},
		CompletedAt: &done,
	}
}

func TestConfig_Matches_Recency(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		tsk  task.Task
		cfg  Config
		want bool
	}{
		{
			name: "completed two hours ago",
			tsk:  completedTask(2*time.Hour, now),
			want: true,
		},
		{
			name: "completed exactly at window edge",
			tsk:  completedTask(24*time.Hour, now),
			want: true,
		},
		{
			name: "completed thirty hours ago",
			tsk:  completedTask(30*time.Hour, now),
			want: false,
		},
		{
			name: "never completed",
			tsk:  task.Task{ID: "t1", Title: "Morning Run"},
			want: false,
		},
		{
			name: "custom window accepts older completion",
			tsk:  completedTask(30*time.Hour, now),
			cfg:  Config{Window: 48 * time.Hour},
			want: true,
		},
		{
			name: "remote clock slightly ahead",
			tsk:  completedTask(-time.Minute, now),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Matches(tt.tsk, now))
		})
	}
}

func TestConfig_Matches_Tags(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		cfg  Config
		tags []string
		want bool
	}{
		{name: "no tag filter matches tagless task", cfg: Config{}, tags: nil, want: true},
		{name: "no tag filter matches tagged task", cfg: Config{}, tags: []string{"x"}, want: true},
		{name: "tag filter intersects", cfg: Config{Tags: []string{"daily"}}, tags: []string{"daily", "other"}, want: true},
		{name: "tag filter disjoint", cfg: Config{Tags: []string{"daily"}}, tags: []string{"weekly"}, want: false},
		{name: "tag filter against tagless task", cfg: Config{Tags: []string{"daily"}}, tags: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := completedTask(time.Hour, now)
			tsk.Tags = tt.tags
			assert.Equal(t, tt.want, tt.cfg.Matches(tsk, now))
		})
	}
}

func TestConfig_Matches_Name(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		match string
		title string
		want  bool
	}{
		{name: "empty filter matches", match: "", title: "Morning Run", want: true},
		{name: "case-insensitive substring", match: "run", title: "Morning Run", want: true},
		{name: "upper-case filter", match: "MORNING", title: "morning run", want: true},
		{name: "no substring", match: "evening", title: "Morning Run", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := completedTask(time.Hour, now)
			tsk.Title = tt.title
			cfg := Config{NameContains: tt.match}
			assert.Equal(t, tt.want, cfg.Matches(tsk, now))
		})
	}
}

func TestConfig_Matches_Projects(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		patterns []string
		project  string
		want     bool
	}{
		{name: "no project filter", patterns: nil, project: "Personal", want: true},
		{name: "glob prefix match", patterns: []string{"Work*"}, project: "Work Inbox", want: true},
		{name: "glob mismatch", patterns: []string{"Work*"}, project: "Personal", want: false},
		{name: "exact name", patterns: []string{"Health"}, project: "Health", want: true},
		{name: "missing project name fails closed", patterns: []string{"*"}, project: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tsk := completedTask(time.Hour, now)
			tsk.ProjectName = tt.project
			cfg := Config{Projects: tt.patterns}
			assert.Equal(t, tt.want, cfg.Matches(tsk, now))
		})
	}
}

func TestConfig_Matches_AllRulesAnd(t *testing.T) {
	now := time.Now()
	tsk := completedTask(time.Hour, now)

	cfg := Config{NameContains: "run", Tags: []string{"daily"}}
	assert.True(t, cfg.Matches(tsk, now))

	// Any single failing rule makes the task ineligible regardless of others.
	old := completedTask(40*time.Hour, now)
	assert.False(t, cfg.Matches(old, now))

	wrongTag := completedTask(time.Hour, now)
	wrongTag.Tags = []string{"weekly"}
	assert.False(t, cfg.Matches(wrongTag, now))
}

func TestConfig_EffectiveWindow(t *testing.T) {
	assert.Equal(t, DefaultWindow, Config{}.EffectiveWindow())
	assert.Equal(t, time.Hour, Config{Window: time.Hour}.EffectiveWindow())
}
