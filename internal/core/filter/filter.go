// Package filter decides which completed tasks are eligible for duplication.
package filter

import (
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/recur/internal/core/task"
)

// DefaultWindow is how far back a completion may lie and still be eligible.
const DefaultWindow = 24 * time.Hour

// Config holds the user-configured eligibility rules. The zero value
// matches every task completed within the default window.
type Config struct {
	// NameContains is a case-insensitive substring match against the task
	// title. Empty means no title filtering.
	NameContains string
	// Tags requires the task to carry at least one of the listed tags.
	// Empty means no tag filtering.
	Tags []string
	// Projects restricts matching to tasks whose project name matches one
	// of the glob patterns. Empty means no project filtering.
	Projects []string
	// Window overrides DefaultWindow when positive.
	Window time.Duration
}

// EffectiveWindow returns the configured recency window or the default.
func (c Config) EffectiveWindow() time.Duration {
	if c.Window > 0 {
		return c.Window
	}
	return DefaultWindow
}

// Matches reports whether t is eligible for duplication as of now. All
// rules must hold. Missing or malformed fields fail closed: a task that
// never completed, or completed outside the window, is never eligible.
func (c Config) Matches(t task.Task, now time.Time) bool {
	if !t.Completed() {
		return false
	}
	// Remote clocks can run slightly ahead, so a negative age is fine;
	// only completions older than the window are excluded.
	if now.Sub(*t.CompletedAt) > c.EffectiveWindow() {
		return false
	}

	if len(c.Tags) > 0 && !c.matchesTags(t) {
		return false
	}

	if c.NameContains != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(c.NameContains)) {
			return false
		}
	}

	if len(c.Projects) > 0 && !c.matchesProject(t) {
		return false
	}

	return true
}

func (c Config) matchesTags(t task.Task) bool {
	for _, want := range c.Tags {
		if t.HasTag(want) {
			return true
		}
	}
	return false
}

func (c Config) matchesProject(t task.Task) bool {
	if t.ProjectName == "" {
		return false
	}
	for _, pattern := range c.Projects {
		if ok, err := doublestar.Match(pattern, t.ProjectName); err == nil && ok {
			return true
		}
	}
	return false
}
