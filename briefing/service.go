// Package briefing generates the manager's AI daily briefing from a
// read-only snapshot of tasks, employees and blockers.
package briefing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/shangour/URmine149/models"
)

// Snapshot is the read-only input to the generator.
type Snapshot struct {
	Tasks     []models.Task     `json:"tasks"`
	Employees []models.Employee `json:"employees"`
	Blockers  []models.Blocker  `json:"blockers"`
}

// Briefing carries the generated prose, both as the model's Markdown
// and rendered to HTML.
type Briefing struct {
	Markdown string `json:"briefing"`
	HTML     string `json:"briefingHtml"`
}

type Service struct {
	provider Provider
	log      *slog.Logger
	timeout  time.Duration
	md       goldmark.Markdown
}

func NewService(provider Provider, log *slog.Logger, callTimeout time.Duration) *Service {
	if log == nil {
		log = slog.Default()
	}
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}
	return &Service{
		provider: provider,
		log:      log,
		timeout:  callTimeout,
		md:       goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Generate calls the provider with a bounded timeout and a short retry,
// then renders the reply to HTML. Upstream failures come back as
// ErrUpstreamUnavailable; nothing here touches stored data.
func (s *Service) Generate(ctx context.Context, snap Snapshot) (*Briefing, error) {
	prompt, err := buildPrompt(snap)
	if err != nil {
		return nil, err
	}

	r := retry.New[string](retry.Config{
		MaxAttempts:   2,
		InitialDelay:  time.Second,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[string](timeout.Config{
		DefaultTimeout: s.timeout,
	})

	text, err := t.Execute(ctx, s.timeout, func(ctx context.Context) (string, error) {
		return r.Do(ctx, func(ctx context.Context) (string, error) {
			return s.provider.Generate(ctx, prompt)
		})
	})
	if err != nil {
		s.log.Warn("briefing generation failed", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		// The Markdown reply is still usable on its own.
		s.log.Warn("briefing markdown rendering failed", "err", err)
		return &Briefing{Markdown: text}, nil
	}

	s.log.Info("briefing generated", "tasks", len(snap.Tasks), "blockers", len(snap.Blockers))
	return &Briefing{Markdown: text, HTML: buf.String()}, nil
}

func buildPrompt(snap Snapshot) (string, error) {
	tasks, err := json.MarshalIndent(snap.Tasks, "", "  ")
	if err != nil {
		return "", err
	}
	employees, err := json.MarshalIndent(snap.Employees, "", "  ")
	if err != nil {
		return "", err
	}
	blockers, err := json.MarshalIndent(snap.Blockers, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert project management assistant. Your task is to provide a concise, actionable 'Daily Briefing' for a manager based on the provided JSON data. The manager is busy, so be direct and clear. Use Markdown for formatting.

Here is the current data:
Tasks: %s
Employees: %s
Blockers: %s

Please structure your response in the following sections:

### Top Priorities

Highlight 1-3 tasks that require immediate attention. Focus on tasks that are blocked, nearing their due date, or significantly behind schedule. For each task, mention the owner and the reason for its priority.

### Team Pulse

Provide a brief overview of the team's status. Mention employees who are making good progress and identify anyone who might be struggling or has been idle (no recent updates).

### Potential Risks

Analyze the data to identify any potential future problems. For example, a series of small delays on a critical path, or an employee with a history of blockers taking on a complex task.

### Actionable Suggestions

Give the manager 2-3 concrete, actionable steps they should take today. For example: 'Follow up with [Employee Name] about the invalid API key for task [Task Code]' or 'Consider re-allocating [Employee Name] to help with [Task Code] to meet the deadline.'

Keep the entire briefing under 250 words and do not include the JSON data in your response.`,
		tasks, employees, blockers), nil
}
