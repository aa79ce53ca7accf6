package briefing_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shangour/URmine149/briefing"
	"github.com/shangour/URmine149/constants"
	"github.com/shangour/URmine149/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func snapshot() briefing.Snapshot {
	return briefing.Snapshot{
		Tasks: []models.Task{{
			ID:                 "task-2",
			Code:               "10/10/25 API Integration",
			OwnerID:            "emp-2",
			Status:             constants.TaskStatusBlocked,
			ProgressPercentage: 20,
		}},
		Employees: []models.Employee{{ID: "emp-2", Name: "Priya"}},
		Blockers: []models.Blocker{{
			ID: "blk-1", TaskID: "task-2", EmployeeID: "emp-2",
			Title: "Invalid API credentials", Severity: constants.SeverityHigh,
			Status: constants.BlockerStatusOpen,
		}},
	}
}

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func TestGenerate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply("### Top Priorities\n\nFollow up on the blocked API task."))
	}))
	defer server.Close()

	provider := briefing.NewGeminiProviderWithClient("gemini-2.5-flash", "test-key", server.URL, server.Client())
	svc := briefing.NewService(provider, discardLogger(), 5*time.Second)

	result, err := svc.Generate(context.Background(), snapshot())
	require.NoError(t, err)

	assert.Contains(t, gotPrompt, "Daily Briefing")
	assert.Contains(t, gotPrompt, "10/10/25 API Integration")
	assert.Contains(t, gotPrompt, "Invalid API credentials")

	assert.True(t, strings.HasPrefix(result.Markdown, "### Top Priorities"))
	assert.Contains(t, result.HTML, "<h3")
	assert.Contains(t, result.HTML, "Top Priorities")
}

func TestGenerate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := briefing.NewGeminiProviderWithClient("gemini-2.5-flash", "test-key", server.URL, server.Client())
	svc := briefing.NewService(provider, discardLogger(), 5*time.Second)

	_, err := svc.Generate(context.Background(), snapshot())
	require.ErrorIs(t, err, briefing.ErrUpstreamUnavailable)
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	provider := briefing.NewGeminiProvider("gemini-2.5-flash", "")
	svc := briefing.NewService(provider, discardLogger(), 5*time.Second)

	_, err := svc.Generate(context.Background(), snapshot())
	require.ErrorIs(t, err, briefing.ErrUpstreamUnavailable)
}
