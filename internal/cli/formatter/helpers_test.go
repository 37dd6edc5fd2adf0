package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/proposal/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHumanTimestampFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"just now", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-30 * time.Hour), "Yesterday"},
		{"older", now.Add(-10 * 24 * time.Hour), "Jan 28, 2026"},
		{"future", now.Add(48 * time.Hour), "Feb 9, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestStatusPill(t *testing.T) {
	assert.Contains(t, StatusPill(domain.SessionActive), "Active")
	assert.Contains(t, StatusPill(domain.SessionInactive), "Inactive")
	assert.Contains(t, StatusPill(domain.SessionArchived), "Archived")
	assert.Contains(t, StatusPill(domain.SessionStatus("weird")), "weird")
}

func TestTruncID(t *testing.T) {
	assert.Contains(t, TruncID("0123456789abcdef"), "01234567")
	assert.NotContains(t, TruncID("0123456789abcdef"), "89ab")
	assert.Contains(t, TruncID("short"), "short")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hello w...", Truncate("hello world again", 10))
	assert.Equal(t, "a b c", Truncate("a\n b\t\tc", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("test", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "TITLE"}, [][]string{
		{"a", "first"},
		{"abcdef", "second"},
	})

	lines := bytes.Split([]byte(out), []byte("\n"))
	assert.Contains(t, string(lines[0]), "ID      TITLE")
	assert.Contains(t, string(lines[2]), "a       first")
	assert.Contains(t, string(lines[3]), "abcdef  second")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestStartSpinner_NonTerminalWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "Thinking...")
	time.Sleep(100 * time.Millisecond)
	stop()
	assert.Empty(t, buf.String())
}

func TestSpinner_StopTwice(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Working")
	s.Start()
	s.Stop()
	s.Stop()
	assert.Contains(t, buf.String(), "\r\033[K")
}
