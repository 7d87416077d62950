package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoggerBuffersMessages(t *testing.T) {
	log := New()

	log.Info("construction started", zap.Int("sites", 3))

	require.Len(t, log.Logs, 1)
	html := log.Logs[0]
	assert.Contains(t, html, "<pre>")
	assert.Contains(t, html, "</pre>")
	assert.Contains(t, html, "construction started")
	assert.Contains(t, html, `{"sites": 3}`)
	assert.Contains(t, html, `<span style="color: green;">`)
	assert.NotContains(t, html, "\033[")
}

func TestLoggerAccumulates(t *testing.T) {
	log := New()

	log.Debug("first")
	log.Info("second")

	require.Len(t, log.Logs, 1)
	assert.Contains(t, log.Logs[0], "first")
	assert.Contains(t, log.Logs[0], "second")
}

func TestLoggerClearLogs(t *testing.T) {
	log := New()

	log.Info("before clear")
	log.ClearLogs()
	assert.Nil(t, log.Logs)

	log.Info("after clear")
	require.Len(t, log.Logs, 1)
	assert.NotContains(t, log.Logs[0], "before clear")
	assert.Contains(t, log.Logs[0], "after clear")
}

func TestAnsiToHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "hello",
			want:  "<pre>hello</pre>",
		},
		{
			name:  "colored with reset",
			input: "\033[31merror\033[0m done",
			want:  `<pre><span style="color: red;">error</span> done</pre>`,
		},
		{
			name:  "color switch without reset",
			input: "\033[32mok\033[33mwarn",
			want:  `<pre><span style="color: green;">ok</span><span style="color: yellow;">warn</span></pre>`,
		},
		{
			name:  "unknown code dropped",
			input: "\033[35mtext",
			want:  "<pre>text</pre>",
		},
		{
			name:  "unclosed span gets closed",
			input: "\033[36mtail",
			want:  `<pre><span style="color: cyan;">tail</span></pre>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ansiToHTML(tt.input))
		})
	}
}
