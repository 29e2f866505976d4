package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("test-agent", &buf)
	if l == nil {
		t.Fatal("NewLogger returned nil")
	}
	if l.AgentName() != "test-agent" {
		t.Errorf("AgentName = %q", l.AgentName())
	}
}

func TestNewLogger_NilWriter(t *testing.T) {
	l := NewLogger("test", nil)
	if l == nil {
		t.Fatal("NewLogger with nil writer returned nil")
	}
	// Should not panic on log call.
	l.Info("test message")
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("myagent", &buf)
	l.Info("hello world", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "hello world") {
		t.Errorf("output missing message: %s", output)
	}
	if !strings.Contains(output, `"agent":"myagent"`) {
		t.Errorf("output missing agent: %s", output)
	}

	// Should be valid JSON.
	var m map[string]any
	if err := json.Unmarshal([]byte(output), &m); err != nil {
		t.Errorf("invalid JSON: %v", err)
	}
}

func TestLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.Debug("debug msg")

	if !strings.Contains(buf.String(), "debug msg") {
		t.Error("debug message not found")
	}
}

func TestLogger_Warn(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.Warn("warning msg")

	if !strings.Contains(buf.String(), "warning msg") {
		t.Error("warn message not found")
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.Error("error msg", "code", 500)

	output := buf.String()
	if !strings.Contains(output, "error msg") {
		t.Error("error message not found")
	}
	if !strings.Contains(output, "ERROR") {
		t.Error("expected ERROR level")
	}
}

func TestLogger_Stage(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.Stage("task_1", "s0 miss", "matcher", "none")

	output := buf.String()
	if !strings.Contains(output, `"stage":"s0 miss"`) {
		t.Errorf("stage not found: %s", output)
	}
	if !strings.Contains(output, `"task_id":"task_1"`) {
		t.Errorf("task_id not found: %s", output)
	}
}

func TestLogger_TierEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.TierEvent("task_1", "s2", 1.0, "model", "claude-haiku-3-5-20241022")

	output := buf.String()
	if !strings.Contains(output, `"tier":"s2"`) {
		t.Errorf("tier not found: %s", output)
	}
	if !strings.Contains(output, `"score":1`) {
		t.Errorf("score not found: %s", output)
	}
}

func TestLogger_PromotionEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.PromotionEvent("algorithms:abc12345", "s2", "s1")

	output := buf.String()
	if !strings.Contains(output, `"from":"s2"`) {
		t.Errorf("from not found: %s", output)
	}
	if !strings.Contains(output, `"to":"s1"`) {
		t.Errorf("to not found: %s", output)
	}
}

func TestLogger_MutationEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l.MutationEvent("task_1", "off_by_one", true)

	output := buf.String()
	if !strings.Contains(output, `"mutation_kind":"off_by_one"`) {
		t.Errorf("mutation_kind not found: %s", output)
	}
	if !strings.Contains(output, `"verified_broken":true`) {
		t.Errorf("verified_broken not found: %s", output)
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("agent1", &buf)
	l2 := l.With("task_id", "t_123")

	l2.Info("with context")

	output := buf.String()
	if !strings.Contains(output, "t_123") {
		t.Errorf("With context not found: %s", output)
	}
	// The derived logger keeps the agent name.
	if l2.AgentName() != "agent1" {
		t.Errorf("AgentName = %q", l2.AgentName())
	}
}
