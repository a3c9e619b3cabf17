package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer.
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{"debug json", LevelDebug, FormatJSON},
		{"info json", LevelInfo, FormatJSON},
		{"warn json", LevelWarn, FormatJSON},
		{"error json", LevelError, FormatJSON},
		{"info text", LevelInfo, FormatText},
		{"invalid level defaults to info", Level(999), FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if GetLogger() == nil {
				t.Fatal("expected a non-nil logger after InitLogger")
			}
			if tt.level == Level(999) {
				ctx := context.Background()
				if !GetLogger().Enabled(ctx, slog.LevelInfo) || GetLogger().Enabled(ctx, slog.LevelDebug) {
					t.Error("expected an invalid level to fall back to Info")
				}
			}
		})
	}

	// restore defaults for subsequent tests
	InitLogger(LevelInfo, FormatJSON)
}

func TestOperationIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := OperationID(ctx); got != "" {
		t.Fatalf("expected empty operation id, got %q", got)
	}

	ctx = WithOperationID(ctx, "op-123")
	if got := OperationID(ctx); got != "op-123" {
		t.Fatalf("expected op-123, got %q", got)
	}
}

func TestLoggerFromContextAttachesOperationID(t *testing.T) {
	ctx := WithOperationID(context.Background(), "op-abc")

	output := captureLogOutput(func() {
		InfoContext(ctx, "test message")
	})

	if !strings.Contains(output, `"operation_id":"op-abc"`) {
		t.Errorf("expected operation_id field in output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestLevelHelpers(t *testing.T) {
	output := captureLogOutput(func() {
		Debug("debug msg")
		Info("info msg")
		Warn("warn msg")
		Error("error msg")
	})

	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}

func TestStatementPrepared(t *testing.T) {
	output := captureLogOutput(func() {
		StatementPrepared("users", "SELECT name FROM users;")
	})

	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &line); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}

	if line["container"] != "users" {
		t.Errorf("expected container=users, got %v", line["container"])
	}
	if line["sql"] != "SELECT name FROM users;" {
		t.Errorf("expected sql field, got %v", line["sql"])
	}
}

func TestEngineError(t *testing.T) {
	output := captureLogOutput(func() {
		EngineError("prepare", errors.New("no such table: users"))
	})

	if !strings.Contains(output, "no such table: users") {
		t.Errorf("expected error text in output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"ERROR"`) {
		t.Errorf("expected ERROR level, got: %s", output)
	}
}

func TestTransactionEvent(t *testing.T) {
	output := captureLogOutput(func() {
		TransactionEvent("commit")
	})

	if !strings.Contains(output, `"event":"commit"`) {
		t.Errorf("expected event=commit in output, got: %s", output)
	}
}
