package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMakeDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "test message")

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("logged = %v, want %v", got, tt.logged)
			}
		})
	}
}

func TestTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))
	logger.Trace("fine grained")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", entry["level"])
	}
}

func TestFormats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		Make(&buf, WithFormat(FormatJSON)).Info("test message", slog.String("key", "value"))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if entry["msg"] != "test message" || entry["key"] != "value" {
			t.Errorf("entry = %v", entry)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		Make(&buf, WithFormat(FormatText)).Info("test message", slog.String("key", "value"))

		if !strings.Contains(buf.String(), "key=value") {
			t.Errorf("output = %q, want key=value", buf.String())
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer
		Make(&buf, WithPretty(true)).
			With(slog.String("component", "engine")).
			Info("test message", slog.Int("n", 3))

		out := buf.String()
		for _, want := range []string{"test message", "component", "engine", "n", "3", colorGreen} {
			if !strings.Contains(out, want) {
				t.Errorf("pretty output %q missing %q", out, want)
			}
		}
	})
}

func TestTimeLayout(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithTimeLayout("none"), WithFormat(FormatJSON)).Info("test")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}

	buf.Reset()
	Make(&buf, WithTimeLayout("RFC3339Nano")).Info("test")

	if !strings.Contains(buf.String(), "time=") {
		t.Errorf("expected time field, got: %s", buf.String())
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithCaller(true)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller is not the test file: %s", buf.String())
	}
}

func TestWrapKeepsConfig(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithFormat(FormatJSON))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if wrapped.Format() != FormatJSON || wrapped.Level() != LevelDebug {
		t.Errorf("Wrap() = format %v level %v", wrapped.Format(), wrapped.Level())
	}

	if base.Level() != DefaultLevel {
		t.Errorf("Wrap modified the receiver")
	}
}

func TestZeroValue(t *testing.T) {
	var l Logger

	l.Trace("test")
	l.Info("test")
	l.Error("test")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Error("With on zero Logger allocated a logger")
	}
}

func TestConcurrentCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			logger.Info("concurrent message", slog.Int("id", i))
		})
	}

	wg.Wait()

	if lines := strings.Split(strings.TrimSpace(buf.String()), "\n"); len(lines) != 100 {
		t.Errorf("expected 100 log lines, got %d", len(lines))
	}
}

func TestParse(t *testing.T) {
	if ParseLevel("TRACE") != LevelTrace || ParseLevel("warn") != LevelWarn {
		t.Error("ParseLevel failed on known levels")
	}

	if ParseLevel("bogus") != DefaultLevel {
		t.Error("ParseLevel(bogus) != DefaultLevel")
	}

	if ParseFormat(" JSON ") != FormatJSON || ParseFormat("?") != DefaultFormat {
		t.Error("ParseFormat failed")
	}
}
