package corelog

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func newCapturing(min Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := &Logger{min: min, std: log.New(&buf, "", 0)}
	return l, &buf
}

func TestLevelFilterDropsBelowMinimum(t *testing.T) {
	l, buf := newCapturing(LevelWarn)
	l.Debugf("should not appear")
	l.Infof("should not appear either")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below minimum level, got %q", buf.String())
	}
	l.Warnf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected warn message in output, got %q", buf.String())
	}
}

func TestProgressFormatsCountWithCommas(t *testing.T) {
	l, buf := newCapturing(LevelInfo)
	l.Progress("rewire", 2*time.Second, 12345)
	if !strings.Contains(buf.String(), "12,345") {
		t.Fatalf("expected comma-grouped count in output, got %q", buf.String())
	}
}

func TestDumpOnlyAtDebugLevel(t *testing.T) {
	l, buf := newCapturing(LevelInfo)
	l.Dump("state", struct{ X int }{X: 1})
	if buf.Len() != 0 {
		t.Fatalf("expected Dump to be suppressed above debug level, got %q", buf.String())
	}

	l2, buf2 := newCapturing(LevelDebug)
	l2.Dump("state", struct{ X int }{X: 1})
	if !strings.Contains(buf2.String(), "state") {
		t.Fatalf("expected Dump output to include label, got %q", buf2.String())
	}
}
