package log_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"

	"resumatch/src/infrastructure/log"
)

func TestFacadeRoutesToConfiguredLogger(t *testing.T) {
	original := log.Logger()
	defer log.SetLogger(original)

	var entries []string
	log.SetLogger(funcr.New(func(prefix, args string) {
		entries = append(entries, args)
	}, funcr.Options{Verbosity: 1}))

	log.Info("document indexed", "key", "resume_7_42")
	log.Debug("reserved key dropped", "key", "type")
	log.Error(fmt.Errorf("connection refused"), "index write failed")

	if len(entries) != 3 {
		t.Fatalf("captured %d log entries, want 3", len(entries))
	}
	if !strings.Contains(entries[0], "document indexed") || !strings.Contains(entries[0], "resume_7_42") {
		t.Errorf("info entry = %q, want message and key/value", entries[0])
	}
	if !strings.Contains(entries[1], "reserved key dropped") {
		t.Errorf("debug entry = %q, want debug message", entries[1])
	}
	if !strings.Contains(entries[2], "connection refused") {
		t.Errorf("error entry = %q, want wrapped error", entries[2])
	}
}

func TestDebugIsFilteredAtDefaultVerbosity(t *testing.T) {
	original := log.Logger()
	defer log.SetLogger(original)

	var entries []string
	log.SetLogger(funcr.New(func(prefix, args string) {
		entries = append(entries, args)
	}, funcr.Options{}))

	log.Debug("should be filtered")

	if len(entries) != 0 {
		t.Errorf("captured %d debug entries at verbosity 0, want 0", len(entries))
	}
}
