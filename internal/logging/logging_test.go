package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONLoggerCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Format: "json", Output: &buf}).With(String("component", "test"))

	log.Debug("registered material", String("id", "sand_powder"), Int("kind", 1))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if rec["msg"] != "registered material" {
		t.Fatalf("msg = %v", rec["msg"])
	}
	if rec["component"] != "test" || rec["id"] != "sand_powder" {
		t.Fatalf("missing fields in %v", rec)
	}
	if rec["kind"] != float64(1) {
		t.Fatalf("kind = %v, want 1", rec["kind"])
	}
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestNoopDropsEverything(t *testing.T) {
	log := Noop().With(String("a", "b"))
	log.Error("ignored", Err(nil))
}
