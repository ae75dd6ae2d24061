package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestRedactsCredentialKeys(t *testing.T) {
	log, logs := observed()
	log.Info("provider ready", "provider", "gemini", "api_key", "sk-secret", "Auth_Token", "abc")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["provider"] != "gemini" {
		t.Errorf("provider = %v, want gemini", fields["provider"])
	}
	if fields["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want redacted", fields["api_key"])
	}
	if fields["Auth_Token"] != "[REDACTED]" {
		t.Errorf("Auth_Token = %v, want redacted", fields["Auth_Token"])
	}
}

func TestTruncatesDataURLs(t *testing.T) {
	log, logs := observed()
	picture := "data:image/png;base64," + strings.Repeat("A", 500)
	log.Debug("picture stored", "picture", picture)

	got, _ := logs.All()[0].ContextMap()["picture"].(string)
	if len(got) != maxLoggedDataURL+3 {
		t.Fatalf("logged picture length = %d, want %d", len(got), maxLoggedDataURL+3)
	}
}

func TestWithCarriesFields(t *testing.T) {
	log, logs := observed()
	log.With("component", "mentor").Warn("stream failed", "err", "reset")

	fields := logs.All()[0].ContextMap()
	if fields["component"] != "mentor" || fields["err"] != "reset" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestOddKeyValuesKeepTrailingKey(t *testing.T) {
	got := sanitizeKVs([]any{"a", 1, "dangling"})
	if len(got) != 3 || got[2] != "dangling" {
		t.Fatalf("sanitizeKVs = %v", got)
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "founderpath.log")
	log, err := New(Options{Mode: "prod", Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("hello", "n", 1)
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")})
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewWithoutPathIsNop(t *testing.T) {
	log, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Error("discarded")
}
