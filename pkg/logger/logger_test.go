package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestJSONOutputAndFileField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json")
	defer SetOutput(os.Stdout, "console")

	fileLogger := WithFile("tienda.xlsx")
	fileLogger.Info().Msg("processed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if entry["file"] != "tienda.xlsx" {
		t.Errorf("file = %v, want tienda.xlsx", entry["file"])
	}
	if entry["message"] != "processed" {
		t.Errorf("message = %v, want processed", entry["message"])
	}
}

func TestGlobalLoggerFollows(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "json")
	defer SetOutput(os.Stdout, "console")

	log.Info().Msg("via zerolog/log")
	if !bytes.Contains(buf.Bytes(), []byte("via zerolog/log")) {
		t.Errorf("zerolog/log output not redirected: %q", buf.String())
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"loud", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		SetLevel(tt.in)
		if got := Log.GetLevel(); got != tt.want {
			t.Errorf("SetLevel(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}
