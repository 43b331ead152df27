package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaiwin14/JobnexusAI/internal/errors"
	"github.com/jaiwin14/JobnexusAI/internal/types"
)

func TestHandleOutputUnsupportedFormat(t *testing.T) {
	oh := NewOutputHandler(errors.NewLogger(slog.LevelError))

	report := types.AnalysisReport{ATSScore: 72}
	err := oh.HandleOutput(report, CommandConfig{OutputFormat: "yaml"})
	if err == nil {
		t.Fatal("Expected error for unsupported output format")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("Expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("Expected code %s, got %s", errors.ErrCodeInvalidFormat, appErr.Code)
	}
	if appErr.Type != errors.ErrorTypeValidation {
		t.Errorf("Expected validation error type, got %s", appErr.Type)
	}
}

func TestHandleOutputWritesFile(t *testing.T) {
	oh := NewOutputHandler(errors.NewLogger(slog.LevelError))

	outFile := filepath.Join(t.TempDir(), "report.json")
	report := types.AnalysisReport{ATSScore: 85}

	err := oh.HandleOutput(report, CommandConfig{
		OutputFile:   outFile,
		OutputFormat: "json",
	})
	if err != nil {
		t.Fatalf("Expected output to be written, got error: %v", err)
	}

	content, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if !strings.Contains(string(content), "85") {
		t.Errorf("Expected written output to contain the score, got: %s", content)
	}
}
