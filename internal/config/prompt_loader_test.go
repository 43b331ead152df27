package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create test prompt files
	systemPromptContent := "Test system prompt for section analysis"
	userPromptContent := "Test user prompt template: %s"

	systemPromptFile := filepath.Join(tempDir, "system.sectionAnalysis.md")
	userPromptFile := filepath.Join(tempDir, "user.skillsAnalysis.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}

	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	// Create test config
	config := &Config{
		AI: AIConfig{
			Analyze: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						SectionAnalysisFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						SkillsAnalysisFile: userPromptFile,
					},
				},
			},
		},
	}

	// Test file loading
	err := config.loadPromptsFromFiles()
	if err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify content was loaded into the global store
	loadedOps := GetPromptsForOperation("analyze")

	if loadedOps.SystemPrompts.SectionAnalysis != systemPromptContent {
		t.Errorf("Expected loaded system prompt content '%s', got '%s'",
			systemPromptContent, loadedOps.SystemPrompts.SectionAnalysis)
	}

	if loadedOps.UserPrompts.SkillsAnalysis != userPromptContent {
		t.Errorf("Expected loaded user prompt content '%s', got '%s'",
			userPromptContent, loadedOps.UserPrompts.SkillsAnalysis)
	}

	// Verify file paths are preserved (new immutable design)
	if config.AI.Analyze.CustomPrompts.SystemPrompts.SectionAnalysisFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Analyze.CustomPrompts.UserPrompts.SkillsAnalysisFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestValidatePromptFiles(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Create a valid test file
	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	// Test with valid file
	config := &Config{
		AI: AIConfig{
			Analyze: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						SectionAnalysisFile: validFile,
					},
				},
			},
		},
	}

	err := config.validatePromptFiles()
	if err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	// Test with non-existent file
	config.AI.Analyze.CustomPrompts.SystemPrompts.SectionAnalysisFile = filepath.Join(tempDir, "nonexistent.md")

	err = config.validatePromptFiles()
	if err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	// Create temporary directory for test files
	tempDir := t.TempDir()

	// Test with valid file
	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	config := &Config{}
	loadedContent, err := config.loadPromptFromFile(testFile, "system", "sectionAnalysis")
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}

	if loadedContent != content {
		t.Errorf("Expected content '%s', got '%s'", content, loadedContent)
	}

	// Test with empty file
	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte(""), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}

	_, err = config.loadPromptFromFile(emptyFile, "system", "sectionAnalysis")
	if err == nil {
		t.Error("Expected error for empty file")
	}

	// Test with non-existent file
	_, err = config.loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", "sectionAnalysis")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestPromptFilePaths(t *testing.T) {
	tempDir := t.TempDir()

	systemFile := filepath.Join(tempDir, "system.md")
	userFile := filepath.Join(tempDir, "user.md")
	chatFile := filepath.Join(tempDir, "chat.md")

	config := &Config{
		AI: AIConfig{
			CustomPrompts: PromptConfig{
				SystemPrompts: SystemPrompts{
					QueryRefinementFile: systemFile,
				},
				UserPrompts: UserPrompts{
					JobRankingFile: userFile,
				},
			},
			Chat: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						CareerChatFile: chatFile,
					},
				},
			},
		},
	}

	paths := config.PromptFilePaths()
	if len(paths) != 3 {
		t.Fatalf("Expected 3 configured prompt file paths, got %d: %v", len(paths), paths)
	}

	want := map[string]bool{systemFile: true, userFile: true, chatFile: true}
	for _, p := range paths {
		if !want[p] {
			t.Errorf("Unexpected prompt file path: %s", p)
		}
	}
}

func TestPromptFileIntegration(t *testing.T) {
	// Create temporary directory and config file
	tempDir := t.TempDir()

	// Create test prompt files
	systemPrompt := "Custom career chat system prompt for testing"
	userPrompt := "Custom query refinement prompt: %s %s %s"

	systemFile := filepath.Join(tempDir, "system.md")
	userFile := filepath.Join(tempDir, "user.md")

	if err := os.WriteFile(systemFile, []byte(systemPrompt), 0600); err != nil {
		t.Fatalf("Failed to create system prompt file: %v", err)
	}

	if err := os.WriteFile(userFile, []byte(userPrompt), 0600); err != nil {
		t.Fatalf("Failed to create user prompt file: %v", err)
	}

	// Create a minimal config that would load these files
	config := &Config{
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "test-model",
			Timeout:     60 * time.Second,
			APIKey:      "test-key",
			MaxRetries:  3,
			Temperature: 0.7,
			Chat: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						CareerChatFile: systemFile,
					},
				},
			},
			Jobs: OperationAIConfig{
				CustomPrompts: PromptConfig{
					UserPrompts: UserPrompts{
						QueryRefinementFile: userFile,
					},
				},
			},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxUploadSize:    1024 * 1024,
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
	}

	// Apply fallbacks (simulating the full config loading process)
	config.applyFallbacks()

	// Validate and load prompt files
	if err := config.validatePromptFiles(); err != nil {
		t.Fatalf("Prompt file validation failed: %v", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	// Verify the prompts were loaded correctly into the global store
	chatPrompts := GetPromptsForOperation("chat")
	if chatPrompts.SystemPrompts.CareerChat != systemPrompt {
		t.Errorf("Expected chat system prompt '%s', got '%s'",
			systemPrompt, chatPrompts.SystemPrompts.CareerChat)
	}

	jobsPrompts := GetPromptsForOperation("jobs")
	if jobsPrompts.UserPrompts.QueryRefinement != userPrompt {
		t.Errorf("Expected jobs user prompt '%s', got '%s'",
			userPrompt, jobsPrompts.UserPrompts.QueryRefinement)
	}

	// Verify the original config paths are preserved
	if config.AI.Chat.CustomPrompts.SystemPrompts.CareerChatFile != systemFile {
		t.Error("Expected system prompt file path to be preserved")
	}

	if config.AI.Jobs.CustomPrompts.UserPrompts.QueryRefinementFile != userFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}
