package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFileBinding ties a configured prompt file path to its loaded-content
// destination. The bindings drive validation, initial loading, and hot reload
// from one table.
type promptFileBinding struct {
	filePath  string
	target    *string
	kind      string // "system" or "user"
	operation string
}

// promptFileBindings enumerates every prompt that can be loaded from a file.
// Must be called after config unmarshaling; the returned targets point into
// the package-level loadedPrompts.
func (c *Config) promptFileBindings() []promptFileBinding {
	g := &loadedPrompts.Global
	a := &loadedPrompts.Analyze
	j := &loadedPrompts.Jobs
	ch := &loadedPrompts.Chat

	return []promptFileBinding{
		// Global prompts
		{c.AI.CustomPrompts.SystemPrompts.SectionAnalysisFile, &g.SystemPrompts.SectionAnalysis, "system", "sectionAnalysis"},
		{c.AI.CustomPrompts.SystemPrompts.CompanyVerificationFile, &g.SystemPrompts.CompanyVerification, "system", "companyVerification"},
		{c.AI.CustomPrompts.SystemPrompts.RecommendationsFile, &g.SystemPrompts.Recommendations, "system", "recommendations"},
		{c.AI.CustomPrompts.SystemPrompts.QueryRefinementFile, &g.SystemPrompts.QueryRefinement, "system", "queryRefinement"},
		{c.AI.CustomPrompts.SystemPrompts.JobRankingFile, &g.SystemPrompts.JobRanking, "system", "jobRanking"},
		{c.AI.CustomPrompts.SystemPrompts.CareerChatFile, &g.SystemPrompts.CareerChat, "system", "careerChat"},
		{c.AI.CustomPrompts.UserPrompts.SkillsAnalysisFile, &g.UserPrompts.SkillsAnalysis, "user", "skillsAnalysis"},
		{c.AI.CustomPrompts.UserPrompts.ExperienceAnalysisFile, &g.UserPrompts.ExperienceAnalysis, "user", "experienceAnalysis"},
		{c.AI.CustomPrompts.UserPrompts.ProjectsAnalysisFile, &g.UserPrompts.ProjectsAnalysis, "user", "projectsAnalysis"},
		{c.AI.CustomPrompts.UserPrompts.EducationAnalysisFile, &g.UserPrompts.EducationAnalysis, "user", "educationAnalysis"},
		{c.AI.CustomPrompts.UserPrompts.FormattingAnalysisFile, &g.UserPrompts.FormattingAnalysis, "user", "formattingAnalysis"},
		{c.AI.CustomPrompts.UserPrompts.CompanyVerificationFile, &g.UserPrompts.CompanyVerification, "user", "companyVerification"},
		{c.AI.CustomPrompts.UserPrompts.RecommendationsFile, &g.UserPrompts.Recommendations, "user", "recommendations"},
		{c.AI.CustomPrompts.UserPrompts.QueryRefinementFile, &g.UserPrompts.QueryRefinement, "user", "queryRefinement"},
		{c.AI.CustomPrompts.UserPrompts.JobRankingFile, &g.UserPrompts.JobRanking, "user", "jobRanking"},

		// Analyze operation overrides
		{c.AI.Analyze.CustomPrompts.SystemPrompts.SectionAnalysisFile, &a.SystemPrompts.SectionAnalysis, "analyze system", "sectionAnalysis"},
		{c.AI.Analyze.CustomPrompts.SystemPrompts.CompanyVerificationFile, &a.SystemPrompts.CompanyVerification, "analyze system", "companyVerification"},
		{c.AI.Analyze.CustomPrompts.SystemPrompts.RecommendationsFile, &a.SystemPrompts.Recommendations, "analyze system", "recommendations"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.SkillsAnalysisFile, &a.UserPrompts.SkillsAnalysis, "analyze user", "skillsAnalysis"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.ExperienceAnalysisFile, &a.UserPrompts.ExperienceAnalysis, "analyze user", "experienceAnalysis"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.ProjectsAnalysisFile, &a.UserPrompts.ProjectsAnalysis, "analyze user", "projectsAnalysis"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.EducationAnalysisFile, &a.UserPrompts.EducationAnalysis, "analyze user", "educationAnalysis"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.FormattingAnalysisFile, &a.UserPrompts.FormattingAnalysis, "analyze user", "formattingAnalysis"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.CompanyVerificationFile, &a.UserPrompts.CompanyVerification, "analyze user", "companyVerification"},
		{c.AI.Analyze.CustomPrompts.UserPrompts.RecommendationsFile, &a.UserPrompts.Recommendations, "analyze user", "recommendations"},

		// Jobs operation overrides
		{c.AI.Jobs.CustomPrompts.SystemPrompts.QueryRefinementFile, &j.SystemPrompts.QueryRefinement, "jobs system", "queryRefinement"},
		{c.AI.Jobs.CustomPrompts.SystemPrompts.JobRankingFile, &j.SystemPrompts.JobRanking, "jobs system", "jobRanking"},
		{c.AI.Jobs.CustomPrompts.UserPrompts.QueryRefinementFile, &j.UserPrompts.QueryRefinement, "jobs user", "queryRefinement"},
		{c.AI.Jobs.CustomPrompts.UserPrompts.JobRankingFile, &j.UserPrompts.JobRanking, "jobs user", "jobRanking"},

		// Chat operation overrides
		{c.AI.Chat.CustomPrompts.SystemPrompts.CareerChatFile, &ch.SystemPrompts.CareerChat, "chat system", "careerChat"},
	}
}

// loadPromptsFromFiles loads custom prompts from external files if file paths
// are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()

	loadedCount := 0
	for _, b := range c.promptFileBindings() {
		if b.filePath == "" {
			continue
		}
		content, err := c.loadPromptFromFile(b.filePath, b.kind, b.operation)
		if err != nil {
			return err
		}
		*b.target = content
		loadedCount++
	}

	if loadedCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", loadedCount)
	}

	return nil
}

// ReloadPromptsFromFiles re-reads every configured prompt file. Used by the
// prompt file watcher; a failed reload leaves the previous content in place.
func (c *Config) ReloadPromptsFromFiles() error {
	loadedPromptsMu.Lock()
	defer loadedPromptsMu.Unlock()

	for _, b := range c.promptFileBindings() {
		if b.filePath == "" {
			continue
		}
		content, err := c.loadPromptFromFile(b.filePath, b.kind, b.operation)
		if err != nil {
			return err
		}
		*b.target = content
	}
	return nil
}

// PromptFilePaths returns every configured prompt file path, for watching.
func (c *Config) PromptFilePaths() []string {
	var paths []string
	for _, b := range c.promptFileBindings() {
		if b.filePath != "" {
			paths = append(paths, b.filePath)
		}
	}
	return paths
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, b := range c.promptFileBindings() {
		if b.filePath == "" {
			continue
		}

		absPath, err := filepath.Abs(b.filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", b.kind, b.operation, b.filePath))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", b.kind, b.operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
