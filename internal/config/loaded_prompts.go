package config

import (
	"sync"
)

var (
	loadedPrompts   AllLoadedPrompts
	loadedPromptsMu sync.RWMutex
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	SectionAnalysis     string
	CompanyVerification string
	Recommendations     string
	QueryRefinement     string
	JobRanking          string
	CareerChat          string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	SkillsAnalysis      string
	ExperienceAnalysis  string
	ProjectsAnalysis    string
	EducationAnalysis   string
	FormattingAnalysis  string
	CompanyVerification string
	Recommendations     string
	QueryRefinement     string
	JobRanking          string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global  LoadedPrompts
	Analyze OperationLoadedPrompts
	Jobs    OperationLoadedPrompts
	Chat    OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation
// type. The read lock co-exists with hot reloads triggered by the prompt file
// watcher.
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	loadedPromptsMu.RLock()
	defer loadedPromptsMu.RUnlock()

	switch operationType {
	case "analyze":
		return loadedPrompts.Analyze
	case "jobs":
		return loadedPrompts.Jobs
	case "chat":
		return loadedPrompts.Chat
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
