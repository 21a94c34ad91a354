package modes

import "fmt"

// LibraryHandler teaches the user a specific Arduino library.
type LibraryHandler struct {
	BaseHandler
}

// SystemPrompt appends the library-mode instruction block, parameterized
// by the session's library name and experience level.
func (h *LibraryHandler) SystemPrompt() string {
	libraryName := h.Session.LibraryName
	if libraryName == "" {
		libraryName = "an Arduino library"
	}

	experienceLevel := h.Session.ExperienceLevel
	if experienceLevel == "" {
		experienceLevel = "beginner"
	}

	instructions := fmt.Sprintf(`
You are in Library Learning Mode, teaching the user about the %s library.
Their experience level is %s.

Your goal is to provide structured explanations of library functions, practical examples, and guide them through learning this library step by step.

For this mode:
1. Explain core concepts and functions of the library in an accessible way
2. Provide simple examples that demonstrate key features
3. Gradually build to more complex applications
4. Reference official documentation and community resources when applicable

Use a pedagogical approach that matches their experience level.
`, libraryName, experienceLevel)

	return h.BaseHandler.SystemPrompt() + "\n" + instructions
}

func (h *LibraryHandler) WelcomeMessage() string {
	return "Welcome to Library Learning Mode! What Arduino library would you like to master today?"
}
