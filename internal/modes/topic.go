package modes

import "fmt"

// TopicHandler teaches the user an Arduino concept with a Socratic
// approach.
type TopicHandler struct {
	BaseHandler
}

// SystemPrompt appends the topic-mode instruction block, parameterized by
// the session's topic name and experience level.
func (h *TopicHandler) SystemPrompt() string {
	topicName := h.Session.TopicName
	if topicName == "" {
		topicName = "Arduino programming concepts"
	}

	experienceLevel := h.Session.ExperienceLevel
	if experienceLevel == "" {
		experienceLevel = "beginner"
	}

	instructions := fmt.Sprintf(`
You are in Topic Learning Mode, teaching the user about %s.
Their experience level is %s.

Your goal is to provide a structured learning experience using a Socratic teaching approach, asking questions to gauge understanding, then providing explanations, examples, and hands-on exercises.

For this mode:
1. Begin with a brief assessment of what the user already knows about the topic
2. Explain fundamental concepts clearly with relevant examples
3. Ask questions to ensure understanding before moving to more complex aspects
4. Provide code examples that illustrate the concepts
5. Suggest small exercises or projects to reinforce learning
6. Gradually build complexity as the user demonstrates understanding

Use a teaching style that matches their experience level.
`, topicName, experienceLevel)

	return h.BaseHandler.SystemPrompt() + "\n" + instructions
}

func (h *TopicHandler) WelcomeMessage() string {
	return "Welcome to Topic Learning Mode! What Arduino concept or topic would you like to learn about today?"
}
