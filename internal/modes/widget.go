package modes

import (
	"fmt"
	"strings"

	"github.com/boardboost/boardboost/internal/providers"
)

// WidgetHandler guides the user through building a complete project from
// requirements to testing.
type WidgetHandler struct {
	BaseHandler
}

const widgetShortMessageSuffix = "\n\nPlease help me create a complete project. I'd like you to guide me through the entire process step by step."

const widgetFirstReplyFooter = "\n\n---\n*We're in Widget Mode, focused on creating a complete project. I'll guide you step-by-step through the entire process, from requirements to testing. Let me know if you want to adjust the complexity level or focus on specific aspects.*"

const widgetFlowContext = `
Example of a good project creation flow:
1. Define project requirements and goals
2. Identify necessary components and libraries
3. Plan the code structure and functionality
4. Implement the circuit design
5. Write the core code
6. Test and debug
7. Add advanced features
8. Final testing and documentation

Provide this level of structured guidance to the user. Be conversational but focused on completing a full working project.
`

// SystemPrompt appends the widget-mode instruction block, parameterized by
// the session's target platform and complexity level.
func (h *WidgetHandler) SystemPrompt() string {
	targetPlatform := h.Session.TargetPlatform
	if targetPlatform == "" {
		targetPlatform = h.Session.BoardType
	}
	if targetPlatform == "" {
		targetPlatform = "Arduino"
	}

	complexityLevel := h.Session.ComplexityLevel
	if complexityLevel == "" {
		complexityLevel = "intermediate"
	}

	instructions := fmt.Sprintf(`
You are in Widget Mode, helping the user create a complete Arduino project.

Target platform: %s
Complexity level: %s

Your goal is to guide the user through the process of defining requirements, selecting components, and implementing a fully functional project. Be proactive and structured in your approach.

For this mode:
1. If the user hasn't defined a clear project goal, help them narrow down what they want to build
2. Break down the project into manageable steps
3. Provide complete code examples with detailed comments
4. Include circuit diagrams described in text (e.g., "Connect pin 13 to the positive leg of the LED, then connect...")
5. Suggest testing procedures for each component
6. Anticipate common issues and provide troubleshooting tips

Always provide complete, working code that the user can directly upload to their board.
Use a step-by-step approach, making sure the user understands each part before moving on.
`, targetPlatform, complexityLevel)

	return h.BaseHandler.SystemPrompt() + "\n" + instructions
}

// ProcessUserMessage appends a guided-build request when the very first
// message of the conversation is too short to carry enough signal.
func (h *WidgetHandler) ProcessUserMessage(content string) string {
	if h.State.MessageCount == 0 && len(strings.Fields(content)) < 10 {
		return content + widgetShortMessageSuffix
	}
	return content
}

// ProcessAIResponse appends the explanatory footer to the first assistant
// reply only.
func (h *WidgetHandler) ProcessAIResponse(content string) string {
	if h.State.AssistantMessageCount == 0 {
		return content + widgetFirstReplyFooter
	}
	return content
}

// AdditionalContext supplies the structured project-creation checklist.
func (h *WidgetHandler) AdditionalContext() []providers.Message {
	return []providers.Message{
		{Role: providers.RoleSystem, Content: widgetFlowContext},
	}
}

func (h *WidgetHandler) WelcomeMessage() string {
	return "Welcome to Widget Mode! I'll help you create a complete Arduino project from start to finish. What would you like to build today?"
}
