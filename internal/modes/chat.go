package modes

// ChatHandler is the default mode: open-ended Arduino assistance.
type ChatHandler struct {
	BaseHandler
}

const chatInstructions = `
Respond to the user's Arduino programming questions with clear explanations and helpful code examples when appropriate.
Be conversational but focused on providing technical accuracy and educational value.
When providing code examples:
1. Ensure the code is complete, well-commented, and follows best practices
2. Explain key concepts and functions used in the code
3. Consider the specified board and components when applicable

Feel free to ask clarifying questions if the user's request is ambiguous.
`

// SystemPrompt appends the chat-mode instruction block to the project
// preamble.
func (h *ChatHandler) SystemPrompt() string {
	return h.BaseHandler.SystemPrompt() + "\n" + chatInstructions
}

func (h *ChatHandler) WelcomeMessage() string {
	return "Welcome to Chat Mode! Ask me anything about Arduino programming and I'll help you out."
}
