package providers

import "strings"

// ExtractModel pulls the "model: <name>" marker out of the first system
// message. The marker keeps the orchestrator vendor-agnostic: it decides
// the model, threads it through the prompt, and each provider strips the
// line before dispatch. Returns fallback when no marker is present.
func ExtractModel(messages []Message, fallback string) (string, []Message) {
	for i, msg := range messages {
		if msg.Role != RoleSystem {
			continue
		}
		if !strings.Contains(strings.ToLower(msg.Content), "model:") {
			return fallback, messages
		}

		model := fallback
		lines := strings.Split(msg.Content, "\n")
		kept := make([]string, 0, len(lines))
		found := false
		for _, line := range lines {
			if !found && strings.Contains(strings.ToLower(line), "model:") {
				idx := strings.Index(strings.ToLower(line), "model:")
				if name := strings.TrimSpace(line[idx+len("model:"):]); name != "" {
					model = name
				}
				found = true
				continue
			}
			kept = append(kept, line)
		}

		out := make([]Message, len(messages))
		copy(out, messages)
		out[i].Content = strings.TrimSpace(strings.Join(kept, "\n"))
		return model, out
	}
	return fallback, messages
}
