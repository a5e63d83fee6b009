package usecases

import (
	"strconv"
	"strings"
	"time"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// NoContextFallback is the literal context handed to the policy engine when
// retrieval returns nothing. The prompt treats it as valid, non-erroring input.
const NoContextFallback = "No relevant context found."

// documentSeparator joins retrieved document contents in the prompt.
const documentSeparator = "\n---\n"

// AssembleContext formats retrieved documents and the prior transcript into
// prompt-ready text. prior excludes the current question; messages are
// rendered oldest first as "role: content" lines.
func AssembleContext(docs []entities.RetrievedDocument, prior []entities.ChatMessage, question string, now time.Time) entities.PromptContext {
	contextText := NoContextFallback
	if len(docs) > 0 {
		parts := make([]string, len(docs))
		for i, doc := range docs {
			text := doc.Content
			// A (Month Year) suffix lets the model reason about tense.
			if doc.Year != 0 {
				text += " (" + strings.TrimSpace(doc.Month+" "+strconv.Itoa(doc.Year)) + ")"
			}
			parts[i] = text
		}
		contextText = strings.Join(parts, documentSeparator)
	}

	lines := make([]string, len(prior))
	for i, m := range prior {
		lines[i] = m.Role + ": " + m.Content
	}

	return entities.PromptContext{
		ChatHistory: strings.Join(lines, "\n"),
		Context:     contextText,
		Question:    question,
		CurrentDate: now.Format("January 2, 2006"),
	}
}
