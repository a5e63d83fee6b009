// Package usecases contains application business rules.
// Clean Architecture: Usecases orchestrate entities and depend on port interfaces.
// They contain NO framework code - just pure business logic.
package usecases

import (
	"strings"
	"unicode/utf8"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// complexMarkers indicate a substantive question that must take the remote
// path even when a navigational keyword also matches.
var complexMarkers = []string{"what is", "how does", "explain"}

// maxLocalQueryLen bounds queries eligible for the local fast path,
// measured in characters.
const maxLocalQueryLen = 50

// Classify pattern-matches short queries to direct UI-navigation intents.
// It returns false for anything that needs context synthesis, forcing the
// retrieval path. Pure function, no I/O.
func Classify(query string) (entities.ComponentType, bool) {
	lower := strings.ToLower(query)

	if lower == "" || utf8.RuneCountInString(lower) > maxLocalQueryLen {
		return "", false
	}
	for _, marker := range complexMarkers {
		if strings.Contains(lower, marker) {
			return "", false
		}
	}

	has := func(s string) bool { return strings.Contains(lower, s) }

	switch {
	case has("project") && (has("show") || has("see") || has("list")):
		return entities.ComponentProjects, true
	case has("skill") && (has("what") || has("show") || has("see")):
		return entities.ComponentSkills, true
	case has("contact") || has("reach"):
		return entities.ComponentContact, true
	case lower == "about" || lower == "about me" || has("who are you") || has("tell me about yourself"):
		return entities.ComponentAbout, true
	}
	return "", false
}

// intentReplies holds the canned acknowledgements per intent. One is picked
// pseudo-randomly so repeated navigation does not feel scripted.
var intentReplies = map[entities.ComponentType][]string{
	entities.ComponentProjects: {
		"Here are some of my recent projects 🚀",
		"Check out what I've been working on! 💻",
		"My project deck, coming right up!",
		"Here you go, my portfolio highlights.",
	},
	entities.ComponentSkills: {
		"Here is my technical arsenal 🛠️",
		"These are the tools I work with.",
		"My skills and tech stack.",
		"Here is what I am good at.",
	},
	entities.ComponentContact: {
		"Let's connect! 📬",
		"Here is how you can reach me.",
		"Don't be a stranger, say hi!",
		"My contact channels:",
	},
	entities.ComponentAbout: {
		"Here is my professional profile 👨‍💻",
		"A little bit about me.",
		"Here is my bio and background.",
		"Allow me to introduce myself.",
	},
}
