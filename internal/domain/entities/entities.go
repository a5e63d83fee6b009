// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Roles used on the wire. The frontend historically sends "ai" for the
// assistant role, so that is what the API accepts and emits.
const (
	RoleUser      = "user"
	RoleAssistant = "ai"
)

// Message kinds. A component message instructs the client to render a UI
// panel instead of a text bubble.
const (
	KindText      = "text"
	KindComponent = "component"
)

// ComponentType identifies a renderable UI panel.
type ComponentType string

const (
	ComponentProjects ComponentType = "projects"
	ComponentSkills   ComponentType = "skills"
	ComponentContact  ComponentType = "contact"
	ComponentAbout    ComponentType = "about"
)

// ChatMessage represents one conversation turn. The message list lives only
// in client memory for the duration of a session; the server never persists it.
type ChatMessage struct {
	Role            string        `json:"role"`
	Content         string        `json:"content"`
	Kind            string        `json:"type,omitempty"`
	ComponentType   ComponentType `json:"componentType,omitempty"`
	ComponentFilter string        `json:"componentFilter,omitempty"`
}

// ChatRequest is the inbound body of the chat endpoint.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// Document is one embedded content chunk in the document store. Year and
// Month are optional; when present the context assembler appends them for
// temporal reasoning downstream.
type Document struct {
	ID        string
	Content   string
	Type      string // e.g. "project", "profile-bio", "skills"
	Year      int
	Month     string
	Embedding []float32
}

// RetrievedDocument is a search hit with its similarity score.
type RetrievedDocument struct {
	Document
	Score float64
}

// PromptContext is the assembled input for one generation call. Built once
// per request and consumed exactly once.
type PromptContext struct {
	ChatHistory string
	Context     string
	Question    string
	CurrentDate string
}

// TagType names an action tag from the closed set the model is allowed to emit.
type TagType string

const (
	TagProjects       TagType = "PROJECTS"
	TagSkills         TagType = "SKILLS"
	TagContact        TagType = "CONTACT"
	TagAbout          TagType = "ABOUT"
	TagExperience     TagType = "EXPERIENCE"
	TagEducation      TagType = "EDUCATION"
	TagAchievements   TagType = "ACHIEVEMENTS"
	TagCertifications TagType = "CERTIFICATIONS"
)

// ActionTag is the structured directive derived from a [SHOW_*] marker in
// generated text. At most one per response; first match wins.
type ActionTag struct {
	Type            TagType       `json:"type"`
	Parameter       string        `json:"parameter,omitempty"`
	ComponentType   ComponentType `json:"componentType"`
	ComponentFilter string        `json:"componentFilter,omitempty"`
}
