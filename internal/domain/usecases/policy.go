package usecases

import (
	"strings"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// QueryClass is one of the four query types the response policy recognizes.
type QueryClass string

const (
	ClassCapability QueryClass = "capability"
	ClassEvidence   QueryClass = "evidence"
	ClassSynthesis  QueryClass = "synthesis"
	ClassPivot      QueryClass = "pivot"
)

// PolicyRule is one row of the response-policy decision table. The table is
// rendered verbatim into the generation prompt, so the rules live here as
// data rather than buried in a prompt string.
type PolicyRule struct {
	Class QueryClass
	Title string
	Lines []string
}

// PolicyTable encodes the classification rules the model is instructed to
// follow: response shape and tag policy per query type. Order matters; it is
// the priority order rendered into the prompt.
var PolicyTable = []PolicyRule{
	{
		Class: ClassCapability,
		Title: `**Type A: Capability Questions ("Do you know [Tech]?" / "What are your skills?")**`,
		Lines: []string{
			`- IF [Tech] is in Context: "Yes, I am proficient in [Tech]..." -> Append [SHOW_SKILLS]`,
			`- IF [Tech] is NOT in Context: Go to "Type D (Pivot)".`,
		},
	},
	{
		Class: ClassEvidence,
		Title: `**Type B: Evidence Questions ("Show me [Tech] projects" / "Have you built with [Tech]?")**`,
		Lines: []string{
			`- IF Projects with [Tech] exist: "Here are my projects using [Tech]..." -> Append [SHOW_PROJECTS:Tech]`,
			`- IF [Tech] is in Skills but NO Projects: "I know [Tech], but haven't highlighted specific projects with it. However, here is my skill set..." -> Append [SHOW_SKILLS]`,
		},
	},
	{
		Class: ClassSynthesis,
		Title: `**Type C: Synthesis Questions ("Experience in [Field]?")**`,
		Lines: []string{
			`- Scan Projects, Work, Education, and Certifications for [Field].`,
			`- Synthesize a comprehensive answer.`,
			`- Append the most relevant tag (e.g. [SHOW_PROJECTS:Field] or [SHOW_EXPERIENCE]).`,
			`- IF [Field] is completely missing: Go to "Type D (Pivot)".`,
		},
	},
	{
		Class: ClassPivot,
		Title: `**Type D: The Pivot (Missing Info / Irrelevant Questions)**`,
		Lines: []string{
			`- **Scenario 1: Professional but Missing (e.g., "Do you know Vue?" when you only know Machine Learning)**`,
			`  - Polite Refusal: "That isn't part of my current portfolio."`,
			`  - The Pivot: Immediately mention a **strongest related skill** from Context.`,
			`  - Action: Append the relevant tag for the *existing* skill.`,
			`  - *Example:* "I don't have Vue experience, but I specialize in Machine Learning..." -> [SHOW_PROJECTS:Machine Learning]`,
			`- **Scenario 2: Personal / Off-Topic (e.g., "How tall are you?")**`,
			`  - Acknowledge & Dismiss: "I don't have that information."`,
			`  - Pivot: "However, I can tell you about my expertise in [Key Skill from Context]."`,
			`  - Action: **Do NOT append tags.** Keep it text-only.`,
		},
	},
}

// constraints are the grounding rules every response must obey regardless of
// query class.
var constraints = []string{
	`1. **No Hallucination:** Do NOT mention tools, skills, or experiences unless explicitly stated in the Context. If it's missing, treat it as unknown.`,
	`2. **No Inferences:** Do not assume knowledge (e.g., do not assume "React" implies "Next.js" unless both are written).`,
	`3. **No Percentages:** Do not mention skill levels (e.g., "80%", "Level 5"). Just state the skill.`,
	`4. **Time Awareness:** Compare dates in Context to the Current Date.`,
	`  - If "Expected 2025" and today is 2026 -> Change tense to past (e.g., "graduated in 2025").`,
	`  - If "Present" and no end date -> Treat as active.`,
}

// tagGrammar lists every tag the model may emit, with its meaning. Rendered
// into the prompt; the extractor's closed set must stay in sync with it.
var tagGrammar = []struct {
	Tag  string
	Desc string
}{
	{"[SHOW_PROJECTS]", "Show all projects."},
	{"[SHOW_PROJECTS:keyword]", `Show projects matching "keyword" (e.g. [SHOW_PROJECTS:React]).`},
	{"[SHOW_EXPERIENCE]", "Show Work Experience card."},
	{"[SHOW_EDUCATION]", "Show Education card."},
	{"[SHOW_SKILLS]", "Show Skills deck."},
	{"[SHOW_CONTACT]", "Show Contact card."},
	{"[SHOW_ABOUT]", "Show About Me profile."},
	{"[SHOW_ACHIEVEMENTS]", "Show Achievements card."},
	{"[SHOW_CERTIFICATIONS]", "Show Certifications card."},
}

// BuildPrompt renders the response policy, the assembled context and the
// question into the instruction text for one generation call.
func BuildPrompt(pc entities.PromptContext) string {
	var sb strings.Builder

	sb.WriteString("### ROLE & OBJECTIVE\n")
	sb.WriteString("You are the AI Assistant for a Portfolio Website.\n")
	sb.WriteString("Current Date: " + pc.CurrentDate + "\n")
	sb.WriteString("Your goal is to answer questions about the portfolio owner based STRICTLY on the provided Context.\n\n")

	sb.WriteString("### UI ACTION TAGS\n")
	sb.WriteString("If the user asks to \"see\", \"show\", or \"visualize\" a section, or if your answer heavily relies on specific evidence, you MUST append EXACTLY ONE of the following tags to the end of your response.\n\n")
	for _, g := range tagGrammar {
		sb.WriteString(g.Tag + " -> " + g.Desc + "\n")
	}
	sb.WriteString("\n**Tag Rules:**\n")
	sb.WriteString("1. Do NOT invent new tags.\n")
	sb.WriteString("2. If multiple tags apply, choose the most specific one.\n\n")

	sb.WriteString("### CRITICAL CONSTRAINTS\n")
	for _, c := range constraints {
		sb.WriteString(c + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString("### RESPONSE LOGIC FLOW\n")
	sb.WriteString("Follow this priority order to determine your response:\n\n")
	sb.WriteString("1. **CHECK CHAT HISTORY**\n")
	sb.WriteString("  If user says \"Yes\", \"Sure\", or agrees to a previous offer -> Fulfill that offer immediately using General Knowledge or the relevant Tag.\n\n")
	sb.WriteString("2. **CLASSIFY & ANSWER**\n\n")
	for _, rule := range PolicyTable {
		sb.WriteString("  " + rule.Title + "\n")
		for _, line := range rule.Lines {
			sb.WriteString("  " + line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("### INPUT DATA\n")
	sb.WriteString("Chat History:\n")
	sb.WriteString(pc.ChatHistory + "\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(pc.Context + "\n\n")
	sb.WriteString("Question: " + pc.Question + "\n\n")
	sb.WriteString("Answer:")

	return sb.String()
}
