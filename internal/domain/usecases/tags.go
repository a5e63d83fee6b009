package usecases

import (
	"regexp"
	"strings"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// tagPattern matches [SHOW_TAG] or [SHOW_TAG:param], case-insensitive on the
// tag name. It must only be applied to fully accumulated text: a tag may span
// chunk boundaries, so per-chunk scanning would miss it.
var tagPattern = regexp.MustCompile(`(?i)\[SHOW_([A-Za-z]+)(?::([^\]]*))?\]`)

// stripPattern removes tag occurrences from display text.
var stripPattern = regexp.MustCompile(`\[SHOW_.*?\]`)

// tagDirectory maps a tag name to its UI directive. PROJECTS is the only tag
// whose optional parameter becomes the component filter; the about sub-section
// tags carry a fixed filter instead.
var tagDirectory = map[entities.TagType]struct {
	Component     entities.ComponentType
	Filter        string
	UsesParameter bool
}{
	entities.TagProjects:       {Component: entities.ComponentProjects, UsesParameter: true},
	entities.TagSkills:         {Component: entities.ComponentSkills},
	entities.TagContact:        {Component: entities.ComponentContact},
	entities.TagAbout:          {Component: entities.ComponentAbout},
	entities.TagExperience:     {Component: entities.ComponentAbout, Filter: "experiences"},
	entities.TagEducation:      {Component: entities.ComponentAbout, Filter: "education"},
	entities.TagAchievements:   {Component: entities.ComponentAbout, Filter: "achievements"},
	entities.TagCertifications: {Component: entities.ComponentAbout, Filter: "certifications"},
}

// ExtractActionTag scans fully accumulated response text for an action tag
// and maps it to a structured directive. First match wins; unrecognized tag
// names are silently ignored.
func ExtractActionTag(full string) *entities.ActionTag {
	m := tagPattern.FindStringSubmatch(full)
	if m == nil {
		return nil
	}

	name := entities.TagType(strings.ToUpper(m[1]))
	entry, ok := tagDirectory[name]
	if !ok {
		return nil
	}

	param := strings.TrimSpace(m[2])
	tag := &entities.ActionTag{
		Type:            name,
		Parameter:       param,
		ComponentType:   entry.Component,
		ComponentFilter: entry.Filter,
	}
	if entry.UsesParameter && param != "" {
		tag.ComponentFilter = param
	}
	return tag
}

// StripActionTags removes all complete tag occurrences from text. Safe to
// call on an accumulating prefix mid-stream: a partially received tag is left
// in place until its closing bracket arrives.
func StripActionTags(text string) string {
	return stripPattern.ReplaceAllString(text, "")
}
