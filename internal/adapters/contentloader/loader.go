// Package contentloader reads portfolio records from local JSON files and
// renders them into the content chunks the indexer embeds. The rendered text
// shapes match what the production indexing job writes, so retrieval behaves
// the same against either store.
package contentloader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

// Profile is the portfolio owner's record.
type Profile struct {
	Name           string            `json:"name"`
	Headline       string            `json:"headline"`
	Role           string            `json:"role"`
	Bio            string            `json:"bio"`
	Location       string            `json:"location"`
	Email          string            `json:"email"`
	SocialLinks    map[string]string `json:"social_links"`
	ResumeURL      string            `json:"resume_url"`
	Education      []Education       `json:"education"`
	Experiences    []Experience      `json:"experiences"`
	Certifications []Certification   `json:"certifications"`
	Achievements   []Achievement     `json:"achievements"`
}

type Education struct {
	Category    string `json:"category"`
	Degree      string `json:"degree"`
	School      string `json:"school"`
	Year        string `json:"year"`
	GPA         string `json:"gpa"`
	Description string `json:"description"`
}

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
}

type Certification struct {
	Title  string `json:"title"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	Link   string `json:"link"`
}

type Achievement struct {
	Title       string `json:"title"`
	Event       string `json:"event"`
	Description string `json:"description"`
}

// Project is one portfolio project record.
type Project struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Featured    bool     `json:"featured"`
	DemoLink    string   `json:"demo_link"`
	RepoLink    string   `json:"repo_link"`
	Year        int      `json:"year"`
	Month       string   `json:"month"`
}

// SkillGroup is a category of skills.
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Loader reads profile.json, projects.json and skills.json from a directory.
// Missing files are fine; the corresponding sections are simply absent.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given content directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads all records and renders them into embeddable documents.
func (l *Loader) Load(ctx context.Context) ([]entities.Document, error) {
	var docs []entities.Document

	var profile Profile
	ok, err := l.readJSON("profile.json", &profile)
	if err != nil {
		return nil, err
	}
	if ok {
		docs = append(docs, profileDocuments(&profile)...)
	}

	var projects []Project
	ok, err = l.readJSON("projects.json", &projects)
	if err != nil {
		return nil, err
	}
	if ok {
		for _, p := range projects {
			docs = append(docs, projectDocument(p))
		}
	}

	var skills []SkillGroup
	ok, err = l.readJSON("skills.json", &skills)
	if err != nil {
		return nil, err
	}
	if ok && len(skills) > 0 {
		docs = append(docs, skillsDocument(skills))
	}

	return docs, nil
}

func (l *Loader) readJSON(name string, out interface{}) (bool, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parsing %s: %w", name, err)
	}
	return true, nil
}

func profileDocuments(p *Profile) []entities.Document {
	var docs []entities.Document

	bio := fmt.Sprintf("Profile: %s\nHeadline: %s\nRole: %s\nBio: %s\nLocation: %s",
		p.Name, p.Headline, p.Role, p.Bio, p.Location)
	docs = append(docs, newDocument("profile-bio", bio, 0, ""))

	contact := fmt.Sprintf("Contact Info for %s:\nEmail: %s\nGitHub: %s\nLinkedIn: %s\nResume: %s",
		p.Name, p.Email, orNA(p.SocialLinks["github"]), orNA(p.SocialLinks["linkedin"]), p.ResumeURL)
	docs = append(docs, newDocument("profile-contact", contact, 0, ""))

	for _, e := range p.Education {
		content := fmt.Sprintf("Education History University Degree Study School Academic Background:\nCategory: %s\nDegree: %s\nSchool: %s\nYear: %s\nGPA: %s\nDescription: %s",
			orDefault(e.Category, "University"), e.Degree, e.School, e.Year, orNA(e.GPA), e.Description)
		docs = append(docs, newDocument("profile-education", content, 0, ""))
	}

	for _, e := range p.Experiences {
		content := fmt.Sprintf("Work Experience Job History Career Role Employment Record Previous Jobs:\nRole: %s\nCompany: %s (%s)\nDescription: %s\nSkills: %s",
			e.Role, e.Company, e.Period, e.Description, e.Skills)
		docs = append(docs, newDocument("profile-experience", content, 0, ""))
	}

	for _, c := range p.Certifications {
		content := fmt.Sprintf("Certification License Credential:\nTitle: %s\nIssuer: %s\nDate: %s\nLink: %s",
			c.Title, c.Issuer, c.Date, orNA(c.Link))
		docs = append(docs, newDocument("profile-certification", content, 0, ""))
	}

	for _, a := range p.Achievements {
		content := fmt.Sprintf("Achievement Award Honor Reward:\nTitle: %s\nEvent/Organization: %s\nDescription: %s",
			a.Title, a.Event, a.Description)
		docs = append(docs, newDocument("profile-achievement", content, 0, ""))
	}

	return docs
}

func projectDocument(p Project) entities.Document {
	featured := ""
	if p.Featured {
		featured = " (Featured Project)"
	}
	content := fmt.Sprintf("Project Title: %s%s\nCategory: %s\nDescription: %s\nTech Stack: %s\nLinks:\n- Demo: %s\n- Repo: %s",
		p.Title, featured, p.Category, p.Description, strings.Join(p.Tags, ", "),
		orNA(p.DemoLink), orNA(p.RepoLink))
	doc := newDocument("project", content, p.Year, p.Month)
	return doc
}

func skillsDocument(groups []SkillGroup) entities.Document {
	var sb strings.Builder
	sb.WriteString("Skills Technical Abilities Tech Stack:")
	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("\n%s: %s", g.Category, strings.Join(g.Items, ", ")))
	}
	return newDocument("skills", sb.String(), 0, "")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// newDocument builds a document with a deterministic content-derived ID so
// re-indexing the same content replaces rows instead of duplicating them.
func newDocument(docType, content string, year int, month string) entities.Document {
	hash := sha256.Sum256([]byte(docType + "\x00" + content))
	return entities.Document{
		ID:      hex.EncodeToString(hash[:8]),
		Content: content,
		Type:    docType,
		Year:    year,
		Month:   month,
	}
}
