package usecases

import (
	"testing"

	"github.com/dwern/portfolio-chat/internal/domain/entities"
)

func TestExtractActionTag_WithParameter(t *testing.T) {
	tag := ExtractActionTag("Here you go [SHOW_PROJECTS:React]")

	if tag == nil {
		t.Fatal("expected a tag")
	}
	if tag.Type != entities.TagProjects {
		t.Errorf("unexpected type: %s", tag.Type)
	}
	if tag.Parameter != "React" {
		t.Errorf("unexpected parameter: %q", tag.Parameter)
	}
	if tag.ComponentType != entities.ComponentProjects || tag.ComponentFilter != "React" {
		t.Errorf("unexpected directive: %s/%s", tag.ComponentType, tag.ComponentFilter)
	}
}

func TestExtractActionTag_NoTag(t *testing.T) {
	if tag := ExtractActionTag("No tag here"); tag != nil {
		t.Errorf("expected nil, got %+v", tag)
	}
}

func TestExtractActionTag_UnknownName(t *testing.T) {
	if tag := ExtractActionTag("[SHOW_UNKNOWN]"); tag != nil {
		t.Errorf("unknown tag should be ignored, got %+v", tag)
	}
}

func TestExtractActionTag_CaseInsensitive(t *testing.T) {
	tag := ExtractActionTag("done [show_skills]")

	if tag == nil {
		t.Fatal("expected a tag")
	}
	if tag.Type != entities.TagSkills || tag.ComponentType != entities.ComponentSkills {
		t.Errorf("unexpected tag: %+v", tag)
	}
}

func TestExtractActionTag_FirstMatchWins(t *testing.T) {
	tag := ExtractActionTag("[SHOW_CONTACT] trailing [SHOW_ABOUT]")

	if tag == nil || tag.Type != entities.TagContact {
		t.Errorf("expected first tag, got %+v", tag)
	}
}

func TestExtractActionTag_AboutSubSections(t *testing.T) {
	cases := []struct {
		text   string
		filter string
	}{
		{"[SHOW_EXPERIENCE]", "experiences"},
		{"[SHOW_EDUCATION]", "education"},
		{"[SHOW_ACHIEVEMENTS]", "achievements"},
		{"[SHOW_CERTIFICATIONS]", "certifications"},
	}

	for _, tc := range cases {
		tag := ExtractActionTag(tc.text)
		if tag == nil {
			t.Errorf("%s: expected a tag", tc.text)
			continue
		}
		if tag.ComponentType != entities.ComponentAbout || tag.ComponentFilter != tc.filter {
			t.Errorf("%s: unexpected directive %s/%s", tc.text, tag.ComponentType, tag.ComponentFilter)
		}
	}
}

func TestStripActionTags(t *testing.T) {
	got := StripActionTags("Sure thing [SHOW_PROJECTS:Go] and more [SHOW_SKILLS]")
	if got != "Sure thing  and more " {
		t.Errorf("unexpected stripped text: %q", got)
	}
}

func TestStripActionTags_PartialTagLeftIntact(t *testing.T) {
	// Mid-stream the accumulated text may end inside a tag; the fragment
	// stays until the closing bracket arrives.
	got := StripActionTags("answer [SHOW_PRO")
	if got != "answer [SHOW_PRO" {
		t.Errorf("partial tag should be untouched: %q", got)
	}
}

// Chunk boundaries must never be assumed to align with tag boundaries:
// extraction over the concatenated whole must agree regardless of split size.
func TestExtractActionTag_ChunkSplitRoundTrip(t *testing.T) {
	full := "I specialize in Machine Learning, take a look. [SHOW_PROJECTS:Machine Learning]"
	want := ExtractActionTag(full)
	if want == nil {
		t.Fatal("fixture should extract")
	}

	for _, size := range []int{1, 2, 3, 7, len(full)} {
		var acc string
		for start := 0; start < len(full); start += size {
			end := start + size
			if end > len(full) {
				end = len(full)
			}
			acc += full[start:end]
		}
		got := ExtractActionTag(acc)
		if got == nil || *got != *want {
			t.Errorf("split size %d: got %+v, want %+v", size, got, want)
		}
	}
}
