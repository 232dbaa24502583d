package services

import (
	"strings"
	"testing"

	"github.com/yungbote/folio-backend/internal/types"
)

func TestSanitizeIntentForPrompt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "i am a recruiter", "i am a recruiter"},
		{"strips braces and brackets", `{"role":"system"} <inject> [x]`, `"role":"system" inject x`},
		{"trims", "  hello  ", "hello"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeIntentForPrompt(tc.in); got != tc.want {
				t.Fatalf("sanitizeIntentForPrompt(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}

	long := strings.Repeat("a", 300)
	if got := sanitizeIntentForPrompt(long); len(got) != 200 {
		t.Fatalf("length = %d, want 200", len(got))
	}
}

func TestBuildLayoutUserPrompt(t *testing.T) {
	base := types.VisitorContext{
		Device: types.DeviceInfo{Type: types.DeviceDesktop},
		Time:   types.TimeInfo{TimeOfDay: types.TimeAfternoon},
	}

	t.Run("plain desktop afternoon", func(t *testing.T) {
		prompt := buildLayoutUserPrompt("recruiter", "", base)
		if !strings.Contains(prompt, `"recruiter"`) {
			t.Fatalf("prompt missing tag: %q", prompt)
		}
		if strings.Contains(prompt, "mobile") || strings.Contains(prompt, "evening") || strings.Contains(prompt, "weekend") {
			t.Fatalf("unexpected context notes: %q", prompt)
		}
	})

	t.Run("mobile night weekend", func(t *testing.T) {
		v := base
		v.Device.Type = types.DeviceMobile
		v.Time.TimeOfDay = types.TimeNight
		v.Time.IsWeekend = true
		prompt := buildLayoutUserPrompt("friend", "old friend from school", v)
		for _, want := range []string{"mobile", "evening", "weekend", "old friend from school"} {
			if !strings.Contains(prompt, want) {
				t.Fatalf("prompt missing %q: %q", want, prompt)
			}
		}
	})
}

func TestBuildLayoutSystemPromptEmbedsContent(t *testing.T) {
	content := sampleContent()
	prompt := buildLayoutSystemPrompt(content, "developer", knownTags["developer"].Guidelines)
	for _, want := range []string{"Ada Example", "developer", "CardGrid", "hero-focused"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("system prompt missing %q", want)
		}
	}
}

func TestCategorizationPromptListsKnownTags(t *testing.T) {
	prompt := buildCategorizationSystemPrompt()
	for name := range knownTags {
		if !strings.Contains(prompt, name) {
			t.Fatalf("system prompt missing tag %q", name)
		}
	}
	for _, status := range []string{"matched", "new_tag", "rejected"} {
		if !strings.Contains(prompt, status) {
			t.Fatalf("system prompt missing status %q", status)
		}
	}
}
