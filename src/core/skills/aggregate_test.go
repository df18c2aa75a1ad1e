package skills_test

import (
	"reflect"
	"strings"
	"testing"

	"resumatch/src/core/skills"
)

func TestAggregateFirstOccurrenceWins(t *testing.T) {
	results := []skills.WebResult{
		{
			Title:   "Backend trends",
			URL:     "https://example.com/a",
			Snippet: "Python and Docker dominate backend tooling",
			Source:  "blog",
		},
		{
			Title:   "More trends",
			URL:     "https://example.com/b",
			Snippet: "Python developers also adopt Kubernetes",
			Source:  "news",
		},
	}

	bundle := skills.Aggregate(results)

	wantSkills := []string{"docker", "kubernetes", "python"}
	if !reflect.DeepEqual(bundle.Skills, wantSkills) {
		t.Errorf("Aggregate().Skills = %v, want %v", bundle.Skills, wantSkills)
	}

	if len(bundle.Sources) != 3 {
		t.Fatalf("Aggregate() returned %d evidence entries, want 3", len(bundle.Sources))
	}

	evidence := make(map[string]skills.SkillEvidence, len(bundle.Sources))
	for _, source := range bundle.Sources {
		evidence[source.Skill] = source
	}

	// python appears in both results; the first result keeps the evidence
	if got := evidence["python"].URL; got != "https://example.com/a" {
		t.Errorf("python evidence URL = %q, want the first result", got)
	}
	if got := evidence["kubernetes"].URL; got != "https://example.com/b" {
		t.Errorf("kubernetes evidence URL = %q, want the second result", got)
	}
	if got := evidence["docker"].Source; got != "blog" {
		t.Errorf("docker evidence source = %q, want blog", got)
	}
}

func TestAggregateWordBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
		want    []string
	}{
		{
			name:    "go does not match inside longer words",
			snippet: "The category is ongoing and golang-adjacent",
			want:    []string{},
		},
		{
			name:    "standalone go matches",
			snippet: "Teams choose Go for services",
			want:    []string{"go"},
		},
		{
			name:    "symbol-bearing tokens",
			snippet: "Modern C++ and C# codebases",
			want:    []string{"c#", "c++"},
		},
		{
			name:    "java does not swallow javascript",
			snippet: "JavaScript frameworks everywhere",
			want:    []string{"javascript"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := skills.Aggregate([]skills.WebResult{{URL: "https://example.com", Snippet: tt.snippet}})
			if !reflect.DeepEqual(bundle.Skills, tt.want) {
				t.Errorf("Aggregate().Skills = %v, want %v", bundle.Skills, tt.want)
			}
		})
	}
}

func TestAggregateDefaultsSourceToWeb(t *testing.T) {
	bundle := skills.Aggregate([]skills.WebResult{
		{URL: "https://example.com", Snippet: "Rust adoption keeps growing"},
	})

	if len(bundle.Sources) != 1 {
		t.Fatalf("Aggregate() returned %d evidence entries, want 1", len(bundle.Sources))
	}
	if bundle.Sources[0].Source != "web" {
		t.Errorf("evidence source = %q, want web", bundle.Sources[0].Source)
	}
}

func TestAggregateBoundsSnippet(t *testing.T) {
	long := "Kafka pipelines at scale. " + strings.Repeat("filler text ", 60)
	bundle := skills.Aggregate([]skills.WebResult{
		{URL: "https://example.com", Snippet: long},
	})

	if len(bundle.Sources) != 1 {
		t.Fatalf("Aggregate() returned %d evidence entries, want 1", len(bundle.Sources))
	}
	snippet := bundle.Sources[0].Snippet
	if got := len([]rune(snippet)); got != 300 {
		t.Errorf("evidence snippet length = %d runes, want 300", got)
	}
	if !strings.HasPrefix(long, snippet) {
		t.Error("evidence snippet is not a prefix of the result snippet")
	}
}

func TestAggregateSkipsEmptySnippets(t *testing.T) {
	bundle := skills.Aggregate([]skills.WebResult{
		{Title: "Python weekly", URL: "https://example.com", Snippet: ""},
	})

	if len(bundle.Skills) != 0 {
		t.Errorf("Aggregate().Skills = %v, want no matches from titles alone", bundle.Skills)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	for _, results := range [][]skills.WebResult{nil, {}} {
		bundle := skills.Aggregate(results)
		if bundle.Skills == nil || len(bundle.Skills) != 0 {
			t.Errorf("Aggregate().Skills = %v, want empty non-nil slice", bundle.Skills)
		}
		if bundle.Sources == nil || len(bundle.Sources) != 0 {
			t.Errorf("Aggregate().Sources = %v, want empty non-nil slice", bundle.Sources)
		}
	}
}
