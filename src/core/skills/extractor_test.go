package skills_test

import (
	"reflect"
	"testing"

	"resumatch/src/core/skills"
)

func TestExtract(t *testing.T) {
	e := skills.NewExtractor()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "job posting with experience requirement",
			text: "Looking for a Python developer with AWS and 5+ years experience",
			want: []string{"Python", "AWS", "5+ years experience"},
		},
		{
			name: "symbol-bearing languages",
			text: "Experienced C++ and C# developer",
			want: []string{"C++", "C#"},
		},
		{
			name: "case insensitive with canonical display",
			text: "We use PYTHON, react and KuBeRnEtEs daily",
			want: []string{"Python", "React", "Kubernetes"},
		},
		{
			name: "multi-word terms",
			text: "Machine learning and problem solving are required",
			want: []string{"Problem Solving", "Machine Learning"},
		},
		{
			name: "no substring false positives",
			text: "javascript only",
			want: []string{"Javascript"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "garbage input",
			text: "@@@@ %%%% ^^^^ &&&&",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	e := skills.NewExtractor()
	text := "Senior Go engineer: Docker, Kubernetes, Terraform, PostgreSQL, Redis, " +
		"agile teamwork and communication, AWS certified, 3+ years experience"

	first := e.Extract(text)
	if len(first) == 0 {
		t.Fatal("Extract() returned no keywords")
	}
	for i := 0; i < 10; i++ {
		got := e.Extract(text)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("Extract() run %d = %v, want stable %v", i, got, first)
		}
	}
}

func TestExtractDeduplicatesCaseInsensitively(t *testing.T) {
	e := skills.NewExtractor()

	got := e.Extract("python Python PYTHON and more python")
	want := []string{"Python"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract() = %v, want %v", got, want)
	}
}

func TestExtractNCapsKeywords(t *testing.T) {
	e := skills.NewExtractor()
	text := "python java javascript typescript go rust docker kubernetes"

	got := e.ExtractN(text, 3)
	if len(got) != 3 {
		t.Fatalf("ExtractN(3) returned %d keywords, want 3", len(got))
	}
	want := []string{"Python", "Java", "Javascript"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractN(3) = %v, want %v", got, want)
	}
}

func TestExtractByCategory(t *testing.T) {
	e := skills.NewExtractor()
	text := "Python developer with leadership skills building microservices. " +
		"AWS certified, minimum 4 years in backend teams."

	got := e.ExtractByCategory(text)

	for _, category := range []string{"technical_skills", "soft_skills", "domain_keywords", "requirements"} {
		if _, ok := got[category]; !ok {
			t.Errorf("ExtractByCategory() missing category %q", category)
		}
	}

	if !contains(got["technical_skills"], "Python") || !contains(got["technical_skills"], "AWS") {
		t.Errorf("technical_skills = %v, want Python and AWS", got["technical_skills"])
	}
	if !contains(got["soft_skills"], "Leadership") {
		t.Errorf("soft_skills = %v, want Leadership", got["soft_skills"])
	}
	if !contains(got["domain_keywords"], "Microservices") || !contains(got["domain_keywords"], "Backend") {
		t.Errorf("domain_keywords = %v, want Microservices and Backend", got["domain_keywords"])
	}
	if !contains(got["requirements"], "4+ years experience") {
		t.Errorf("requirements = %v, want 4+ years experience", got["requirements"])
	}
	if !contains(got["requirements"], "Aws Certified") {
		t.Errorf("requirements = %v, want Aws Certified", got["requirements"])
	}
}

func TestExtractRequirementPhrases(t *testing.T) {
	e := skills.NewExtractor()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "years of experience", text: "requires 7 years of experience", want: "7+ years experience"},
		{name: "plus years with", text: "10+ years with distributed systems", want: "10+ years experience"},
		{name: "minimum years", text: "minimum 2 years in the field", want: "2+ years experience"},
		{name: "at least years", text: "at least 5 years on the job", want: "5+ years experience"},
		{name: "degree field", text: "degree in computer science preferred", want: "Computer Science"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractByCategory(tt.text)["requirements"]
			if !contains(got, tt.want) {
				t.Errorf("requirements = %v, want to contain %q", got, tt.want)
			}
		})
	}
}

func contains(keywords []string, want string) bool {
	for _, keyword := range keywords {
		if keyword == want {
			return true
		}
	}
	return false
}
