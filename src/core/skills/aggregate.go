package skills

import (
	"regexp"
	"sort"
	"strings"
)

// evidenceSnippetLimit bounds the snippet stored with each piece of evidence
const evidenceSnippetLimit = 300

// skillVocabulary is the constrained, normalized vocabulary used for web
// evidence aggregation. It is intentionally smaller than the full extraction
// taxonomy and kept sorted so matching order is deterministic.
var skillVocabulary = []string{
	"angular", "aws", "azure", "c#", "c++", "ci/cd", "django", "docker",
	"event-driven", "fastapi", "flask", "gcp", "go", "graphql", "java",
	"javascript", "kafka", "kubernetes", "llm", "microservices", "mongodb",
	"mysql", "nlp", "node", "nosql", "numpy", "pandas", "postgres", "python",
	"pytorch", "react", "redis", "rest", "rust", "scikit-learn", "spring",
	"sql", "tensorflow", "terraform", "typescript", "vue",
}

type vocabularyTerm struct {
	token   string
	pattern *regexp.Regexp
}

var vocabularyTerms = compileVocabulary()

func compileVocabulary() []vocabularyTerm {
	terms := make([]vocabularyTerm, 0, len(skillVocabulary))
	for _, token := range skillVocabulary {
		terms = append(terms, vocabularyTerm{
			token:   token,
			pattern: wordPattern(token),
		})
	}
	return terms
}

// WebResult is one web search result snippet fed into aggregation
type WebResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// SkillEvidence attributes one matched skill to the web result it was first
// seen in
type SkillEvidence struct {
	Skill   string `json:"skill"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Bundle is the aggregation output: the sorted set of distinct skills and
// one piece of evidence per skill
type Bundle struct {
	Skills  []string        `json:"skills"`
	Sources []SkillEvidence `json:"sources"`
}

// Aggregate runs the constrained vocabulary over every result snippet and
// collects one SkillEvidence per distinct skill. First occurrence wins:
// later results mentioning an already-seen skill are dropped, never used to
// upgrade the recorded evidence.
func Aggregate(results []WebResult) Bundle {
	seen := make(map[string]struct{})
	sources := make([]SkillEvidence, 0)

	for _, result := range results {
		snippet := strings.ToLower(result.Snippet)
		if snippet == "" {
			continue
		}

		source := result.Source
		if source == "" {
			source = "web"
		}

		for _, term := range vocabularyTerms {
			if _, ok := seen[term.token]; ok {
				continue
			}
			if !term.pattern.MatchString(snippet) {
				continue
			}

			seen[term.token] = struct{}{}
			sources = append(sources, SkillEvidence{
				Skill:   term.token,
				URL:     result.URL,
				Snippet: boundSnippet(result.Snippet),
				Source:  source,
			})
		}
	}

	skills := make([]string, 0, len(seen))
	for skill := range seen {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return Bundle{
		Skills:  skills,
		Sources: sources,
	}
}

func boundSnippet(snippet string) string {
	runes := []rune(snippet)
	if len(runes) <= evidenceSnippetLimit {
		return snippet
	}
	return string(runes[:evidenceSnippetLimit])
}
