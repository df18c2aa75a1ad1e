package skills

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxKeywords caps how many keywords a single extraction returns
const DefaultMaxKeywords = 50

// taxonomyTerm pairs a match pattern with the canonical display form of the
// term. The taxonomy defines both: matching and presentation are one concern.
type taxonomyTerm struct {
	pattern *regexp.Regexp
	display string
}

var technicalSkills = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
		"php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "sql",
	},
	"frameworks": {
		"react", "angular", "vue", "django", "flask", "spring", "express",
		"laravel", "rails", "asp.net", "tensorflow", "pytorch", "scikit-learn",
	},
	"databases": {
		"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "sqlite",
		"oracle", "sql server", "cassandra", "dynamodb",
	},
	"cloud_platforms": {
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
		"terraform", "jenkins", "gitlab", "github actions",
	},
	"tools": {
		"git", "jira", "confluence", "slack", "figma", "sketch", "photoshop",
		"illustrator", "tableau", "power bi", "excel", "powerpoint",
	},
}

// technicalCategoryOrder fixes iteration order so extraction is deterministic
var technicalCategoryOrder = []string{
	"programming_languages", "frameworks", "databases", "cloud_platforms", "tools",
}

var softSkills = []string{
	"leadership", "communication", "teamwork", "problem solving", "analytical",
	"creative", "detail oriented", "organized", "time management", "adaptable",
	"collaborative", "innovative", "strategic thinking", "customer focused",
}

var domainTerms = []string{
	"agile", "scrum", "kanban", "devops", "ci/cd", "microservices",
	"api", "rest", "graphql", "machine learning", "artificial intelligence",
	"data science", "big data", "analytics", "business intelligence",
	"cybersecurity", "blockchain", "iot", "mobile development",
	"web development", "full stack", "frontend", "backend", "ui/ux",
}

var certificationKeywords = []string{
	"certification", "certified", "license", "licensed", "aws certified",
	"microsoft certified", "google certified", "cisco certified",
	"pmp", "cissp", "cisa", "cism",
}

var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:in|with)\b`),
	regexp.MustCompile(`minimum\s+(\d+)\s+years?`),
	regexp.MustCompile(`at least\s+(\d+)\s+years?`),
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(bachelor'?s?|master'?s?|phd|doctorate)\s+(?:degree\s+)?(?:in\s+)?(\w+)`),
	regexp.MustCompile(`\b(bs|ms|ba|ma)\s+(?:in\s+)?(\w+)`),
	regexp.MustCompile(`\b(computer science|engineering|mathematics|statistics)\b`),
}

// cleanPattern strips characters that carry no signal for keyword matching,
// keeping the ones technical terms depend on (+, #, ., -, parentheses)
var cleanPattern = regexp.MustCompile(`[^a-z0-9_\s\-\+\#\.\(\)']`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Extractor is a rule-based classifier over a closed keyword taxonomy. It is
// deterministic and never fails: garbage input yields no matches.
type Extractor struct {
	technical      []taxonomyTerm
	soft           []taxonomyTerm
	domain         []taxonomyTerm
	certifications []taxonomyTerm
}

// NewExtractor compiles the taxonomy into match patterns
func NewExtractor() *Extractor {
	e := &Extractor{}

	for _, category := range technicalCategoryOrder {
		for _, term := range technicalSkills[category] {
			e.technical = append(e.technical, taxonomyTerm{
				pattern: wordPattern(term),
				display: technicalDisplay(term),
			})
		}
	}
	for _, term := range softSkills {
		e.soft = append(e.soft, taxonomyTerm{pattern: wordPattern(term), display: titleCase(term)})
	}
	for _, term := range domainTerms {
		e.domain = append(e.domain, taxonomyTerm{pattern: wordPattern(term), display: domainDisplay(term)})
	}
	for _, term := range certificationKeywords {
		e.certifications = append(e.certifications, taxonomyTerm{pattern: wordPattern(term), display: titleCase(term)})
	}

	return e
}

// Extract returns canonical keyword tokens found in the text, deduplicated
// case-insensitively in first-seen order, capped at DefaultMaxKeywords
func (e *Extractor) Extract(text string) []string {
	return e.ExtractN(text, DefaultMaxKeywords)
}

// ExtractN is Extract with a caller-chosen cap
func (e *Extractor) ExtractN(text string, maxKeywords int) []string {
	if text == "" {
		return []string{}
	}

	cleaned := cleanText(text)

	var keywords []string
	keywords = append(keywords, matchTerms(cleaned, e.technical)...)
	keywords = append(keywords, matchTerms(cleaned, e.soft)...)
	keywords = append(keywords, matchTerms(cleaned, e.domain)...)
	keywords = append(keywords, e.extractRequirements(cleaned)...)

	unique := dedupeKeywords(keywords)
	if maxKeywords > 0 && len(unique) > maxKeywords {
		unique = unique[:maxKeywords]
	}
	return unique
}

// ExtractByCategory returns matched keywords organized by taxonomy category
func (e *Extractor) ExtractByCategory(text string) map[string][]string {
	cleaned := cleanText(text)

	return map[string][]string{
		"technical_skills": matchTerms(cleaned, e.technical),
		"soft_skills":      matchTerms(cleaned, e.soft),
		"domain_keywords":  matchTerms(cleaned, e.domain),
		"requirements":     e.extractRequirements(cleaned),
	}
}

// extractRequirements matches experience durations, degrees and
// certification keywords
func (e *Extractor) extractRequirements(cleaned string) []string {
	var found []string

	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(cleaned, -1) {
			found = append(found, fmt.Sprintf("%s+ years experience", match[1]))
		}
	}

	for _, pattern := range degreePatterns {
		for _, match := range pattern.FindAllStringSubmatch(cleaned, -1) {
			parts := make([]string, 0, len(match)-1)
			for _, group := range match[1:] {
				if group != "" {
					parts = append(parts, group)
				}
			}
			if len(parts) > 0 {
				found = append(found, titleCase(strings.Join(parts, " ")))
			}
		}
	}

	found = append(found, matchTerms(cleaned, e.certifications)...)

	return found
}

func matchTerms(cleaned string, terms []taxonomyTerm) []string {
	var found []string
	for _, term := range terms {
		if term.pattern.MatchString(cleaned) {
			found = append(found, term.display)
		}
	}
	return found
}

func dedupeKeywords(keywords []string) []string {
	unique := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		lower := strings.ToLower(keyword)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		unique = append(unique, keyword)
	}
	return unique
}

func cleanText(text string) string {
	text = strings.ToLower(text)
	text = cleanPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// wordPattern builds a word-boundary pattern for a taxonomy term. Terms that
// start or end with non-word characters (c++, c#) cannot anchor a \b there,
// so the boundary is dropped on that side.
func wordPattern(term string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.ToLower(term))

	left, right := `\b`, `\b`
	if !isWordChar(rune(term[0])) {
		left = ``
	}
	if !isWordChar(rune(term[len(term)-1])) {
		right = ``
	}

	return regexp.MustCompile(left + quoted + right)
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func technicalDisplay(term string) string {
	switch term {
	case "c++":
		return "C++"
	case "c#":
		return "C#"
	case "aws", "gcp", "sql", "api", "ui", "ux":
		return strings.ToUpper(term)
	default:
		return titleCase(term)
	}
}

func domainDisplay(term string) string {
	switch term {
	case "api", "rest", "ci/cd", "iot":
		return strings.ToUpper(term)
	case "ui/ux":
		return "UI/UX"
	default:
		return titleCase(term)
	}
}

// titleCase uppercases the first letter of each space-separated word
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
