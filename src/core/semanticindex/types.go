package semanticindex

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the document type held in the vector index
type Kind string

const (
	KindResume Kind = "resume"
	KindJob    Kind = "job"
)

// Valid reports whether the kind is one of the known document types
func (k Kind) Valid() bool {
	return k == KindResume || k == KindJob
}

// EntityIDKey returns the per-type metadata key the original records carried
// ("resume_id" / "job_id")
func (k Kind) EntityIDKey() string {
	return string(k) + "_id"
}

// RecordKey builds the deterministic record identifier. Re-storing the same
// (kind, owner, entity) triple always produces the same key, which is what
// makes store an idempotent upsert.
func RecordKey(kind Kind, ownerID, entityID int64) string {
	return fmt.Sprintf("%s_%d_%d", kind, ownerID, entityID)
}

// ParseRecordKey is the inverse of RecordKey. The key is the textual source
// of truth for the (kind, owner, entity) triple: unlike numeric payloads it
// survives JSON decoding without losing precision on snowflake-sized ids.
func ParseRecordKey(key string) (Kind, int64, int64, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed record key %q", key)
	}

	kind := Kind(parts[0])
	if !kind.Valid() {
		return "", 0, 0, fmt.Errorf("unknown document type in record key %q", key)
	}
	ownerID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed owner id in record key %q", key)
	}
	entityID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed entity id in record key %q", key)
	}

	return kind, ownerID, entityID, nil
}

// Record is a typed vector record handed to the index. Extra carries
// caller-supplied metadata that survived the reserved-key check.
type Record struct {
	Key         string
	Vector      []float32
	Kind        Kind
	OwnerID     int64
	EntityID    int64
	TextPreview string
	Extra       map[string]interface{}
}

// Filter scopes a query. A zero OwnerID means no owner predicate; an empty
// Kind means no type predicate (used by the "all" search).
type Filter struct {
	Kind    Kind
	OwnerID int64
}

// Match is a single ranked search hit
type Match struct {
	Key         string                 `json:"id"`
	Score       float64                `json:"score"`
	Kind        Kind                   `json:"type"`
	OwnerID     int64                  `json:"owner_id"`
	EntityID    int64                  `json:"entity_id"`
	TextPreview string                 `json:"text_preview"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// ResumeMatch is a hit from the job-to-resume matching operation
type ResumeMatch struct {
	ResumeID        int64   `json:"resume_id"`
	SimilarityScore float64 `json:"similarity_score"`
	TextPreview     string  `json:"text_preview"`
}

// Stats reports how many documents of each type an owner has indexed. Counts
// are approximate above the stats scan limit.
type Stats struct {
	Resumes int `json:"resumes"`
	Jobs    int `json:"jobs"`
}
