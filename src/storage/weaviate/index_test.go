package weaviate

import (
	"encoding/json"
	"testing"

	"github.com/weaviate/weaviate/entities/models"

	"resumatch/src/core/semanticindex"
)

// GraphQL responses decode int properties into float64, which is lossy above
// 2^53. Snowflake row ids exceed that, so matches must recover ids from the
// textual record key instead of the numeric properties.
func TestMatchKeepsSnowflakeIDsExact(t *testing.T) {
	const entityID int64 = 1879968096871124993

	payload := `{
		"data": {
			"Get": {
				"TailorDocument": [
					{
						"_additional": {"id": "7f9c31a2-0000-5000-8000-000000000001", "distance": 0.12},
						"docType": "resume",
						"ownerId": 7,
						"entityId": 1879968096871124993,
						"textPreview": "Go engineer",
						"recordKey": "resume_7_1879968096871124993",
						"extraJson": "{\"title\":\"Backend\"}"
					}
				]
			}
		}
	}`

	var resp models.GraphQLResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("failed to decode response payload: %v", err)
	}

	results := parseResults(&resp, "TailorDocument")
	if len(results) != 1 {
		t.Fatalf("parseResults() returned %d results, want 1", len(results))
	}

	// the numeric property is already corrupted at this point
	if v, ok := results[0].Properties[propEntityID].(float64); !ok || int64(v) == entityID {
		t.Fatalf("entityId property = %v, want a float64 that lost precision", results[0].Properties[propEntityID])
	}

	match := matchFromProperties(results[0].Properties)
	if match.EntityID != entityID {
		t.Errorf("EntityID = %d, want %d", match.EntityID, entityID)
	}
	if match.OwnerID != 7 {
		t.Errorf("OwnerID = %d, want 7", match.OwnerID)
	}
	if match.Kind != semanticindex.KindResume {
		t.Errorf("Kind = %q, want resume", match.Kind)
	}
	if match.Key != "resume_7_1879968096871124993" {
		t.Errorf("Key = %q, want the record key", match.Key)
	}
	if match.TextPreview != "Go engineer" {
		t.Errorf("TextPreview = %q, want Go engineer", match.TextPreview)
	}
	if match.Extra["title"] != "Backend" {
		t.Errorf("Extra = %v, want decoded title", match.Extra)
	}
}

func TestMatchFallsBackToNumericProperties(t *testing.T) {
	match := matchFromProperties(map[string]interface{}{
		propDocType:     "job",
		propOwnerID:     float64(3),
		propEntityID:    float64(12),
		propTextPreview: "legacy record",
	})

	if match.Kind != semanticindex.KindJob {
		t.Errorf("Kind = %q, want job", match.Kind)
	}
	if match.OwnerID != 3 || match.EntityID != 12 {
		t.Errorf("owner/entity = %d/%d, want 3/12", match.OwnerID, match.EntityID)
	}
}
