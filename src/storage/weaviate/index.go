package weaviate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate/entities/models"

	"resumatch/src/core/semanticindex"
	"resumatch/src/infrastructure/log"
)

const DefaultClassName = "TailorDocument"

// recordNamespace seeds the UUIDv5 derivation of Weaviate object ids from
// deterministic record keys. Weaviate requires UUID object ids, so the key
// "resume_<owner>_<entity>" is hashed into one; the same key always yields
// the same id, which is what makes upserts idempotent.
var recordNamespace = uuid.MustParse("8b9e1a46-46f5-5dd0-9d3f-6e2a7c9b0f41")

// Property names of the document class. These are owned by the index; caller
// extra metadata travels in the extraJson blob and can never collide.
const (
	propDocType     = "docType"
	propOwnerID     = "ownerId"
	propEntityID    = "entityId"
	propTextPreview = "textPreview"
	propRecordKey   = "recordKey"
	propExtraJSON   = "extraJson"
)

var documentFields = []string{
	propDocType, propOwnerID, propEntityID, propTextPreview, propRecordKey, propExtraJSON,
}

// DocumentIndex adapts the Weaviate SDK to the document vector index used by
// the semantic index service. All documents live in a single class and are
// partitioned by the docType and ownerId properties.
type DocumentIndex struct {
	sdk       *SDK
	className string
}

// NewDocumentIndex creates a document index over the given class
func NewDocumentIndex(sdk *SDK, className string) *DocumentIndex {
	if className == "" {
		className = DefaultClassName
	}
	return &DocumentIndex{
		sdk:       sdk,
		className: className,
	}
}

// EnsureSchema provisions the document class once at startup. It is
// idempotent; an existing class is reused as-is.
func (d *DocumentIndex) EnsureSchema(ctx context.Context) error {
	properties := []*models.Property{
		{
			Name:        propDocType,
			DataType:    []string{"text"},
			Description: "Document type: resume or job",
		},
		{
			Name:        propOwnerID,
			DataType:    []string{"int"},
			Description: "ID of the owning user",
		},
		{
			Name:        propEntityID,
			DataType:    []string{"int"},
			Description: "ID of the resume or job row",
		},
		{
			Name:        propTextPreview,
			DataType:    []string{"text"},
			Description: "Bounded prefix of the document text",
		},
		{
			Name:        propRecordKey,
			DataType:    []string{"text"},
			Description: "Deterministic record key the object id derives from",
		},
		{
			Name:        propExtraJSON,
			DataType:    []string{"text"},
			Description: "JSON-encoded caller metadata",
		},
	}

	return d.sdk.EnsureSchema(ctx, d.className, properties)
}

// Upsert implements semanticindex.VectorIndex
func (d *DocumentIndex) Upsert(ctx context.Context, record semanticindex.Record) error {
	properties := map[string]interface{}{
		propDocType:     string(record.Kind),
		propOwnerID:     record.OwnerID,
		propEntityID:    record.EntityID,
		propTextPreview: record.TextPreview,
		propRecordKey:   record.Key,
	}

	if len(record.Extra) > 0 {
		extraJSON, err := json.Marshal(record.Extra)
		if err != nil {
			return fmt.Errorf("failed to encode extra metadata: %v", err)
		}
		properties[propExtraJSON] = string(extraJSON)
	}

	return d.sdk.UpsertVector(ctx, d.className, VectorObject{
		ID:         objectID(record.Key),
		Vector:     record.Vector,
		Properties: properties,
	})
}

// Query implements semanticindex.VectorIndex. Weaviate reports cosine
// distance; scores are converted to similarity so higher is better.
func (d *DocumentIndex) Query(ctx context.Context, vector []float32, filter semanticindex.Filter, topK int) ([]semanticindex.Match, error) {
	results, err := d.sdk.QueryVectors(ctx, d.className, vector, QueryConfig{
		Fields: documentFields,
		Limit:  topK,
		Where:  whereFromFilter(filter),
	})
	if err != nil {
		return nil, err
	}

	matches := make([]semanticindex.Match, 0, len(results))
	for _, result := range results {
		match := matchFromProperties(result.Properties)
		match.Score = 1 - result.Distance
		matches = append(matches, match)
	}
	return matches, nil
}

// Delete implements semanticindex.VectorIndex. Unknown keys are ignored.
func (d *DocumentIndex) Delete(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := d.sdk.DeleteVector(ctx, d.className, objectID(key)); err != nil {
			return err
		}
	}
	return nil
}

// Count implements semanticindex.VectorIndex via a filtered scan capped at
// limit objects. The result is exact below the cap and approximate above it.
func (d *DocumentIndex) Count(ctx context.Context, filter semanticindex.Filter, limit int) (int, error) {
	results, err := d.sdk.ListObjects(ctx, d.className, whereFromFilter(filter), limit, []string{propRecordKey})
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

func objectID(key string) string {
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

func whereFromFilter(filter semanticindex.Filter) *filters.WhereBuilder {
	var operands []*filters.WhereBuilder

	if filter.Kind != "" {
		operands = append(operands, filters.Where().
			WithPath([]string{propDocType}).
			WithOperator(filters.Equal).
			WithValueText(string(filter.Kind)))
	}
	if filter.OwnerID != 0 {
		operands = append(operands, filters.Where().
			WithPath([]string{propOwnerID}).
			WithOperator(filters.Equal).
			WithValueInt(filter.OwnerID))
	}

	switch len(operands) {
	case 0:
		return nil
	case 1:
		return operands[0]
	default:
		return filters.Where().
			WithOperator(filters.And).
			WithOperands(operands)
	}
}

func matchFromProperties(properties map[string]interface{}) semanticindex.Match {
	match := semanticindex.Match{}

	if v, ok := properties[propTextPreview].(string); ok {
		match.TextPreview = v
	}
	if v, ok := properties[propRecordKey].(string); ok {
		match.Key = v
	}

	// GraphQL decodes int properties into float64, which cannot hold
	// snowflake-sized ids exactly. The record key carries the same triple as
	// text, so ids are recovered from it; the numeric properties are only a
	// fallback for records missing the key.
	if kind, ownerID, entityID, err := semanticindex.ParseRecordKey(match.Key); err == nil {
		match.Kind = kind
		match.OwnerID = ownerID
		match.EntityID = entityID
	} else {
		if v, ok := properties[propDocType].(string); ok {
			match.Kind = semanticindex.Kind(v)
		}
		if v, ok := properties[propOwnerID].(float64); ok {
			match.OwnerID = int64(v)
		}
		if v, ok := properties[propEntityID].(float64); ok {
			match.EntityID = int64(v)
		}
	}
	if v, ok := properties[propExtraJSON].(string); ok && v != "" {
		var extra map[string]interface{}
		if err := json.Unmarshal([]byte(v), &extra); err != nil {
			log.Error(err, "failed to decode extra metadata", "record_key", match.Key)
		} else {
			match.Extra = extra
		}
	}

	return match
}
