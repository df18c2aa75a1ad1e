package weaviate

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/fault"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
)

// SDK encapsulates all Weaviate operations
type SDK struct {
	client *weaviate.Client
}

// NewSDK creates a new instance of SDK
func NewSDK(client *weaviate.Client) *SDK {
	return &SDK{
		client: client,
	}
}

// EnsureSchema creates a class schema with cosine distance if it does not
// exist yet. Calling it again for an existing class is a no-op, so it can run
// unconditionally at startup.
func (w *SDK) EnsureSchema(ctx context.Context, className string, properties []*models.Property) error {
	exists, err := w.classExists(ctx, className)
	if err != nil {
		return fmt.Errorf("failed to check if class exists: %v", err)
	}
	if exists {
		return nil
	}

	class := &models.Class{
		Class:      className,
		Properties: properties,
		Vectorizer: "none",
		VectorIndexConfig: map[string]interface{}{
			"distance": "cosine",
		},
	}

	err = w.client.Schema().ClassCreator().WithClass(class).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create Weaviate class: %v", err)
	}

	return nil
}

// classExists checks if a class exists in the schema
func (w *SDK) classExists(ctx context.Context, className string) (bool, error) {
	schema, err := w.client.Schema().Getter().Do(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get schema: %v", err)
	}

	for _, class := range schema.Classes {
		if class.Class == className {
			return true, nil
		}
	}

	return false, nil
}

// DeleteSchema deletes a class schema from Weaviate
func (w *SDK) DeleteSchema(ctx context.Context, className string) error {
	err := w.client.Schema().ClassDeleter().WithClassName(className).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete Weaviate class: %v", err)
	}

	return nil
}

// VectorObject represents a single object with its id, vector and properties
type VectorObject struct {
	ID         string
	Vector     []float32
	Properties map[string]interface{}
}

// UpsertVector writes a vector object under its caller-supplied id. Batch
// import uses PUT semantics, so an existing id is overwritten
// (last-write-wins) instead of duplicated.
func (w *SDK) UpsertVector(ctx context.Context, className string, object VectorObject) error {
	obj := &models.Object{
		ID:         strfmt.UUID(object.ID),
		Class:      className,
		Properties: object.Properties,
		Vector:     object.Vector,
	}

	resp, err := w.client.Batch().ObjectsBatcher().WithObjects(obj).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert vector: %v", err)
	}
	if len(resp) == 0 {
		return fmt.Errorf("upsert returned no results")
	}
	for _, r := range resp {
		if r.Result != nil && r.Result.Errors != nil && len(r.Result.Errors.Error) > 0 {
			return fmt.Errorf("failed to upsert vector: %s", r.Result.Errors.Error[0].Message)
		}
	}

	return nil
}

// QueryConfig represents configuration for vector similarity search
type QueryConfig struct {
	Fields []string              // Fields to return in the result
	Limit  int                   // Maximum number of results
	Where  *filters.WhereBuilder // Optional metadata filter
}

const DefaultQueryLimit = 20

// QueryResult represents a single result from vector similarity search
type QueryResult struct {
	ID         string
	Distance   float64 // Cosine distance; lower is more similar
	Properties map[string]interface{}
}

// QueryVectors performs vector similarity search in a class
func (w *SDK) QueryVectors(ctx context.Context, className string, vector []float32, config QueryConfig) ([]QueryResult, error) {
	fields := make([]graphql.Field, len(config.Fields))
	for i, field := range config.Fields {
		fields[i] = graphql.Field{Name: field}
	}
	// Add _additional field for metadata
	fields = append(fields, graphql.Field{Name: "_additional { id distance }"})

	nearVector := w.client.GraphQL().NearVectorArgBuilder().
		WithVector(vector)

	if config.Limit <= 0 {
		config.Limit = DefaultQueryLimit
	}

	query := w.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithNearVector(nearVector).
		WithLimit(config.Limit)

	if config.Where != nil {
		query = query.WithWhere(config.Where)
	}

	result, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query vectors: %v", err)
	}

	return parseResults(result, className), nil
}

// ListObjects returns objects matching a metadata filter without vector
// ranking, up to the given limit. Used for filtered counting.
func (w *SDK) ListObjects(ctx context.Context, className string, where *filters.WhereBuilder, limit int, fieldNames []string) ([]QueryResult, error) {
	fields := make([]graphql.Field, len(fieldNames))
	for i, field := range fieldNames {
		fields[i] = graphql.Field{Name: field}
	}
	fields = append(fields, graphql.Field{Name: "_additional { id }"})

	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	query := w.client.GraphQL().Get().
		WithClassName(className).
		WithFields(fields...).
		WithLimit(limit)

	if where != nil {
		query = query.WithWhere(where)
	}

	result, err := query.Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %v", err)
	}

	return parseResults(result, className), nil
}

// DeleteVector deletes a vector object from a class by its id. Deleting a
// nonexistent id is a no-op, not an error.
func (w *SDK) DeleteVector(ctx context.Context, className string, id string) error {
	err := w.client.Data().Deleter().
		WithClassName(className).
		WithID(id).
		Do(ctx)

	if err != nil {
		var clientErr *fault.WeaviateClientError
		if errors.As(err, &clientErr) && clientErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete vector: %v", err)
	}

	return nil
}

func parseResults(result *models.GraphQLResponse, className string) []QueryResult {
	var queryResults []QueryResult
	if data, ok := result.Data["Get"].(map[string]interface{}); ok {
		if objects, ok := data[className].([]interface{}); ok {
			for _, obj := range objects {
				objMap, ok := obj.(map[string]interface{})
				if !ok {
					continue
				}

				var id string
				var distance float64
				if additional, ok := objMap["_additional"].(map[string]interface{}); ok {
					id, _ = additional["id"].(string)
					distance, _ = additional["distance"].(float64)
				}

				// Create properties map excluding _additional
				properties := make(map[string]interface{})
				for k, v := range objMap {
					if k != "_additional" {
						properties[k] = v
					}
				}

				queryResults = append(queryResults, QueryResult{
					ID:         id,
					Distance:   distance,
					Properties: properties,
				})
			}
		}
	}

	return queryResults
}
