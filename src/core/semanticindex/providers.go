package semanticindex

import "context"

// Embedder converts text into a fixed-dimension vector. Implementations must
// return an error for any degraded embedding instead of a zero-filled vector.
type Embedder interface {
	// Embed generates an embedding for the given text
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimension returns the vector dimension every embedding must have
	Dimension() int
}

// VectorIndex defines operations for the external nearest-neighbor store
type VectorIndex interface {
	// Upsert writes a record; an existing key is overwritten (last-write-wins)
	Upsert(ctx context.Context, record Record) error
	// Query performs cosine similarity search constrained by the filter,
	// returning at most topK matches ordered by descending score
	Query(ctx context.Context, vector []float32, filter Filter, topK int) ([]Match, error)
	// Delete removes records by key; unknown keys are ignored
	Delete(ctx context.Context, keys []string) error
	// Count returns the number of records matching the filter, scanning at
	// most limit records
	Count(ctx context.Context, filter Filter, limit int) (int, error)
}
