package semanticindex

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"resumatch/src/infrastructure/log"
)

const (
	// previewLimit bounds the text preview stored with each record
	previewLimit = 200

	// embedCharBudget bounds how much text is sent to the embedding provider.
	// Longer documents are cut at a natural boundary by the text splitter.
	embedCharBudget = 8000

	// statsScanLimit caps the filtered scan behind Stats. Owners with more
	// documents than this get an approximate count.
	statsScanLimit = 1000

	defaultFindTopK   = 5
	defaultMatchTopK  = 3
	defaultSearchTopK = 10
)

// reservedKeys are metadata keys the service owns. Caller-supplied extra
// metadata never overrides them.
var reservedKeys = map[string]struct{}{
	"type":         {},
	"user_id":      {},
	"resume_id":    {},
	"job_id":       {},
	"text_preview": {},
	"record_key":   {},
}

// Service is the single choke point through which resumes and jobs become
// searchable and through which retrieval is scoped to owner and document
// type. It holds no state of its own; all state lives in the vector index.
type Service struct {
	embedder Embedder
	index    VectorIndex
}

// NewService creates the document embedding service. Missing dependencies are
// configuration errors and fail here rather than per request.
func NewService(embedder Embedder, index VectorIndex) (*Service, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if index == nil {
		return nil, fmt.Errorf("vector index is required")
	}
	if embedder.Dimension() <= 0 {
		return nil, fmt.Errorf("embedder reports non-positive dimension %d", embedder.Dimension())
	}

	return &Service{
		embedder: embedder,
		index:    index,
	}, nil
}

// StoreResume indexes a resume for its owner. Returns false when the text is
// empty, the embedding degraded, or the index write failed; it never
// propagates an error so a failed indexing cannot abort the caller's save.
func (s *Service) StoreResume(ctx context.Context, resumeID, ownerID int64, text string, extra map[string]interface{}) bool {
	return s.store(ctx, KindResume, resumeID, ownerID, text, extra)
}

// StoreJob indexes a job description for its owner
func (s *Service) StoreJob(ctx context.Context, jobID, ownerID int64, text string, extra map[string]interface{}) bool {
	return s.store(ctx, KindJob, jobID, ownerID, text, extra)
}

func (s *Service) store(ctx context.Context, kind Kind, entityID, ownerID int64, text string, extra map[string]interface{}) bool {
	key := RecordKey(kind, ownerID, entityID)

	if strings.TrimSpace(text) == "" {
		log.Info("skipping embedding upsert: document text is empty",
			"key", key, "type", kind, "entity_id", entityID, "owner_id", ownerID)
		return false
	}

	embedding, err := s.embedder.Embed(ctx, truncateForEmbedding(text))
	if err != nil {
		log.Error(err, "skipping embedding upsert: embedding generation failed",
			"key", key, "type", kind, "entity_id", entityID, "owner_id", ownerID)
		return false
	}
	if isZeroVector(embedding) {
		log.Info("skipping embedding upsert: embedding is all zeros",
			"key", key, "type", kind, "entity_id", entityID, "owner_id", ownerID)
		return false
	}

	record := Record{
		Key:         key,
		Vector:      embedding,
		Kind:        kind,
		OwnerID:     ownerID,
		EntityID:    entityID,
		TextPreview: preview(text),
		Extra:       sanitizeExtra(extra),
	}

	if err := s.index.Upsert(ctx, record); err != nil {
		log.Error(err, "failed to upsert document embedding",
			"key", key, "type", kind, "entity_id", entityID, "owner_id", ownerID)
		return false
	}

	return true
}

// FindSimilar returns up to topK documents of the given kind ranked by
// similarity to the query text. An owner id of zero disables owner scoping.
// Failures degrade to an empty result, never an error.
func (s *Service) FindSimilar(ctx context.Context, kind Kind, queryText string, ownerID int64, topK int) []Match {
	if topK <= 0 {
		topK = defaultFindTopK
	}
	return s.findByFilter(ctx, queryText, Filter{Kind: kind, OwnerID: ownerID}, topK)
}

// FindMatchingResumes ranks the owner's resumes against a job description.
// The owner filter is mandatory here: matching never crosses users.
func (s *Service) FindMatchingResumes(ctx context.Context, jobText string, ownerID int64, topK int) []ResumeMatch {
	if topK <= 0 {
		topK = defaultMatchTopK
	}

	hits := s.findByFilter(ctx, jobText, Filter{Kind: KindResume, OwnerID: ownerID}, topK)

	matches := make([]ResumeMatch, 0, len(hits))
	for _, hit := range hits {
		matches = append(matches, ResumeMatch{
			ResumeID:        hit.EntityID,
			SimilarityScore: hit.Score,
			TextPreview:     hit.TextPreview,
		})
	}
	return matches
}

// Search is the user-facing query operation blending document types.
// searchType is "resume", "job" or "all"; anything else falls back to "all".
func (s *Service) Search(ctx context.Context, query string, searchType string, ownerID int64, topK int) []Match {
	if topK <= 0 {
		topK = defaultSearchTopK
	}

	var kind Kind
	switch searchType {
	case string(KindResume):
		kind = KindResume
	case string(KindJob):
		kind = KindJob
	}

	return s.findByFilter(ctx, query, Filter{Kind: kind, OwnerID: ownerID}, topK)
}

func (s *Service) findByFilter(ctx context.Context, queryText string, filter Filter, topK int) []Match {
	if strings.TrimSpace(queryText) == "" {
		return []Match{}
	}

	embedding, err := s.embedder.Embed(ctx, truncateForEmbedding(queryText))
	if err != nil {
		log.Error(err, "similarity search degraded to empty result: embedding failed",
			"type", filter.Kind, "owner_id", filter.OwnerID)
		return []Match{}
	}
	if isZeroVector(embedding) {
		log.Info("similarity search degraded to empty result: query embedding is all zeros",
			"type", filter.Kind, "owner_id", filter.OwnerID)
		return []Match{}
	}

	matches, err := s.index.Query(ctx, embedding, filter, topK)
	if err != nil {
		log.Error(err, "similarity search degraded to empty result: index query failed",
			"type", filter.Kind, "owner_id", filter.OwnerID)
		return []Match{}
	}

	return matches
}

// DeleteResume removes a resume's embedding. Deleting an unindexed resume is
// a successful no-op.
func (s *Service) DeleteResume(ctx context.Context, resumeID, ownerID int64) bool {
	return s.delete(ctx, KindResume, resumeID, ownerID)
}

// DeleteJob removes a job's embedding
func (s *Service) DeleteJob(ctx context.Context, jobID, ownerID int64) bool {
	return s.delete(ctx, KindJob, jobID, ownerID)
}

func (s *Service) delete(ctx context.Context, kind Kind, entityID, ownerID int64) bool {
	key := RecordKey(kind, ownerID, entityID)

	if err := s.index.Delete(ctx, []string{key}); err != nil {
		log.Error(err, "failed to delete document embedding",
			"key", key, "type", kind, "entity_id", entityID, "owner_id", ownerID)
		return false
	}
	return true
}

// Stats counts the owner's indexed documents per type. Counts are capped at
// the stats scan limit; errors degrade to zero counts.
func (s *Service) Stats(ctx context.Context, ownerID int64) Stats {
	var stats Stats

	resumes, err := s.index.Count(ctx, Filter{Kind: KindResume, OwnerID: ownerID}, statsScanLimit)
	if err != nil {
		log.Error(err, "failed to count resume embeddings", "owner_id", ownerID)
	} else {
		stats.Resumes = resumes
	}

	jobs, err := s.index.Count(ctx, Filter{Kind: KindJob, OwnerID: ownerID}, statsScanLimit)
	if err != nil {
		log.Error(err, "failed to count job embeddings", "owner_id", ownerID)
	} else {
		stats.Jobs = jobs
	}

	return stats
}

// sanitizeExtra copies caller metadata, dropping reserved keys
func sanitizeExtra(extra map[string]interface{}) map[string]interface{} {
	if len(extra) == 0 {
		return nil
	}

	cleaned := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		if _, reserved := reservedKeys[k]; reserved {
			log.Debug("dropping reserved metadata key from extra metadata", "key", k)
			continue
		}
		cleaned[k] = v
	}
	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit])
}

// truncateForEmbedding keeps text within the provider budget, cutting at a
// natural boundary when possible
func truncateForEmbedding(text string) string {
	if len(text) <= embedCharBudget {
		return text
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(embedCharBudget),
		textsplitter.WithChunkOverlap(0),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil || len(chunks) == 0 {
		runes := []rune(text)
		if len(runes) <= embedCharBudget {
			return text
		}
		return string(runes[:embedCharBudget])
	}
	return chunks[0]
}

func isZeroVector(vector []float32) bool {
	for _, v := range vector {
		if math.Abs(float64(v)) > 1e-12 {
			return false
		}
	}
	return true
}
