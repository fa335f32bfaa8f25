package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"
)

// QdrantIndex is a minimal REST client to a Qdrant collection configured
// for cosine distance. Qdrant itself leaves equal-score ordering
// unspecified, so each point carries an insertion sequence number in its
// payload and results are re-sorted client-side to honor the tie-break
// contract.
type QdrantIndex struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
	seq        atomic.Uint64
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

func NewQdrantIndex(ctx context.Context, cfg QdrantConfig) (*QdrantIndex, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	idx := &QdrantIndex{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
	}

	// sequence numbers double as point ids; seed from the clock so a
	// restarted process doesn't overwrite points from a previous run
	idx.seq.Store(uint64(time.Now().UnixNano()))

	if err := idx.ensureCollection(ctx); err != nil {
		return nil, err
	}

	return idx, nil
}

func (q *QdrantIndex) Dimension() int {
	return q.dimension
}

// creates the collection if missing; Qdrant returns 200 for an existing
// collection with the same schema
func (q *QdrantIndex) ensureCollection(ctx context.Context) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     q.dimension,
			"distance": "Cosine",
		},
	}

	return q.putJSON(ctx, fmt.Sprintf("%s/collections/%s", q.url, q.collection), body)
}

func (q *QdrantIndex) Insert(ctx context.Context, vector []float32, payload Payload) error {
	if err := checkDimension(vector, q.dimension); err != nil {
		return err
	}

	seq := q.seq.Add(1)

	body := map[string]any{
		"points": []map[string]any{
			{
				"id":     seq,
				"vector": vector,
				"payload": map[string]any{
					"document_id": payload.DocumentID,
					"chunk_id":    payload.ChunkID,
					"page":        payload.Page,
					"seq":         seq,
				},
			},
		},
	}

	return q.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, q.collection), body)
}

func (q *QdrantIndex) Search(ctx context.Context, vector []float32, topK int, filter *Filter) ([]Result, error) {
	if err := checkDimension(vector, q.dimension); err != nil {
		return nil, err
	}

	if topK <= 0 {
		return []Result{}, nil
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}

	if filter != nil && filter.DocumentID != "" {
		req["filter"] = map[string]any{
			"must": []map[string]any{
				{"key": "document_id", "match": map[string]any{"value": filter.DocumentID}},
			},
		}
	}

	var resp struct {
		Result []struct {
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	if err := q.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", q.url, q.collection), req, &resp); err != nil {
		return nil, err
	}

	type scored struct {
		result Result
		seq    uint64
	}

	candidates := make([]scored, 0, len(resp.Result))

	for _, r := range resp.Result {
		var c scored
		c.result.Score = r.Score

		if v, ok := r.Payload["document_id"].(string); ok {
			c.result.Payload.DocumentID = v
		}
		if v, ok := r.Payload["chunk_id"].(string); ok {
			c.result.Payload.ChunkID = v
		}
		if v, ok := r.Payload["page"].(float64); ok {
			c.result.Payload.Page = int(v)
		}
		if v, ok := r.Payload["seq"].(float64); ok {
			c.seq = uint64(v)
		}

		candidates = append(candidates, c)
	}

	// re-apply the contract ordering on the returned page
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].result.Score != candidates[j].result.Score {
			return candidates[i].result.Score > candidates[j].result.Score
		}

		return candidates[i].seq < candidates[j].seq
	})

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, c.result)
	}

	return results, nil
}

func (q *QdrantIndex) DeleteDocument(ctx context.Context, documentID string) error {
	body := map[string]any{
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "document_id", "match": map[string]any{"value": documentID}},
			},
		},
	}

	return q.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/delete?wait=true", q.url, q.collection), body, nil)
}

func (q *QdrantIndex) Reset(ctx context.Context) error {
	// drop and recreate; a missing collection is not an error
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/collections/%s", q.url, q.collection), nil)
	if err != nil {
		return err
	}

	q.auth(req)

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant DELETE collection failed: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("qdrant DELETE collection failed: %s", resp.Status)
	}

	return q.ensureCollection(ctx)
}

func (q *QdrantIndex) auth(req *http.Request) {
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
}

func (q *QdrantIndex) putJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	q.auth(req)

	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}

	return nil
}

func (q *QdrantIndex) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	q.auth(req)

	resp, err := q.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	return nil
}
