package serve

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/TheApac/stringcheese/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "scan" | "scan_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// ContentItem is one buffer to scan. Binary data is sent base64 encoded with
// Base64 set.
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
	Base64  bool   `json:"base64,omitempty"`
}

// ScanPayload is the payload for "scan" requests
type ScanPayload = ContentItem

// ScanBatchPayload is the payload for "scan_batch" requests
type ScanBatchPayload struct {
	Items []ContentItem `json:"items"`
}

// ScanResult holds the results for one scanned item.
type ScanResult struct {
	Source  string         `json:"source"`
	Results []types.Result `json:"results"`
}

// BatchScanResult holds the results for a batch scan.
type BatchScanResult struct {
	Results []ScanResult `json:"results"`
	Total   int          `json:"total"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "scan" | "scan_batch" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version  string `json:"version"`
	Variants int    `json:"variants"`
	Views    int    `json:"views"`
}

// ScanItem runs engine over one item and tags every result with its source.
func ScanItem(ctx context.Context, engine *search.Engine, item ContentItem) (ScanResult, error) {
	content := []byte(item.Content)
	if item.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(item.Content)
		if err != nil {
			return ScanResult{}, fmt.Errorf("decoding %s content: %w", item.Source, err)
		}
		content = decoded
	}
	return ScanContent(ctx, engine, item.Source, content)
}

// ScanContent runs engine over raw bytes. Results is never nil so it encodes
// as an empty array.
func ScanContent(ctx context.Context, engine *search.Engine, source string, content []byte) (ScanResult, error) {
	results, err := engine.Collect(ctx, content)
	if err != nil {
		return ScanResult{}, err
	}
	for i := range results {
		results[i].Source = source
	}
	if results == nil {
		results = []types.Result{}
	}
	return ScanResult{Source: source, Results: results}, nil
}

// ScanBatch scans items in order.
func ScanBatch(ctx context.Context, engine *search.Engine, items []ContentItem) (BatchScanResult, error) {
	batch := BatchScanResult{Results: make([]ScanResult, 0, len(items))}
	for _, item := range items {
		result, err := ScanItem(ctx, engine, item)
		if err != nil {
			return BatchScanResult{}, err
		}
		batch.Results = append(batch.Results, result)
		batch.Total += len(result.Results)
	}
	return batch, nil
}
