package serve

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ScanUnmarshal(t *testing.T) {
	input := `{"type":"scan","payload":{"content":"RkxBR3","source":"test","base64":false}}`

	var req Request
	require.NoError(t, json.Unmarshal([]byte(input), &req))
	assert.Equal(t, "scan", req.Type)

	var payload ScanPayload
	require.NoError(t, json.Unmarshal(req.Payload, &payload))
	assert.Equal(t, "RkxBR3", payload.Content)
	assert.Equal(t, "test", payload.Source)
	assert.False(t, payload.Base64)
}

func TestResponse_Marshal(t *testing.T) {
	data, err := json.Marshal(Response{Success: true, Type: "ready"})
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
	assert.NotContains(t, string(data), `"error"`)
}

func TestScanBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ScanBatch(ctx, newEngine(t), []ContentItem{{Source: "a", Content: "FLAG{x}"}})
	assert.ErrorIs(t, err, context.Canceled)
}
