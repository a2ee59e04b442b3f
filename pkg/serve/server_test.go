package serve

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *search.Engine {
	t.Helper()
	cfg := search.DefaultConfig()
	cfg.Fast = true
	engine, err := search.New([]byte("FLAG{"), cfg)
	require.NoError(t, err)
	return engine
}

func runServer(t *testing.T, input string) []Response {
	t.Helper()
	out := &bytes.Buffer{}
	srv := NewServer(newEngine(t), strings.NewReader(input), out)
	require.NoError(t, srv.Run(context.Background()))

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		var resp Response
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServer_SendsReadyOnStart(t *testing.T) {
	out := &bytes.Buffer{}
	srv := NewServer(newEngine(t), strings.NewReader(""), out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately to exit after ready

	_ = srv.Run(ctx)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ready", resp.Type)

	var ready ReadyData
	require.NoError(t, json.Unmarshal(resp.Data, &ready))
	assert.Equal(t, Version, ready.Version)
	assert.Equal(t, 270, ready.Variants)
	assert.Equal(t, 29, ready.Views)
}

func TestServer_Scan(t *testing.T) {
	responses := runServer(t, `{"type":"scan","payload":{"content":"xx RkxBR3tzZXJ2ZX0= xx","source":"test"}}`+"\n")
	require.Len(t, responses, 2) // ready + scan response

	resp := responses[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "scan", resp.Type)

	var result ScanResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, "test", result.Source)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "FLAG{serve}", result.Results[0].Flag)
	assert.Equal(t, "base64", result.Results[0].Encoding)
	assert.Equal(t, "test", result.Results[0].Source)
}

func TestServer_ScanBase64Content(t *testing.T) {
	binary := append([]byte{0x00, 0xff}, []byte("FLAG{bin}")...)
	payload := `{"type":"scan","payload":{"content":"` + base64.StdEncoding.EncodeToString(binary) + `","source":"blob","base64":true}}` + "\n"

	responses := runServer(t, payload)
	require.Len(t, responses, 2)

	var result ScanResult
	require.NoError(t, json.Unmarshal(responses[1].Data, &result))
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "FLAG{bin}", result.Results[0].Flag)
	assert.Equal(t, 2, result.Results[0].Offset)
}

func TestServer_ScanBadBase64(t *testing.T) {
	responses := runServer(t, `{"type":"scan","payload":{"content":"!!!","source":"blob","base64":true}}`+"\n")
	require.Len(t, responses, 2)

	assert.False(t, responses[1].Success)
	assert.Equal(t, "scan", responses[1].Type)
	assert.Contains(t, responses[1].Error, "blob")
}

func TestServer_ScanNoResults(t *testing.T) {
	responses := runServer(t, `{"type":"scan","payload":{"content":"plain","source":"x"}}`+"\n")
	require.Len(t, responses, 2)

	// results is an empty array, never null
	assert.Contains(t, string(responses[1].Data), `"results":[]`)
}

func TestServer_GracefulShutdownOnContext(t *testing.T) {
	pr, pw := io.Pipe()
	out := &bytes.Buffer{}

	srv := NewServer(newEngine(t), pr, out)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error)
	go func() {
		done <- srv.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	cancel()
	pw.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_ScanBatch(t *testing.T) {
	request := `{"type":"scan_batch","payload":{"items":[{"source":"s1","content":"test1"},{"source":"s2","content":"FLAG{two}"},{"source":"s3","content":"SYNT{guerr}"}]}}` + "\n"

	responses := runServer(t, request)
	require.Len(t, responses, 2)

	resp := responses[1]
	assert.True(t, resp.Success)
	assert.Equal(t, "scan_batch", resp.Type)

	var batch BatchScanResult
	require.NoError(t, json.Unmarshal(resp.Data, &batch))
	require.Len(t, batch.Results, 3)
	assert.Equal(t, 2, batch.Total)
	assert.Empty(t, batch.Results[0].Results)
	assert.Equal(t, "FLAG{three}", batch.Results[2].Results[0].Flag)
}

// The response to a request must not be lost when EOF is read before the
// main loop picks the request up.
func TestServer_ScanBatch_PendingAtEOF(t *testing.T) {
	request := `{"type":"scan_batch","payload":{"items":[{"source":"s1","content":"test1"},{"source":"s2","content":"FLAG{x}"}]}}` + "\n"

	for i := range 10 {
		responses := runServer(t, request)
		require.Len(t, responses, 2, "iteration %d", i)
		assert.True(t, responses[1].Success, "iteration %d", i)
		assert.Equal(t, "scan_batch", responses[1].Type, "iteration %d", i)
	}
}

func TestServer_CloseCommand(t *testing.T) {
	responses := runServer(t, `{"type":"close","payload":{}}`+"\n"+`{"type":"scan","payload":{"content":"FLAG{late}"}}`+"\n")
	require.Len(t, responses, 1) // Only ready signal
}

func TestServer_UnknownCommand(t *testing.T) {
	responses := runServer(t, `{"type":"invalid","payload":{}}`+"\n")
	require.Len(t, responses, 2)

	assert.False(t, responses[1].Success)
	assert.Contains(t, responses[1].Error, "unknown request type")
}

func TestServer_MalformedJSON(t *testing.T) {
	responses := runServer(t, `{invalid json}`+"\n")
	require.GreaterOrEqual(t, len(responses), 2)

	assert.False(t, responses[1].Success)
	assert.Equal(t, "decode", responses[1].Type)
}
