//go:build integration

package integration

import (
	"bufio"
	"encoding/json"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getProjectRoot returns the path to the module root
func getProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	// tests/integration/serve_test.go -> project root
	return filepath.Join(filepath.Dir(filename), "..", "..")
}

func buildBinary(t *testing.T) string {
	t.Helper()
	projectRoot := getProjectRoot()
	bin := filepath.Join(t.TempDir(), "stringcheese")

	buildCmd := exec.Command("go", "build", "-o", bin, "./cmd/stringcheese")
	buildCmd.Dir = projectRoot
	output, err := buildCmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(output))
	return bin
}

// startServe launches "stringcheese serve" and returns its stdin and a
// channel of stdout lines.
func startServe(t *testing.T, args ...string) (io.WriteCloser, <-chan string) {
	t.Helper()
	cmd := exec.Command(buildBinary(t), append([]string{"serve"}, args...)...)

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		stdin.Close()
		cmd.Process.Kill()
		cmd.Wait()
	})

	lines := make(chan string, 16)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdout)
		scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return stdin, lines
}

func nextLine(t *testing.T, lines <-chan string) map[string]any {
	t.Helper()
	select {
	case line, ok := <-lines:
		require.True(t, ok, "server closed stdout")
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		return resp
	case <-time.After(60 * time.Second):
		t.Fatal("timeout waiting for response")
		return nil
	}
}

func TestServeIntegration_ReadySignal(t *testing.T) {
	_, lines := startServe(t, "FLAG{", "--fast")

	ready := nextLine(t, lines)
	assert.True(t, ready["success"].(bool))
	assert.Equal(t, "ready", ready["type"])

	data := ready["data"].(map[string]any)
	assert.EqualValues(t, 270, data["variants"])
	assert.EqualValues(t, 29, data["views"])
}

func TestServeIntegration_ScanEncodedFlag(t *testing.T) {
	stdin, lines := startServe(t, "FLAG{", "--fast")
	nextLine(t, lines) // ready

	// base32 of FLAG{integration}
	req := `{"type":"scan","payload":{"source":"req","content":"junk IZGECR33NFXHIZLHOJQXI2LPNZ6Q==== junk"}}` + "\n"
	_, err := stdin.Write([]byte(req))
	require.NoError(t, err)

	resp := nextLine(t, lines)
	require.True(t, resp["success"].(bool), "error: %v", resp["error"])
	assert.Equal(t, "scan", resp["type"])

	results := resp["data"].(map[string]any)["results"].([]any)
	require.NotEmpty(t, results)
	first := results[0].(map[string]any)
	assert.Equal(t, "base32", first["encoding"])
	assert.Equal(t, "FLAG{integration}", first["flag"])
}

func TestServeIntegration_CloseExits(t *testing.T) {
	stdin, lines := startServe(t, "FLAG{")
	nextLine(t, lines) // ready

	_, err := stdin.Write([]byte(`{"type":"close","payload":{}}` + "\n"))
	require.NoError(t, err)

	select {
	case _, ok := <-lines:
		assert.False(t, ok, "expected no output after close")
	case <-time.After(30 * time.Second):
		t.Fatal("server did not exit after close")
	}
}
