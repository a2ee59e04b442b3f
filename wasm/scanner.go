//go:build wasm

package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/TheApac/stringcheese/pkg/config"
	"github.com/TheApac/stringcheese/pkg/search"
	"github.com/TheApac/stringcheese/pkg/serve"
	"github.com/TheApac/stringcheese/pkg/variant"
)

var (
	engines   = make(map[int]*search.Engine)
	enginesMu sync.RWMutex
	nextID    int
)

// newScanner builds an engine for a pattern. The optional options argument is
// a JSON object with the keys of a scan profile, e.g. {"fast": true}.
// JS: StringcheeseNewScanner(pattern, optionsJSON) -> {handle} or {error}
func newScanner(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "pattern argument required"}
	}
	pattern := args[0].String()

	options := ""
	if len(args) > 1 && args[1].Type() == js.TypeString {
		options = args[1].String()
	}

	// JSON is valid YAML, so profiles and options share one parser.
	cfg, err := config.Parse([]byte(options))
	if err != nil {
		return map[string]interface{}{"error": "invalid options: " + err.Error()}
	}
	sc, err := cfg.Search()
	if err != nil {
		return map[string]interface{}{"error": "invalid options: " + err.Error()}
	}
	// no worker pool in a single-threaded runtime
	sc.Workers = 1

	engine, err := search.New([]byte(pattern), sc)
	if err != nil {
		return map[string]interface{}{"error": "failed to create scanner: " + err.Error()}
	}

	enginesMu.Lock()
	id := nextID
	nextID++
	engines[id] = engine
	enginesMu.Unlock()

	return map[string]interface{}{"handle": id}
}

func lookup(handle int) (*search.Engine, bool) {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	engine, ok := engines[handle]
	return engine, ok
}

// contentBytes accepts a string or a Uint8Array.
func contentBytes(v js.Value) []byte {
	if v.Type() == js.TypeString {
		return []byte(v.String())
	}
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

// scan scans a single string or byte array.
// JS: StringcheeseScan(handle, content, source) -> JSON results or {error}
func scan(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and content arguments required"}
	}

	engine, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}

	source := ""
	if len(args) > 2 {
		source = args[2].String()
	}

	result, err := serve.ScanContent(context.Background(), engine, source, contentBytes(args[1]))
	if err != nil {
		return map[string]interface{}{"error": "scan failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}
	return string(jsonBytes)
}

// scanBatch scans multiple content items.
// JS: StringcheeseScanBatch(handle, itemsJSON) -> JSON results or {error}
func scanBatch(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and itemsJSON arguments required"}
	}

	engine, ok := lookup(args[0].Int())
	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}

	var items []serve.ContentItem
	if err := json.Unmarshal([]byte(args[1].String()), &items); err != nil {
		return map[string]interface{}{"error": "failed to parse items JSON: " + err.Error()}
	}

	batch, err := serve.ScanBatch(context.Background(), engine, items)
	if err != nil {
		return map[string]interface{}{"error": "batch scan failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(batch)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal results: " + err.Error()}
	}
	return string(jsonBytes)
}

// closeScanner releases a scanner handle.
// JS: StringcheeseCloseScanner(handle)
func closeScanner(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	enginesMu.Lock()
	_, ok := engines[handle]
	delete(engines, handle)
	enginesMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid scanner handle"}
	}
	return nil
}

// encodings lists the searched form of a pattern under every encoding.
// JS: StringcheeseEncodings(pattern) -> JSON [{label, search_hex}]
func encodings(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "pattern argument required"}
	}

	type entry struct {
		Label  string `json:"label"`
		Search string `json:"search_hex"`
	}
	var entries []entry
	for _, v := range variant.Build([]byte(args[0].String())) {
		entries = append(entries, entry{Label: v.Label(), Search: hex.EncodeToString(v.Pattern)})
	}

	jsonBytes, err := json.Marshal(entries)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal encodings: " + err.Error()}
	}
	return string(jsonBytes)
}
