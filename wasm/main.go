//go:build wasm

package main

import (
	"syscall/js"
)

func main() {
	js.Global().Set("StringcheeseNewScanner", js.FuncOf(newScanner))
	js.Global().Set("StringcheeseScan", js.FuncOf(scan))
	js.Global().Set("StringcheeseScanBatch", js.FuncOf(scanBatch))
	js.Global().Set("StringcheeseCloseScanner", js.FuncOf(closeScanner))
	js.Global().Set("StringcheeseEncodings", js.FuncOf(encodings))

	// Keep WASM running
	<-make(chan struct{})
}
