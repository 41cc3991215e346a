// Package browser binds platform.Window to the real browser tab through
// syscall/js. It is only built for GOOS=js GOARCH=wasm.
package browser
