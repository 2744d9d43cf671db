//go:build dev || debug

package buildinfo

// Debug は `wails dev`（dev タグ）または -tags debug のビルドで true。
const Debug = true
