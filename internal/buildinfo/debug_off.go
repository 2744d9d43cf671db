//go:build !dev && !debug

package buildinfo

// Debug はリリースビルドでは false。
const Debug = false
