//go:build amd64

package backend

// HostSupported is true when the process itself runs on x86-64, so generated code can be
// executed in-process rather than only cross-compiled.
const HostSupported = true
