//go:build !amd64

package backend

const HostSupported = false
