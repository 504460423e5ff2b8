package backend

import (
	"fmt"
	"runtime"

	"github.com/dorajit/backend/x64"
)

// TargetConfig selects the machine target the code generator emits for, with the default
// implementation as NewTargetConfig.
//
// The calling convention is resolved once, through Registers, and the result is meant to be
// passed into backend construction rather than looked up per call.
//
// Note: TargetConfig is immutable. Each WithXXX function returns a new instance including the
// corresponding change.
type TargetConfig interface {
	// WithOS sets the target operating system as a runtime.GOOS value. Defaults to the host.
	//
	// The OS only decides the calling convention when WithABI wasn't called.
	WithOS(goos string) TargetConfig

	// WithABI forces the calling convention regardless of the target OS, for example to call
	// Windows code from a cross-compiled backend.
	WithABI(profile x64.ABIProfile) TargetConfig

	// OS returns the target operating system.
	OS() string

	// ABIProfile returns the calling convention of the target.
	ABIProfile() x64.ABIProfile

	// Registers returns the validated register tables of ABIProfile.
	Registers() (*x64.ABI, error)
}

// NewTargetConfig returns a TargetConfig for the host operating system.
func NewTargetConfig() TargetConfig {
	return &targetConfig{goos: runtime.GOOS}
}

type targetConfig struct {
	goos string
	// abi is x64.ABIInvalid unless WithABI was called.
	abi x64.ABIProfile
}

// clone makes a deep copy of this target config.
func (c *targetConfig) clone() *targetConfig {
	ret := *c
	return &ret
}

// WithOS implements TargetConfig.WithOS
func (c *targetConfig) WithOS(goos string) TargetConfig {
	ret := c.clone()
	ret.goos = goos
	return ret
}

// WithABI implements TargetConfig.WithABI
func (c *targetConfig) WithABI(profile x64.ABIProfile) TargetConfig {
	ret := c.clone()
	ret.abi = profile
	return ret
}

// OS implements TargetConfig.OS
func (c *targetConfig) OS() string {
	return c.goos
}

// ABIProfile implements TargetConfig.ABIProfile
func (c *targetConfig) ABIProfile() x64.ABIProfile {
	if c.abi != x64.ABIInvalid {
		return c.abi
	}
	return x64.ABIProfileForOS(c.goos)
}

// Registers implements TargetConfig.Registers
func (c *targetConfig) Registers() (*x64.ABI, error) {
	abi, err := x64.ABIFor(c.ABIProfile())
	if err != nil {
		return nil, err
	}
	if err = abi.Validate(); err != nil {
		return nil, fmt.Errorf("target %s/amd64: %w", c.goos, err)
	}
	return abi, nil
}
