package x64

import "errors"

var (
	// ErrInvalidPseudoRegisterUse is the panic cause when an encoding is requested for RIP.
	ErrInvalidPseudoRegisterUse = errors.New("invalid pseudo-register use")

	// ErrRegisterClassMismatch is the panic cause when a Register is narrowed to the class it
	// doesn't hold.
	ErrRegisterClassMismatch = errors.New("register class mismatch")

	// ErrUnknownRegister is returned by ParseRegister.
	ErrUnknownRegister = errors.New("unknown register")

	// ErrInvalidABI is returned when an ABI profile can't be resolved or its tables are inconsistent.
	ErrInvalidABI = errors.New("invalid ABI")
)
