package x64

import (
	"fmt"
	"strings"
)

var registersByName = func() map[string]Register {
	ret := make(map[string]Register, len(regNames)+RegCount)
	for i, name := range regNames {
		ret[name] = GeneralRegister(Reg(i))
	}
	for f := FReg(0); f < RegCount; f++ {
		ret[f.String()] = FloatRegister(f)
	}
	return ret
}()

// ParseRegister returns the register named as in Reg.String or FReg.String. The name is
// case-insensitive and may carry the AT&T "%" prefix.
func ParseRegister(name string) (Register, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "%"))
	if r, ok := registersByName[key]; ok {
		return r, nil
	}
	return Register{}, fmt.Errorf("%w: %q", ErrUnknownRegister, name)
}
