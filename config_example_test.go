package backend_test

import (
	"fmt"
	"log"

	"github.com/dorajit/backend"
	"github.com/dorajit/backend/x64"
)

// This shows how the argument registers of a cross-compilation target are resolved once.
func Example_targetConfig_Registers() {
	abi, err := backend.NewTargetConfig().WithOS("windows").Registers()
	if err != nil {
		log.Panicln(err)
	}

	fmt.Println(abi.Profile(), abi.IntParams(), abi.FloatParams())

	r, _ := abi.IntParam(2)
	bits, rex := r.Field(x64.ModRMFieldRM)
	fmt.Printf("%s: rm=%03b rex=%#x\n", r, bits, rex)

	// Output:
	// windows [rcx rdx r8 r9] [xmm0 xmm1 xmm2 xmm3]
	// r8: rm=000 rex=0x41
}
