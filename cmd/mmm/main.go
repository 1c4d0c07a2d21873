// Command mmm runs the lane-parallel Montgomery multiplication kernel from the command line.
//
// Operands are given in hexadecimal. Kernel parameters come from flags or from MMM_* environment variables,
// e.g. MMM_WORD_BITS=16 mmm mul b13e117a2de93bd1 383a338e3f19a39b c1257b23e38a13a3.
package main

import (
	"os"
)

func main() {
	// On failure Cobra prints the usage message and error string, so we only
	// need to exit with a non-0 status
	if newRootCmd().Execute() != nil {
		os.Exit(1)
	}
}
