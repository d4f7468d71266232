// Command spvdis prints a SPIR-V binary as assembly text.
//
// Usage:
//
//	spvdis <file.spv>
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/spvmsl/spirv"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: spvdis <file.spv>")
		os.Exit(2)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	words, err := spirv.WordsFromBytes(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := spirv.Validate(words); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(spirv.Disassemble(words))
}
