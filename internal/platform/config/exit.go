package config

import (
	"fmt"
	"log"
	"os"
)

// Exitf writes a formatted error message to stderr and exits with code 1.
// The active log prefix is kept so fatal lines match the binary's other output.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, log.Prefix()+format+"\n", args...)
	os.Exit(1)
}
