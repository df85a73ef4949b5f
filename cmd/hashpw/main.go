// Package main prints a bcrypt hash of the password read from stdin.
package main

import (
	"flag"
	"log"
	"os"

	hashpwcmd "github.com/louisbranch/toolatlas/internal/cmd/hashpw"
	"github.com/louisbranch/toolatlas/internal/platform/config"
)

func main() {
	log.SetPrefix("[HASHPW] ")
	cfg, err := hashpwcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := hashpwcmd.Run(cfg, os.Stdin, os.Stdout); err != nil {
		config.Exitf("hash password: %v", err)
	}
}
