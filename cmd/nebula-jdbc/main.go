package main

import (
	"fmt"
	"os"

	"github.com/ajitpratap0/nebula-jdbc/pkg/logger"

	// Import all table factories to register them
	_ "github.com/ajitpratap0/nebula-jdbc/pkg/connector"
)

var version = "0.1.0"

func main() {
	root := newRootCommand()
	err := root.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
