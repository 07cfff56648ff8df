// Copyright (c) 2026 Dugout. All rights reserved.

// Command dugout runs the Dugout player development API and its
// operational tooling.
//
//	dugout serve              start the HTTP server
//	dugout migrate up         apply pending schema migrations
//	dugout migrate down -n 1  roll back one migration
//	dugout migrate version    print the current schema version
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
