package main

import (
	"os"

	"wp-starter/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute(), which parses the command line and runs the generator
// or one of its subcommands.
//
// wp-starter scaffolds a WordPress project:
//   - Reads stored author and starter-theme defaults from ~/.wp-starter/config.json
//   - Looks up the latest WordPress, Bootstrap and Font Awesome tags on GitHub, falling back
//     to pinned versions when the lookup fails
//   - Asks for the theme, site, admin and database values
//   - Runs a fixed list of steps: downloads, file moves, text patches, templates, database
//     creation and the npm/grunt/wp tools
//
// Error handling strategy:
//   - Every step decides whether its failure stops the run or is only reported
//   - A fatal failure exits with a non-zero status and leaves the partial output in place
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
