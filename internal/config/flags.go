package config

import (
	"flag"
	"os"
)

// parses CLI flags for the ingester
func ParseIngestFlags() Flags {
	args := os.Args[2:]

	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	path := fs.String("path", "./docs", "path to a document file or directory")
	clearFlag := fs.Bool("clear", false, "reset the index before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}

// returns default flags for ingestion
func DefaultIngestFlags() Flags {
	return Flags{Path: "./docs", Clear: false}
}
