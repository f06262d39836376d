// Package debug provides optional file-based debug logging.
//
// When the GUIDE_DEBUG environment variable is set to a file path, debug
// records are appended to that file as JSON lines. Otherwise logging is a
// no-op. Init can be called explicitly (the CLI does so for --debug-log).
package debug
