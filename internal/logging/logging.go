package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const FileName = "bemine.log"

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Setup routes the standard logger to dir/bemine.log when debug is set and
// discards log output otherwise. The caller closes the returned file.
func Setup(debug bool, dir string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("---- session start (pid %d) ----", os.Getpid())
	return f, nil
}

// Fatalf reports a startup failure on stderr, copies it to the log file when
// one is open, and exits with status 1. It does not depend on Setup having
// routed the standard logger anywhere visible.
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stderr, msg)
	if w := log.Writer(); w != io.Discard && w != stderr {
		log.Print(msg)
	}
	exit(1)
}
