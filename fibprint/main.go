// fibprint prints the first Fibonacci numbers with their FizzBuzz-style labels.
// Install it with `go install github.com/toejough/fibfizz/fibprint@latest`. With no command it prints the labels
// of F(0) through F(79) on one line. `fibprint print --verbose` prints one `F(n) = value -> label` line per index,
// `fibprint primes` lists small primes, and `fibprint check` runs a self-check of the Fibonacci engine.
// Settings may come from fibprint.toml, FIBPRINT_* environment variables (a .env file is loaded first), or flags.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/toejough/fibfizz/fibprint/run"
)

// main is the entry point of the fibprint tool.
func main() {
	if os.Args == nil {
		return
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	err = run.Run(os.Args, os.Getenv, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements FileSystem using os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (*realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}
