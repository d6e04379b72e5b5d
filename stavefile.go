//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/msclfmt"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"p":   Test.Property,
	"g":   Test.Golden,
	"l":   Lint.Default,
	"c":   Check,
	"fmt": Lint.Fmt,
}

type (
	Test st.Namespace
	Lint st.Namespace
	CI   st.Namespace
)

// Build compiles bin/msclfmt with version info, unless it is up to date.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building msclfmt...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/msclfmt")
}

// Install installs msclfmt to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/msclfmt")
}

// Check runs gofmt, the linters and the tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Coverage writes coverage.html and prints the per-function summary.
func Coverage() error {
	st.Deps(Test.Default)
	if err := sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html"); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Default runs all tests through gotestsum with the race detector.
// Set TEST_VERBOSE=1 for standard-verbose output.
func (Test) Default() error {
	jobs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	format := "pkgname-and-test-fails"
	if os.Getenv("TEST_VERBOSE") != "" {
		format = "standard-verbose"
	}
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-race", "-p", jobs, "-parallel", jobs,
		"-coverprofile=coverage.out", "-covermode=atomic",
		"./...",
	)
}

// Property runs the rapid property tests of the indenter and formatter with
// RAPID_CHECKS checks each (5000 by default).
func (Test) Property() error {
	checks := cmp.Or(os.Getenv("RAPID_CHECKS"), "5000")
	fmt.Printf("Running property tests (%s checks)...\n", checks)
	return sh.RunV("go", "test",
		"-run", "^TestProperty_|_Idempotent$|_OnlyLeadingWhitespaceChanges$",
		"./pkg/indent/...", "./pkg/format/...",
		"-rapid.checks="+checks,
	)
}

// Golden runs the txtar cases under pkg/format/testdata.
func (Test) Golden() error {
	return sh.RunV("go", "test", "-run", "^TestGolden$", "-v", "./pkg/format/...")
}

// Bench runs the formatter benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "-benchmem",
		"./pkg/format/...")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// Gate runs what CI runs: gofmt, vet and lint checks without fixing, the
// tests, and a go.mod tidiness check.
func (CI) Gate() error {
	st.SerialDeps(CI.Fmt, CI.Lint, Build, Test.Default, CI.ModTidy)
	fmt.Println("✓ CI gate passed")
	return nil
}

// Fmt fails if any Go file needs gofmt.
func (CI) Fmt() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave lint:fmt' to fix", out)
	}
	return nil
}

// Lint runs go vet and golangci-lint without auto-fix.
func (CI) Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// ModTidy fails if 'go mod tidy' changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := modFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := modFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy'")
	}
	return nil
}

func modFiles() (string, error) {
	var sb strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		sb.Write(data)
	}
	return sb.String(), nil
}

// gitOutput runs git and returns trimmed stdout, or "" on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags sets the version variables of cmd/msclfmt.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}
