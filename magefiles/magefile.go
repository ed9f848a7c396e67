//go:build mage

// Package main contains Mage build targets for trend-scout developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// binaries maps output names to their cmd packages.
var binaries = map[string]string{
	"trend-scout": "./cmd/scout",
	"ideas-board": "./cmd/api",
}

// Init creates the default ideas folder so the board and the scout share it.
func Init() error {
	dir := filepath.Join("second-brain", "content", "ideas")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	fmt.Println("  ", dir)
	return nil
}

// Build compiles both binaries into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Scout builds and runs one scan with the current environment.
func Scout() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "trend-scout"))
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
