//go:build mage

// Package main provides build targets for recipecost using Mage.
//
// Usage:
//
//	mage build             Compile recipecost to bin/ with the git version
//	mage install           Install recipecost to GOPATH/bin
//	mage clean             Remove build artifacts
//	mage test:unit         Run unit tests
//	mage test:integration  Run tests tagged integration (needs a container runtime)
//	mage test:all          Run both
//	mage lint              Run golangci-lint, integration files included
//	mage lintFix           Run golangci-lint and apply its fixes
//	mage image             Build the container image
//	mage stats             Print Go line counts
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "recipecost"
	binaryDir  = "bin"
	cmdDir     = "./cmd/recipecost"
	versionVar = "github.com/mesh-intelligence/recipecost/internal/cli.Version"
)

// version describes HEAD, or "dev" outside a git checkout.
func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return v
}

func mkBinDir() error {
	return os.MkdirAll(binaryDir, 0o755)
}

// Build compiles the recipecost binary to bin/.
func Build() error {
	mg.Deps(mkBinDir)
	ldflags := fmt.Sprintf("-X %s=%s", versionVar, version())
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Stats prints Go lines of code split into production and test code.
func Stats() error {
	var prodLines, testLines int
	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch path {
			case "vendor", ".git", binaryDir, "magefiles", "_examples":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, err := countLines(path)
		if err != nil {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") {
			testLines += n
		} else {
			prodLines += n
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	fmt.Printf("Lines of code (Go, total):      %d\n", prodLines+testLines)
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
