//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets (unit, integration, all).
type Test mg.Namespace

// Unit runs the unit tests of every package.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "./...")
}

// Integration runs the tests tagged integration, which start a postgres
// container through testcontainers.
func (Test) Integration() error {
	return sh.RunV(binGo, "test", "-tags", "integration", "-count=1", "./...")
}

// All runs unit and integration tests.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Integration)
}

// Cover writes a coverage profile for the unit tests to bin/cover.out.
func (Test) Cover() error {
	mg.Deps(mkBinDir)
	return sh.RunV(binGo, "test", "-coverprofile", "bin/cover.out", "./...")
}
