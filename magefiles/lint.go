//go:build mage

package main

import "github.com/magefile/mage/sh"

const binLint = "golangci-lint"

// lintArgs also covers files behind the integration build tag.
var lintArgs = []string{"run", "--build-tags", "integration", "--timeout", "5m", "./..."}

// Lint runs golangci-lint over all packages, integration tests included.
func Lint() error {
	return sh.RunV(binLint, lintArgs...)
}

// LintFix runs golangci-lint and applies its automatic fixes.
func LintFix() error {
	return sh.RunV(binLint, append(lintArgs, "--fix")...)
}
