// Package main provides the recipecost CLI and API server.
package main

import "github.com/mesh-intelligence/recipecost/internal/cli"

func main() {
	cli.Execute()
}
