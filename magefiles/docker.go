//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/magefile/mage/sh"
)

// Container image constants.
const (
	dockerImageName = "recipecost"
	dockerfile      = "Dockerfile"
)

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable. It checks both that the
// binary exists on PATH and that it can connect to its daemon/machine.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}

// imageRef returns the image reference tagged with the build version.
func imageRef() string {
	return dockerImageName + ":" + version()
}

// Image builds the server container image from the repo root Dockerfile.
func Image() error {
	rt := containerRuntime()
	if rt == "" {
		return errors.New("no container runtime found (tried podman, docker)")
	}
	return sh.RunV(rt, "build",
		"--build-arg", "VERSION="+version(),
		"-t", imageRef(),
		"-t", dockerImageName+":latest",
		"-f", dockerfile,
		".")
}

// RemoveImage removes the image built for the current version. A missing
// image is not an error.
func RemoveImage() {
	rt := containerRuntime()
	if rt == "" {
		return
	}
	_ = exec.Command(rt, "rmi", imageRef()).Run()
}
