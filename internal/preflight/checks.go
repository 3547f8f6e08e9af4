package preflight

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"diarbench/internal/config"
)

// CheckToken verifies the Hugging Face token is present in the environment.
// The pretrained pipeline cannot load without it.
func CheckToken(cfg *config.Config) Result {
	const name = "HF_TOKEN"
	if cfg.HFToken() == "" {
		return Result{Name: name, Detail: "not set (required to load the pretrained pipeline)"}
	}
	return Result{Name: name, Passed: true, Detail: "present"}
}

// CheckManifest verifies the manifest file exists and is a regular file.
func CheckManifest(path string) Result {
	const name = "Manifest"
	if path == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSidecar verifies a sidecar service answers its health endpoint.
func CheckSidecar(ctx context.Context, name string, svc Availability) Result {
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if !svc.IsAvailable(checkCtx) {
		return Result{Name: name, Detail: "unreachable (is the service running?)"}
	}
	return Result{Name: name, Passed: true, Detail: "reachable"}
}
