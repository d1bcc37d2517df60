// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
)

// ResolveWorkingDir turns a configured working directory into an absolute
// path anchored at cwd. It returns an error if the fs entry does not exist,
// is empty, or is not a directory.
func ResolveWorkingDir(dir, cwd string) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}

	if fi, err := os.Stat(dir); err != nil {
		return "", err
	} else if !fi.IsDir() {
		return "", os.ErrInvalid
	}

	return dir, nil
}
