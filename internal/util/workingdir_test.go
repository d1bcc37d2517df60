// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWorkingDir(t *testing.T) {
	cwd := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(cwd, "terraform"), 0o755))
	file := filepath.Join(cwd, "main.tf")
	require.NoError(t, os.WriteFile(file, []byte(""), 0o644))

	got, err := ResolveWorkingDir("./terraform", cwd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "terraform"), got)

	got, err = ResolveWorkingDir(cwd, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)

	_, err = ResolveWorkingDir("", cwd)
	assert.Error(t, err)

	_, err = ResolveWorkingDir("missing", cwd)
	assert.Error(t, err)

	_, err = ResolveWorkingDir("main.tf", cwd)
	assert.Error(t, err)
}
