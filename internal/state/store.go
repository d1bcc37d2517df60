// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
)

// StateDir and StateFile locate the record inside the working directory.
const (
	StateDir  = ".terraflow"
	StateFile = "state.json"
)

// Record is the persisted backend descriptor plus its write time.
type Record struct {
	Backend     config.Backend `json:"backend"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Load reads the record for workingDir. A missing, unreadable, or corrupt
// file is indistinguishable from "no previous state" and returns nil.
func Load(workingDir string) *Record {
	raw, err := os.ReadFile(path(workingDir))
	if err != nil {
		return nil
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Debugf("ignoring corrupt backend state file: %v", err)
		return nil
	}
	return &rec
}

// Save overwrites the record for workingDir with the given descriptor.
func Save(workingDir string, desc *config.Backend) error {
	if err := os.MkdirAll(filepath.Join(workingDir, StateDir), 0o755); err != nil {
		return err
	}

	rec := Record{Backend: *desc, LastUpdated: time.Now().UTC()}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path(workingDir), raw, 0o644)
}

// DetectMigration compares only the backend type of the previous record with
// the current descriptor. A bucket or key change within the same type is not
// a migration. Returns the previous record and true only when the type
// changed.
func DetectMigration(workingDir string, current *config.Backend) (*Record, bool) {
	prev := Load(workingDir)
	if prev == nil || prev.Backend.Type == "" {
		return nil, false
	}
	if current == nil || prev.Backend.Type == current.Type {
		return nil, false
	}
	return prev, true
}

func path(workingDir string) string {
	return filepath.Join(workingDir, StateDir, StateFile)
}
