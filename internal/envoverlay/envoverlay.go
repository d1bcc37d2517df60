// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package envoverlay

import (
	"sort"

	"github.com/terraflow/terraflow/internal/log"
)

// Overlay is the mutable environment threaded through the orchestrator
// stages instead of the process-wide environment table. Stages insert keys
// under a do-not-overwrite rule; the result is only flattened to a real
// environment immediately before a subprocess launch.
type Overlay struct {
	values map[string]string
}

// New builds an overlay seeded from os.Environ-style "key=value" pairs.
func New(environ []string) *Overlay {
	o := &Overlay{values: make(map[string]string, len(environ))}
	for _, kv := range environ {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				o.values[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return o
}

// Get returns the value for key and whether it is present.
func (o *Overlay) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Set unconditionally writes key. Reserved for the documented later-priority
// overrides (auth-produced credentials replace the base credentials that were
// used to obtain them); everything else goes through SetDefault.
func (o *Overlay) Set(key, value string) {
	o.values[key] = value
}

// SetDefault inserts key only when it is not already present, preserving the
// externally-set-environment-always-wins rule. Reports whether the key was
// inserted.
func (o *Overlay) SetDefault(key, value string) bool {
	if _, ok := o.values[key]; ok {
		log.Debugf("env overlay: %s already set, keeping existing value", key)
		return false
	}
	o.values[key] = value
	return true
}

// SetDefaults applies SetDefault for every entry of m and returns the number
// of keys actually inserted.
func (o *Overlay) SetDefaults(m map[string]string) int {
	n := 0
	for k, v := range m {
		if o.SetDefault(k, v) {
			n++
		}
	}
	return n
}

// Environ flattens the overlay into sorted "key=value" pairs suitable for
// exec.Cmd.Env.
func (o *Overlay) Environ() []string {
	out := make([]string, 0, len(o.values))
	for k, v := range o.values {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a copy of the overlay as a map.
func (o *Overlay) Snapshot() map[string]string {
	out := make(map[string]string, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}
