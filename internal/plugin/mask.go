// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import "strings"

// Masking precedence is exact and order matters: explicit exclusions first,
// then the exact-match always-mask list, then suffix patterns. A field named
// plain "key" is never masked; "kms_key_id" is excluded even though it would
// match the _id-adjacent patterns people expect.
var (
	maskExclusions = map[string]struct{}{
		"kms_key_id": {},
		"key_file":   {},
		"key_id":     {},
	}

	maskExact = map[string]struct{}{
		"secret_key":    {},
		"access_key":    {},
		"password":      {},
		"token":         {},
		"sas_token":     {},
		"client_secret": {},
		"credentials":   {},
	}

	maskSuffixes = []string{"_key", "_secret", "_token"}
)

// Sensitive reports whether a config field name holds a value that must be
// masked in logs and dry-run output.
func Sensitive(name string) bool {
	name = strings.ToLower(name)
	if _, ok := maskExclusions[name]; ok {
		return false
	}
	if _, ok := maskExact[name]; ok {
		return true
	}
	for _, suffix := range maskSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// MaskValue replaces v with a fixed placeholder when the field name is
// sensitive.
func MaskValue(name, v string) string {
	if Sensitive(name) {
		return "********"
	}
	return v
}

// MaskInitArgs masks the value portion of "-backend-config=key=value"
// arguments whose key is sensitive, leaving everything else untouched.
func MaskInitArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = arg
		rest, ok := strings.CutPrefix(arg, "-backend-config=")
		if !ok {
			continue
		}
		if k, v, found := strings.Cut(rest, "="); found && Sensitive(k) {
			out[i] = "-backend-config=" + k + "=" + MaskValue(k, v)
		}
	}
	return out
}
