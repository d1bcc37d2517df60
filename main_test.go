// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{
			name:     "no version flag",
			args:     []string{"terraflow", "plan"},
			expected: false,
		},
		{
			name:     "long flag",
			args:     []string{"terraflow", "--version"},
			expected: true,
		},
		{
			name:     "short flag",
			args:     []string{"terraflow", "-v"},
			expected: true,
		},
		{
			name:     "version flag after command still handled",
			args:     []string{"terraflow", "plan", "--version"},
			expected: true,
		},
		{
			name:     "empty args",
			args:     []string{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handleVersion(tt.args); got != tt.expected {
				t.Errorf("handleVersion(%v) = %v, want %v", tt.args, got, tt.expected)
			}
		})
	}
}

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "bare invocation gets help",
			args:     []string{"terraflow"},
			expected: []string{"terraflow", "--help"},
		},
		{
			name:     "command present is untouched",
			args:     []string{"terraflow", "plan"},
			expected: []string{"terraflow", "plan"},
		},
		{
			name:     "command with args untouched",
			args:     []string{"terraflow", "apply", "-auto-approve"},
			expected: []string{"terraflow", "apply", "-auto-approve"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}
