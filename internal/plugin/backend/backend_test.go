// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

func TestLocalProducesNoInitArgs(t *testing.T) {
	be := &Local{}
	require.NoError(t, be.Validate(nil))

	args, err := be.InitArgs(nil, &runctx.Context{})
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestS3Validate(t *testing.T) {
	be := &S3{}

	tests := []struct {
		name    string
		cfg     map[string]string
		wantErr string
	}{
		{
			name:    "missing everything",
			cfg:     map[string]string{},
			wantErr: "bucket",
		},
		{
			name:    "missing region",
			cfg:     map[string]string{"bucket": "states", "key": "app.tfstate", "encrypt": "true"},
			wantErr: "region",
		},
		{
			name: "complete",
			cfg:  map[string]string{"bucket": "states", "key": "app.tfstate", "region": "us-east-1", "encrypt": "true"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := be.Validate(&config.Backend{Type: "s3", Config: tt.cfg})
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestS3InitArgsOrderedAndComplete(t *testing.T) {
	be := &S3{}
	desc := &config.Backend{Type: "s3", Config: map[string]string{
		"bucket":     "states",
		"key":        "app.tfstate",
		"region":     "us-east-1",
		"encrypt":    "true",
		"kms_key_id": "arn:aws:kms:key/1",
	}}

	args, err := be.InitArgs(desc, &runctx.Context{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"-backend-config=bucket=states",
		"-backend-config=key=app.tfstate",
		"-backend-config=region=us-east-1",
		"-backend-config=encrypt=true",
		"-backend-config=kms_key_id=arn:aws:kms:key/1",
	}, args)
}

func TestAzureRMValidateAndInitArgs(t *testing.T) {
	be := &AzureRM{}

	err := be.Validate(&config.Backend{Type: "azurerm", Config: map[string]string{
		"storage_account_name": "acct",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "container_name")

	desc := &config.Backend{Type: "azurerm", Config: map[string]string{
		"storage_account_name": "acct",
		"container_name":       "tfstate",
		"key":                  "app.tfstate",
	}}
	require.NoError(t, be.Validate(desc))

	// Subscription comes from the probed cloud identity when not configured.
	rc := &runctx.Context{}
	rc.Cloud.AzureSubscriptionID = "sub-123"
	args, err := be.InitArgs(desc, rc)
	require.NoError(t, err)
	assert.Contains(t, args, "-backend-config=subscription_id=sub-123")
	assert.Contains(t, args, "-backend-config=storage_account_name=acct")
}

func TestGCSValidateAndInitArgs(t *testing.T) {
	be := &GCS{}

	require.Error(t, be.Validate(&config.Backend{Type: "gcs"}))

	desc := &config.Backend{Type: "gcs", Config: map[string]string{
		"bucket": "states",
		"prefix": "",
	}}
	require.NoError(t, be.Validate(desc))

	args, err := be.InitArgs(desc, &runctx.Context{})
	require.NoError(t, err)
	// Empty prefix is absent, not an empty argument.
	assert.Equal(t, []string{"-backend-config=bucket=states"}, args)
}
