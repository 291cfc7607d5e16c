// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/article-history/pkg/types"
)

func TestParseNamedParams(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    map[string]string
		wantErr string
	}{
		{"none", nil, nil, ""},
		{"single", []string{"entry=... that ..."}, map[string]string{"entry": "... that ..."}, ""},
		{"value with equals", []string{"entry=a=b"}, map[string]string{"entry": "a=b"}, ""},
		{"empty value", []string{"entry="}, map[string]string{"entry": ""}, ""},
		{"no separator", []string{"entry"}, nil, "want name=value"},
		{"blank name", []string{" =x"}, nil, "want name=value"},
		{"duplicate", []string{"entry=a", "entry=b"}, nil, "more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseNamedParams(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteParams(t *testing.T) {
	params := []types.Param{{Key: "dyk.date", Value: "5 2020"}, {Key: "dyk.entry", Value: "hook"}}

	var text bytes.Buffer
	require.NoError(t, writeParams(&text, params, false))
	assert.Equal(t, "dyk.date=5 2020\ndyk.entry=hook\n", text.String())

	var js bytes.Buffer
	require.NoError(t, writeParams(&js, params, true))
	var decoded []types.Param
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, params, decoded)
}
