package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLogging(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Resolved
	}{
		{
			name: "absent config disables everything",
			raw:  nil,
			want: Resolved{},
		},
		{
			name: "category true enables both flags",
			raw: map[string]any{
				"rest_api": true,
			},
			want: Resolved{RestAccess: true, RestExecution: true},
		},
		{
			name: "category false short-circuits nested sub-flags",
			raw: map[string]any{
				"rest_api": false,
			},
			want: Resolved{},
		},
		{
			name: "object follows its own sub-flags",
			raw: map[string]any{
				"rest_api": map[string]any{
					"access_logging":    true,
					"execution_logging": false,
				},
				"websocket": map[string]any{
					"execution_logging": true,
				},
			},
			want: Resolved{RestAccess: true, WebsocketExecution: true},
		},
		{
			name: "absent sub-flag means disabled",
			raw: map[string]any{
				"http_api": map[string]any{},
			},
			want: Resolved{},
		},
		{
			name: "categories resolve independently",
			raw: map[string]any{
				"rest_api":  false,
				"http_api":  map[string]any{"access_logging": true},
				"websocket": true,
			},
			want: Resolved{HTTPAccess: true, WebsocketAccess: true, WebsocketExecution: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveLogging(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLogging_InvalidShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		path string
	}{
		{
			name: "top level is not a mapping",
			raw:  "everything",
			path: "logging",
		},
		{
			name: "category is a string",
			raw:  map[string]any{"rest_api": "yes"},
			path: "logging.rest_api",
		},
		{
			name: "category is a number",
			raw:  map[string]any{"websocket": 1},
			path: "logging.websocket",
		},
		{
			name: "sub-flag is a string",
			raw: map[string]any{
				"http_api": map[string]any{"access_logging": "true"},
			},
			path: "logging.http_api.access_logging",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveLogging(tt.raw)
			require.Error(t, err)

			var invalid *InvalidLoggingError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.path, invalid.Path)
		})
	}
}
