package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "virta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
version: "1"
region: us-east-1
service: payments
stage: dev
forwarder:
  destination: arn:aws:lambda:us-east-1:123456789012:function:log-forwarder
  subscribe_access_logs: true
  subscribe_execution_logs: true
logging:
  rest_api: true
  websocket:
    access_logging: true
handlers:
  - name: charge
    runtime: node
  - name: refund-worker
    runtime: python
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "payments", cfg.Service)
	assert.Equal(t, "dev", cfg.Stage)
	assert.True(t, cfg.Forwarder.SubscribeAccessLogs)
	assert.False(t, cfg.Forwarder.Extension)
	assert.Len(t, cfg.Handlers, 2)
	assert.Equal(t, "refund-worker", cfg.Handlers[1].Name)

	resolved, err := ResolveLogging(cfg.Logging)
	require.NoError(t, err)
	assert.True(t, resolved.RestAccess)
	assert.True(t, resolved.RestExecution)
	assert.True(t, resolved.WebsocketAccess)
	assert.False(t, resolved.WebsocketExecution)
}

func TestLoadConfig_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing version",
			content: "region: us-east-1\nservice: s\nstage: dev\nforwarder:\n  destination: arn\n",
			wantErr: "version is required",
		},
		{
			name:    "missing service",
			content: "version: \"1\"\nregion: us-east-1\nstage: dev\nforwarder:\n  destination: arn\n",
			wantErr: "service is required",
		},
		{
			name:    "missing forwarder destination",
			content: "version: \"1\"\nregion: us-east-1\nservice: s\nstage: dev\n",
			wantErr: "forwarder destination is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_IntrinsicDestination(t *testing.T) {
	path := writeConfig(t, `
version: "1"
region: us-east-1
service: payments
stage: dev
forwarder:
  destination:
    Ref: ForwarderFunction
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	destination, ok := cfg.Forwarder.Destination.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ForwarderFunction", destination["Ref"])
}

func TestConfig_APIDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultRestAPIID, cfg.RestAPIID())
	assert.Equal(t, DefaultWebsocketAPIID, cfg.WebsocketAPIID())

	cfg.APIs = APIs{RestAPIID: "ApiGatewayRestApi", WebsocketAPIID: "WebsocketsApi"}
	assert.Equal(t, "ApiGatewayRestApi", cfg.RestAPIID())
	assert.Equal(t, "WebsocketsApi", cfg.WebsocketAPIID())
}
