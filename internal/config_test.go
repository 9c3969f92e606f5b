package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/docsmcp/internal/session"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:3000", cfg.App.HTTP.Address())
	assert.Equal(t, session.TransportSSE, cfg.Transport.Mode)
	assert.True(t, cfg.Transport.IsHTTP())
	assert.Equal(t, 30*time.Second, cfg.Transport.KeepAlive)
}

func TestHTTPConfig_Address(t *testing.T) {
	c := HTTPConfig{Host: "", Port: 8080}
	assert.Equal(t, ":8080", c.Address())

	c = HTTPConfig{Host: "::1", Port: 3000}
	assert.Equal(t, "[::1]:3000", c.Address())
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		c := HTTPConfig{Port: port}
		assert.Error(t, c.Validate(), "port %d", port)
	}
}

func TestDocsConfig_PathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Docs.Path = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs")
}

func TestTransportConfig_Modes(t *testing.T) {
	for _, mode := range []string{"stdio", "sse", "http", "HTTP", " sse "} {
		cfg := NewDefaultConfig()
		cfg.Transport.Mode = mode
		assert.NoError(t, cfg.Validate(), "mode %q", mode)
	}

	cfg := NewDefaultConfig()
	cfg.Transport.Mode = "websocket"
	assert.Error(t, cfg.Validate())
}

func TestTransportConfig_ModesMatchSessionTransports(t *testing.T) {
	for _, mode := range []string{session.TransportStdio, session.TransportSSE, session.TransportHTTP} {
		c := TransportConfig{Mode: mode, SSEEndpoint: "/sse", MessageEndpoint: "/messages", HTTPEndpoint: "/mcp"}
		assert.NoError(t, c.Validate(), "mode %q", mode)
	}
}

func TestTransportConfig_ModeNormalised(t *testing.T) {
	c := TransportConfig{Mode: " STDIO "}
	require.NoError(t, c.Validate())
	assert.Equal(t, session.TransportStdio, c.Mode)
	assert.False(t, c.IsHTTP())
}

func TestTransportConfig_StdioIgnoresEndpoints(t *testing.T) {
	c := TransportConfig{Mode: session.TransportStdio}
	assert.NoError(t, c.Validate())
}

func TestTransportConfig_EndpointMustBeAbsolute(t *testing.T) {
	c := TransportConfig{Mode: session.TransportHTTP, HTTPEndpoint: "mcp"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTPEndpoint")
}

func TestTransportConfig_ReservedPathRejected(t *testing.T) {
	c := TransportConfig{Mode: session.TransportHTTP, HTTPEndpoint: "/health"}
	assert.Error(t, c.Validate())

	c = TransportConfig{Mode: session.TransportSSE, SSEEndpoint: "/docs", MessageEndpoint: "/messages"}
	assert.Error(t, c.Validate())
}

func TestTransportConfig_SSEEndpointsDiffer(t *testing.T) {
	c := TransportConfig{Mode: session.TransportSSE, SSEEndpoint: "/sse", MessageEndpoint: "/sse"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ")
}

func TestTransportConfig_SSERequiresEndpoints(t *testing.T) {
	c := TransportConfig{Mode: session.TransportSSE, SSEEndpoint: "/sse"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MessageEndpoint")
}

func TestTransportConfig_NegativeKeepAlive(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Transport.KeepAlive = -time.Second
	assert.Error(t, cfg.Validate())
}
