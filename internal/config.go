package internal

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/docsmcp/internal/session"
)

// Paths served by the HTTP shell itself; transport endpoints may not reuse them.
var reservedPaths = []any{"/health", "/docs", "/.well-known/mcp.json"}

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Docs      DocsConfig        `yaml:"docs"`
	Transport TransportConfig   `yaml:"transport"`
	Tools     ToolsConfig       `yaml:"tools"`
	CORS      CORSConfig        `yaml:"cors"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Docs.Validate(); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	if err := c.Transport.Validate(); err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DocsConfig holds the documentation directory settings.
type DocsConfig struct {
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

// Validate validates the docs configuration.
func (c *DocsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// TransportConfig selects and tunes the MCP transport.
//
// Mode is one of:
//   - "stdio": newline-delimited JSON-RPC over stdin/stdout, no HTTP server.
//   - "sse": server-sent events stream plus a message POST endpoint.
//   - "http": streamable HTTP on a single endpoint; Stateless drops session ids.
type TransportConfig struct {
	Mode            string        `yaml:"mode"`
	Stateless       bool          `yaml:"stateless"`
	BaseURL         string        `yaml:"base_url"`
	SSEEndpoint     string        `yaml:"sse_endpoint"`
	MessageEndpoint string        `yaml:"message_endpoint"`
	HTTPEndpoint    string        `yaml:"http_endpoint"`
	KeepAlive       time.Duration `yaml:"keep_alive"`
}

// Validate validates the transport configuration.
func (c *TransportConfig) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(session.TransportStdio, session.TransportSSE, session.TransportHTTP)),
		validation.Field(&c.SSEEndpoint, validation.When(c.Mode == session.TransportSSE, validation.Required, validation.By(endpointPath))),
		validation.Field(&c.MessageEndpoint, validation.When(c.Mode == session.TransportSSE, validation.Required, validation.By(endpointPath))),
		validation.Field(&c.HTTPEndpoint, validation.When(c.Mode == session.TransportHTTP, validation.Required, validation.By(endpointPath))),
		validation.Field(&c.KeepAlive, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}
	if c.Mode == session.TransportSSE && c.SSEEndpoint == c.MessageEndpoint {
		return fmt.Errorf("sse_endpoint and message_endpoint must differ, both are %q", c.SSEEndpoint)
	}
	return nil
}

// IsHTTP reports whether the transport needs the HTTP server.
func (c *TransportConfig) IsHTTP() bool {
	return c.Mode != session.TransportStdio
}

func endpointPath(value any) error {
	p, _ := value.(string)
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("must start with /")
	}
	return validation.Validate(p, validation.NotIn(reservedPaths...))
}

// ToolsConfig toggles the list_docs and read_doc tools.
type ToolsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CORSConfig holds the origins allowed to reach the HTTP transports.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Host: "0.0.0.0",
				Port: 3000,
			},
		},
		Docs: DocsConfig{
			Path:  "./docs",
			Watch: true,
		},
		Transport: TransportConfig{
			Mode:            session.TransportSSE,
			SSEEndpoint:     "/sse",
			MessageEndpoint: "/messages",
			HTTPEndpoint:    "/mcp",
			KeepAlive:       30 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}
