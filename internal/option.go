package internal

import (
	"io"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStdio replaces the process streams used by the stdio transport and the
// logger. Nil arguments keep the defaults.
func WithStdio(in io.Reader, out, errOut io.Writer) Option {
	return func(a *application) {
		if in != nil {
			a.stdin = in
		}
		if out != nil {
			a.stdout = out
		}
		if errOut != nil {
			a.stderr = errOut
		}
	}
}
