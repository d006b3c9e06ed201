// Package kak talks to a running editor session through its command and
// response fifos.
//
// Commands are appended to the command fifo. Values are requested by sending
// an echo that writes them, shell-quoted, to the response fifo, which is then
// read to EOF. The exchange is strictly sequential: a failed write or read
// leaves the channel in an unknown state and is reported as an I/O error.
package kak

import (
	"errors"
	"fmt"
	"os"

	"github.com/dshills/selkit/internal/failure"
)

// Environment variables set by the editor when running a shell command.
const (
	EnvCommandFifo  = "kak_command_fifo"
	EnvResponseFifo = "kak_response_fifo"
)

// ErrNoSession is returned when the fifo paths are unknown.
var ErrNoSession = errors.New("not running inside an editor session")

// Logger receives the commands exchanged with the editor.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Config configures a Client.
type Config struct {
	// CommandFifo overrides $kak_command_fifo.
	CommandFifo string
	// ResponseFifo overrides $kak_response_fifo.
	ResponseFifo string
	// Logger receives debug output. Optional.
	Logger Logger
}

// Client sends commands to the editor and reads responses.
type Client struct {
	commandFifo  string
	responseFifo string
	logger       Logger
}

// NewClient creates a client, falling back to the editor's environment for
// fifo paths not set in cfg.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{
		commandFifo:  cfg.CommandFifo,
		responseFifo: cfg.ResponseFifo,
		logger:       cfg.Logger,
	}
	if c.commandFifo == "" {
		c.commandFifo = os.Getenv(EnvCommandFifo)
	}
	if c.responseFifo == "" {
		c.responseFifo = os.Getenv(EnvResponseFifo)
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}
	if c.commandFifo == "" || c.responseFifo == "" {
		return nil, failure.IO("kak", ErrNoSession).
			WithDetail("env var %s or %s is not defined", EnvCommandFifo, EnvResponseFifo)
	}
	return c, nil
}

// Send writes cmd to the command fifo, terminated by ";".
func (c *Client) Send(cmd string) error {
	c.logger.Debug("kak <- %s", cmd)

	f, err := os.OpenFile(c.commandFifo, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return failure.IO("kak", err).WithDetail("opening command fifo")
	}
	if _, err := f.WriteString(cmd + ";"); err != nil {
		_ = f.Close()
		return failure.IO("kak", err).WithDetail("writing command fifo")
	}
	if err := f.Close(); err != nil {
		return failure.IO("kak", err).WithDetail("closing command fifo")
	}
	return nil
}

// Query evaluates expr (e.g. "%val{selections}") and returns its words.
// When keys is non-empty, they are executed first in a draft context so the
// current selections are left untouched. If the keys fail, the result is empty.
func (c *Client) Query(expr, keys string) ([]string, error) {
	echo := fmt.Sprintf("echo -quoting shell -to-file %s -- %s", Quote(c.responseFifo), expr)

	cmd := echo
	if keys != "" {
		cmd = fmt.Sprintf("evaluate-commands -draft %%{ try %%{ execute-keys %s; %s } catch %%{ echo -to-file %s -- '' } }",
			Quote(keys), echo, Quote(c.responseFifo))
	}
	if err := c.Send(cmd); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.responseFifo)
	if err != nil {
		return nil, failure.IO("kak", err).WithDetail("reading response fifo")
	}
	words, err := SplitResponse(string(data))
	if err != nil {
		return nil, failure.IO("kak", err).WithDetail("response %q", data)
	}
	c.logger.Debug("kak -> %d values", len(words))
	return words, nil
}
