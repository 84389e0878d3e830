// Package clipboard copies selected element text to the tmux buffer, the
// system clipboard and the terminal through OSC52.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

var (
	ErrNotInTmux     = errors.New("not in tmux session")
	ErrNoSystemTool  = errors.New("no system clipboard tool available")
	ErrNoTargetFound = errors.New("no clipboard target enabled")
)

// Writer represents a clipboard destination
type Writer interface {
	Write(text string) error
}

// Option configures a Clipboard
type Option func(*Clipboard)

// Clipboard copies to every enabled target
type Clipboard struct {
	tmux   bool
	system bool
	osc52  bool
	output io.Writer
}

// New creates a Clipboard with all targets enabled and OSC52 written to stderr
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		tmux:   true,
		system: true,
		osc52:  true,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTmux enables/disables tmux buffer copying
func WithTmux(enabled bool) Option {
	return func(c *Clipboard) {
		c.tmux = enabled
	}
}

// WithSystem enables/disables system clipboard copying
func WithSystem(enabled bool) Option {
	return func(c *Clipboard) {
		c.system = enabled
	}
}

// WithOSC52 enables/disables OSC52 terminal copying
func WithOSC52(enabled bool) Option {
	return func(c *Clipboard) {
		c.osc52 = enabled
	}
}

// WithOutput sets the output destination for OSC52 sequences
func WithOutput(w io.Writer) Option {
	return func(c *Clipboard) {
		c.output = w
	}
}

// targets returns the writers Copy uses. The tmux target is skipped outside tmux.
func (c *Clipboard) targets() []Writer {
	var writers []Writer
	if c.tmux && isTmuxSession() {
		writers = append(writers, TmuxWriter{})
	}
	if c.system {
		writers = append(writers, SystemWriter{})
	}
	if c.osc52 {
		writers = append(writers, NewOSC52Writer(c.output))
	}
	return writers
}

// Copy writes text to all enabled targets and joins their errors
func (c *Clipboard) Copy(text string) error {
	writers := c.targets()
	if len(writers) == 0 {
		return ErrNoTargetFound
	}

	var errs []error
	for _, w := range writers {
		if err := w.Write(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TmuxWriter loads text into the tmux paste buffer
type TmuxWriter struct{}

func (TmuxWriter) Write(text string) error {
	if !isTmuxSession() {
		return ErrNotInTmux
	}
	if text == "" {
		return exec.Command("tmux", "delete-buffer").Run()
	}

	cmd := exec.Command("tmux", "load-buffer", "-")
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("tmux load-buffer: %w", err)
	}
	return nil
}

// SystemWriter pipes text into the platform clipboard tool
type SystemWriter struct{}

func (SystemWriter) Write(text string) error {
	tool := findSystemClipboardTool()
	if tool == "" {
		return ErrNoSystemTool
	}

	cmd := exec.Command(tool)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", tool, err)
	}
	return nil
}

// OSC52Writer asks the terminal to set its clipboard
type OSC52Writer struct {
	output io.Writer
}

// NewOSC52Writer creates a writer emitting OSC52 sequences to output
func NewOSC52Writer(output io.Writer) *OSC52Writer {
	return &OSC52Writer{output: output}
}

func (o *OSC52Writer) Write(text string) error {
	_, err := io.WriteString(o.output, osc52Sequence(text, isTmuxSession()))
	return err
}

// osc52Sequence builds the escape sequence; inside tmux it is wrapped in a
// DCS passthrough
func osc52Sequence(text string, tmux bool) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if tmux && text != "" {
		return fmt.Sprintf("\033Ptmux;\033\033]52;c;%s\007\033\\", encoded)
	}
	return fmt.Sprintf("\033]52;c;%s\007", encoded)
}

func isTmuxSession() bool {
	return os.Getenv("TMUX") != ""
}

func findSystemClipboardTool() string {
	for _, tool := range clipboardTools(runtime.GOOS) {
		if _, err := exec.LookPath(tool); err == nil {
			return tool
		}
	}
	return ""
}

// clipboardTools returns platform-specific clipboard tools
func clipboardTools(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"pbcopy"}
	case "linux", "freebsd", "openbsd":
		return []string{"wl-copy", "xclip", "xsel"}
	case "windows":
		return []string{"clip"}
	default:
		return nil
	}
}

// Available reports which targets can be used in the current environment
func Available() map[string]bool {
	return map[string]bool{
		"tmux":   isTmuxSession(),
		"system": findSystemClipboardTool() != "",
		"osc52":  true,
	}
}
