package clipboard

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	c := New()
	if !c.tmux || !c.system || !c.osc52 {
		t.Error("Default settings should enable all targets")
	}
	if c.output != os.Stderr {
		t.Error("Default output should be os.Stderr")
	}
}

func TestWithOptions(t *testing.T) {
	var buf bytes.Buffer
	c := New(WithTmux(false), WithSystem(false), WithOSC52(true), WithOutput(&buf))

	if c.tmux || c.system {
		t.Error("Options should disable tmux and system")
	}
	if !c.osc52 {
		t.Error("Options should enable osc52")
	}
	if c.output != &buf {
		t.Error("Output should be set to buffer")
	}
}

func TestIsTmuxSession(t *testing.T) {
	t.Setenv("TMUX", "")
	if isTmuxSession() {
		t.Error("Should not detect tmux when TMUX env is empty")
	}

	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")
	if !isTmuxSession() {
		t.Error("Should detect tmux when TMUX env is set")
	}
}

func TestClipboardTools(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"pbcopy"}},
		{"linux", []string{"wl-copy", "xclip", "xsel"}},
		{"windows", []string{"clip"}},
		{"plan9", nil},
	}

	for _, tt := range tests {
		got := clipboardTools(tt.goos)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("clipboardTools(%s) = %v; want %v", tt.goos, got, tt.want)
		}
	}
}

func TestOSC52Sequence(t *testing.T) {
	tests := []struct {
		text string
		tmux bool
		want string
	}{
		{"", false, "\033]52;c;\007"},
		{"hello", false, "\033]52;c;aGVsbG8=\007"},
		{"hello", true, "\033Ptmux;\033\033]52;c;aGVsbG8=\007\033\\"},
		{"", true, "\033]52;c;\007"},
	}

	for _, tt := range tests {
		if got := osc52Sequence(tt.text, tt.tmux); got != tt.want {
			t.Errorf("osc52Sequence(%q, %v) = %q; want %q", tt.text, tt.tmux, got, tt.want)
		}
	}
}

func TestOSC52Writer(t *testing.T) {
	t.Setenv("TMUX", "")

	var buf bytes.Buffer
	if err := NewOSC52Writer(&buf).Write("hello"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.String() != "\033]52;c;aGVsbG8=\007" {
		t.Errorf("unexpected sequence %q", buf.String())
	}
}

func TestClipboardCopy(t *testing.T) {
	t.Setenv("TMUX", "")

	var buf bytes.Buffer
	c := New(WithTmux(false), WithSystem(false), WithOutput(&buf))
	if err := c.Copy("@somebody"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\033]52;c;") {
		t.Errorf("Output should contain OSC52 sequence, got %q", buf.String())
	}
}

func TestClipboardCopyWithoutTargets(t *testing.T) {
	c := New(WithTmux(false), WithSystem(false), WithOSC52(false))
	if err := c.Copy("x"); !errors.Is(err, ErrNoTargetFound) {
		t.Errorf("expected ErrNoTargetFound, got %v", err)
	}
}

func TestTmuxWriterOutsideTmux(t *testing.T) {
	t.Setenv("TMUX", "")
	if err := (TmuxWriter{}).Write("test"); !errors.Is(err, ErrNotInTmux) {
		t.Errorf("expected ErrNotInTmux, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	available := Available()
	if !available["osc52"] {
		t.Error("OSC52 should always be available")
	}
	for _, key := range []string{"tmux", "system", "osc52"} {
		if _, exists := available[key]; !exists {
			t.Errorf("Available() should include key: %s", key)
		}
	}
}

func BenchmarkOSC52Write(b *testing.B) {
	var buf bytes.Buffer
	writer := NewOSC52Writer(&buf)
	text := "https://github.com/optonaut/ActiveLabel.swift"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		writer.Write(text) // nolint: errcheck
	}
}
