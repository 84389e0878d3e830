// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Hanaasagi/activelabel/internal"
	"github.com/Hanaasagi/activelabel/pkg/activelabel"
)

var (
	titleStyle   = color.New(color.Bold, color.FgHiWhite)
	commandStyle = color.New(color.FgHiGreen)
	exampleStyle = color.New(color.FgHiCyan)
	flagStyle    = color.New(color.Bold, color.FgHiCyan)
	noteStyle    = color.New(color.FgHiYellow)
)

// HelpTemplate is the cobra help template with the project link appended
var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}` + titleStyle.Sprintf("GitHub:") + color.New(color.FgYellow).Sprintln(
	"		https://github.com/Hanaasagi/activelabel",
)

// helpWidth is where the alphabet list wraps
const helpWidth = 78

var kindNotes = map[string]string{
	"mention":   "@handle at the start, after whitespace or after a dot",
	"hashtag":   "#tag at the start or after whitespace",
	"url":       "http(s)://, www. and pic. links, trimmed by --max-url-length",
	"email":     "user@example.com",
	"phone":     "North American and +country numbers with separators",
	"address":   "US street addresses",
	"date":      "written, ISO and numeric dates",
	"timestamp": "mm:ss and h:mm:ss; a line-opening one takes the line as title",
}

func rpad(s string, padding int) string {
	return fmt.Sprintf("%-*s", padding, s)
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

var flagLine = regexp.MustCompile(`^( {2,})(?:(-[a-zA-Z]), )?(--[a-zA-Z0-9-]+)(.*)$`)

// colorFlags highlights the short name of each flag, or the long name when
// the flag has no short form
func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		m := flagLine.FindStringSubmatch(line)
		switch {
		case m == nil:
			out.WriteString(line)
		case m[2] != "":
			out.WriteString(m[1] + flagStyle.Sprint(m[2]) + ", " + m[3] + m[4])
		default:
			out.WriteString(m[1] + flagStyle.Sprint(m[3]) + m[4])
		}
		out.WriteByte('\n')
	}

	return out.Bytes()
}

// writeKinds lists what --enable accepts, each kind name in the color the
// printer and picker use for it
func writeKinds(buf *bytes.Buffer) {
	fmt.Fprint(buf, "\n\n")
	titleStyle.Fprint(buf, "Element Kinds:")

	width := len("custom")
	for _, k := range activelabel.BuiltinKinds {
		width = max(width, len(k.Name()))
	}

	for _, k := range activelabel.BuiltinKinds {
		name := rpad(k.Name(), width)
		if c, err := internal.ParseColor(internal.DefaultColors[k.Name()]); err == nil {
			name = c.FgString(name)
		}
		fmt.Fprintf(buf, "\n  %s  %s", name, kindNotes[k.Name()])
		if slices.Contains(activelabel.DefaultKinds, k) {
			noteStyle.Fprint(buf, " (default)")
		}
	}

	name := rpad("custom", width)
	if c, err := internal.ParseColor(internal.DefaultColors["custom"]); err == nil {
		name = c.FgString(name)
	}
	fmt.Fprintf(buf, "\n  %s  -x 'pattern' or -x 'id=pattern', matched case-insensitively", name)
}

// writeAlphabets lists the hint layouts --alphabet accepts
func writeAlphabets(buf *bytes.Buffer) {
	fmt.Fprint(buf, "\n\n")
	titleStyle.Fprint(buf, "Alphabets:")

	var lines []string
	line := ""
	for _, name := range internal.AlphabetNames() {
		if name == internal.DefaultAlphabet {
			name += " (default)"
		}
		switch {
		case line == "":
			line = name
		case len(line)+len(", ")+len(name)+len(",") > helpWidth:
			lines = append(lines, line+",")
			line = name
		default:
			line += ", " + name
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	for _, l := range lines {
		fmt.Fprint(buf, "\n  "+l)
	}
}

// ColorUsageFunc renders the usage with colored sections and flags. Commands
// taking --enable or --alphabet also get the kinds and layouts listed.
func ColorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprint(buf, "Usage:")
	fmt.Fprint(buf, "\n  ")
	commandStyle.Fprint(buf, cmd.UseLine())

	if cmd.HasExample() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Examples:")
		fmt.Fprint(buf, "\n")
		exampleStyle.Fprint(buf, cmd.Example)
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprint(buf, "\n\n")
		titleStyle.Fprint(buf, "Flags:")
		fmt.Fprint(buf, "\n")

		raw := trimRightSpace(cmd.LocalFlags().FlagUsages())
		buf.Write(bytes.TrimRight(colorFlags(raw), "\n"))
	}

	if cmd.Flags().Lookup("enable") != nil {
		writeKinds(buf)
	}
	if cmd.Flags().Lookup("alphabet") != nil {
		writeAlphabets(buf)
	}

	fmt.Fprintln(buf)

	_, err := w.Write(buf.Bytes())
	return err
}
