package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Hanaasagi/activelabel/cmd"
	"github.com/Hanaasagi/activelabel/internal"
	"github.com/Hanaasagi/activelabel/internal/logger"
	"github.com/Hanaasagi/activelabel/pkg/activelabel"
	"github.com/Hanaasagi/activelabel/pkg/clipboard"
)

const (
	appName     = "activelabel"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var appDir = filepath.Join(xdg.StateHome, appName)

// AppOptions holds the command line flags
type AppOptions struct {
	enabled         []string
	regexpPatterns  []string
	maxURLLength    int
	excludeMentions []string
	excludeHashtags []string
	format          string
	alphabet        string
	interactive     bool
	configPath      string
	logLevel        string
	showVersion     bool
}

// setupLogging points slog at the state directory and records crashes next to it
func setupLogging(level string) (func() error, error) {
	logLevel, err := logger.ResolveLevel(level)
	if err != nil {
		return nil, err
	}
	closeLog, err := logger.InitLogger(filepath.Join(appDir, appName+".log"), logLevel)
	if err != nil {
		return nil, err
	}

	crashFilePath := filepath.Join(appDir, "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
		f.Close() // nolint: errcheck
	}
	return closeLog, nil
}

// readInput reads the whole input from file or stdin with buffering
func readInput(inputFile string) (string, error) {
	var reader io.Reader = os.Stdin

	if inputFile != "" {
		file, err := os.Open(inputFile)
		if err != nil {
			return "", fmt.Errorf("opening input file: %w", err)
		}
		defer file.Close() // nolint: errcheck
		reader = file
	}

	data, err := io.ReadAll(bufio.NewReaderSize(reader, defaultSize))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// applyFlags overrides config file values with the flags the user set
func applyFlags(c *cobra.Command, opts *AppOptions, config *Config) {
	flags := c.Flags()
	if flags.Changed("enable") {
		config.Core.Enabled = opts.enabled
	}
	if flags.Changed("max-url-length") {
		config.Core.MaxURLLength = opts.maxURLLength
	}
	if flags.Changed("format") {
		config.Core.Format = opts.format
	}
	if flags.Changed("alphabet") {
		config.Core.Alphabet = opts.alphabet
	}
	for _, value := range opts.regexpPatterns {
		config.Regexp.Patterns = append(config.Regexp.Patterns, parsePatternFlag(value))
	}
	config.Filters.Mentions = append(config.Filters.Mentions, opts.excludeMentions...)
	config.Filters.Hashtags = append(config.Filters.Hashtags, opts.excludeHashtags...)
}

// outputFormat resolves the configured format, following the terminal when unset
func outputFormat(name string, isTerminal bool) (internal.Format, error) {
	if name != "" {
		return internal.ParseFormat(name)
	}
	if isTerminal {
		return internal.FormatColor, nil
	}
	return internal.FormatPlain, nil
}

// pick runs the interactive picker. Chosen elements fall through to the
// label's fallback handler, which collects them; they are copied to the
// clipboard once the screen is closed and then printed.
func pick(label *activelabel.Label, doc *internal.Document, palette *internal.Palette, alphabetName string, out io.Writer) error {
	alphabet, err := internal.NewBuiltinAlphabet(alphabetName)
	if err != nil {
		return err
	}

	var picked []string
	label.Handlers().SetFallback(func(text string, kind activelabel.Kind) {
		slog.Info("Element picked", "kind", kind, "text", text)
		picked = append(picked, text)
	})

	view := internal.NewView(label, doc, palette, alphabet)
	if len(view.Present()) == 0 {
		return nil
	}

	clip := clipboard.New()
	for _, text := range picked {
		if err := clip.Copy(text); err != nil {
			slog.Warn("Failed to copy to clipboard", "error", err)
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
	return nil
}

// runApp runs the main application logic
func runApp(c *cobra.Command, opts *AppOptions, args []string) error {
	if opts.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return nil
	}

	closeLog, err := setupLogging(opts.logLevel)
	if err != nil {
		return err
	}
	defer closeLog() // nolint: errcheck

	configPath := opts.configPath
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	config, err := LoadConfigFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", configPath, err)
	}
	applyFlags(c, opts, config)

	parseConfig, err := config.ParseConfig()
	if err != nil {
		return err
	}
	palette, err := internal.NewPalette(config.Colors)
	if err != nil {
		return err
	}

	var inputFile string
	if len(args) > 0 {
		inputFile = args[0]
	}
	raw, err := readInput(inputFile)
	if err != nil {
		return err
	}

	doc := internal.ProcessText(raw)
	label := activelabel.NewLabel(nil).Customize(func(l *activelabel.Label) {
		l.SetConfig(parseConfig)
		l.SetText(doc.Text)
	})
	slog.Debug("Input parsed", "styled", doc.HasStyledContent(), "elements", label.Elements().Len())

	if opts.interactive {
		return pick(label, doc, palette, config.Core.Alphabet, os.Stdout)
	}

	format, err := outputFormat(config.Core.Format, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return err
	}
	printer := internal.NewPrinter(os.Stdout, format, palette, parseConfig)
	return printer.Print(activelabel.Result{Text: label.Text(), Elements: label.Elements()})
}

func newRootCommand(opts *AppOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   appName + " [file]",
		Short: "Extract mentions, hashtags, URLs and more from text",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Extract mentions, hashtags, URLs and more from text. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example: "  activelabel notes.txt\n" +
			"  git log | activelabel -e mention,url -f json\n" +
			"  activelabel -i -x 'issue=#\\d+' README.md",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c, opts, args)
		},
	}

	rootCmd.Flags().StringSliceVarP(&opts.enabled, "enable", "e", nil, "Element kinds to detect (mention, hashtag, url, email, phone, address, date, timestamp)")
	rootCmd.Flags().StringArrayVarP(&opts.regexpPatterns, "regexp", "x", nil, "Extra pattern to match, as 'pattern' or 'id=pattern'")
	rootCmd.Flags().IntVar(&opts.maxURLLength, "max-url-length", 0, "Trim displayed URLs to this many characters")
	rootCmd.Flags().StringSliceVar(&opts.excludeMentions, "exclude-mention", nil, "Mention handles to ignore")
	rootCmd.Flags().StringSliceVar(&opts.excludeHashtags, "exclude-hashtag", nil, "Hashtags to ignore")
	rootCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: plain, color, json or yaml")
	rootCmd.Flags().StringVarP(&opts.alphabet, "alphabet", "a", internal.DefaultAlphabet, "Sets the hint alphabet of the picker")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Pick an element interactively")
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to the config file")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&opts.showVersion, "version", "v", false, "Print version and exit")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	if err := newRootCommand(&AppOptions{}).Execute(); err != nil {
		slog.Error("Error executing command", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
