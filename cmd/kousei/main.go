// Command kousei prints the style issues and the word frequencies of a Japanese text.
//
//	kousei [flags] [file]
//
// The text is read from stdin when no file is given.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gookit/color"
	"github.com/k0kubun/pp"
	"github.com/rs/zerolog"
	"github.com/tidwall/pretty"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei"
	"github.com/tassa-yoniso-manasi-karoto/go-kousei/lint"
)

func main() {
	var (
		dictPath    = flag.String("dict", "", "kagome dictionary archive (default: XDG data dirs, then the embedded IPA dictionary)")
		userDict    = flag.String("userdict", "", "kagome user dictionary (CSV)")
		substPath   = flag.String("subst", "", "extra kanji,kana substitutions (CSV)")
		project     = flag.String("project", "", "project directory holding the textlint configuration (default: directory of the file)")
		format      = flag.String("format", "text", "output format: text or json")
		top         = flag.Int("top", 10, "number of frequency entries in the text report")
		particles   = flag.Bool("particles", false, "report particles repeated within a sentence")
		noTextlint  = flag.Bool("no-textlint", false, "disable the project lint rules")
		noKanji     = flag.Bool("no-kanji", false, "disable kanji open/close recommendations")
		textlintBin = flag.String("textlint-bin", "", "run this textlint executable instead of the built-in rules")
		timeout     = flag.Duration("timeout", time.Minute, "analysis timeout")
		wakati      = flag.Bool("wakati", false, "print the text segmented into words and exit")
		debug       = flag.Bool("debug", false, "debug logging and token dump")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()
	kousei.Logger = logger
	lint.Logger = logger.With().Str("component", "lint").Logger()

	text, err := readInput(flag.Arg(0))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read input")
	}

	dir := *project
	if dir == "" {
		dir = inputDir(flag.Arg(0))
	}
	opts := []kousei.Option{
		kousei.WithProjectDir(dir),
		kousei.WithUserDictionary(*userDict),
		kousei.WithQueryTimeout(*timeout),
	}
	if *textlintBin != "" {
		opts = append(opts, kousei.WithLintOptions(lint.WithCommand(*textlintBin)))
	}
	if *substPath != "" {
		extra, err := kousei.LoadSubstitutions(*substPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load substitutions")
		}
		opts = append(opts, kousei.WithSubstitutions(extra))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc := kousei.New(opts...)
	if err := svc.Initialize(ctx, *dictPath); err != nil {
		logger.Fatal().Err(err).Msg("initialization failed")
	}

	if *debug || *wakati {
		tokens, err := svc.Tokens(ctx, text)
		if err != nil {
			logger.Fatal().Err(err).Msg("tokenization failed")
		}
		if *wakati {
			fmt.Println(tokens.Wakati())
			return
		}
		logger.Debug().Str("wakati", tokens.Wakati()).Int("tokens", len(tokens)).Msg("tokenized")
		pp.Fprintln(os.Stderr, tokens)
	}

	settings := kousei.Settings{
		Textlint:           !*noTextlint,
		KanjiOpenClose:     !*noKanji,
		ParticleRepetition: *particles,
	}
	result, err := svc.Analyze(ctx, text, settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("analysis failed")
	}

	switch *format {
	case "json":
		data, err := json.Marshal(result)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to encode result")
		}
		os.Stdout.Write(pretty.Pretty(data))
	case "text":
		printReport(os.Stdout, result, *top)
	default:
		logger.Fatal().Str("format", *format).Msg("unknown output format")
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func inputDir(path string) string {
	if path == "" || path == "-" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.Dir(abs)
	}
	return filepath.Dir(path)
}

var issueColors = map[kousei.IssueType]color.Color{
	kousei.IssueParticleRepetition: color.Magenta,
	kousei.IssueConsistency:        color.Cyan,
	kousei.IssueKanjiOpenClose:     color.Cyan,
	kousei.IssueTextlint:           color.Yellow,
}

func printReport(w io.Writer, result *kousei.Result, top int) {
	if len(result.Issues) == 0 {
		fmt.Fprintln(w, color.Green.Sprint("no issues"))
	}
	for _, issue := range result.Issues {
		r := issue.Range
		line := fmt.Sprintf("%s %s %s",
			color.Gray.Sprintf("%d:%d", r.StartLine, r.StartColumn),
			issueColors[issue.Type].Sprint(issue.Type),
			issue.Message)
		if issue.Suggestion != "" {
			line += color.Green.Sprintf(" → %s", issue.Suggestion)
		}
		fmt.Fprintln(w, line)
	}

	if len(result.Frequency) == 0 || top <= 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, color.Bold.Sprint("frequency"))
	for i, f := range result.Frequency {
		if i == top {
			break
		}
		fmt.Fprintf(w, "%4d  %s %s\n", f.Count, f.Word, color.Gray.Sprint(f.POS))
	}
}
