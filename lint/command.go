package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/tidwall/pretty"
)

const (
	// DefaultTimeout bounds one run of the textlint executable.
	DefaultTimeout = 30 * time.Second

	// DefaultStdinFilename makes textlint treat the input as Markdown.
	DefaultStdinFilename = "manuscript.md"
)

// Command lints through an external textlint executable. It runs in the directory of
// the rule file so that textlint resolves the project's node_modules.
type Command struct {
	Bin           string
	Config        *Config
	Timeout       time.Duration
	StdinFilename string
}

type textlintResult struct {
	FilePath string       `json:"filePath"`
	Messages []Diagnostic `json:"messages"`
}

// Lint implements Engine.
func (c *Command) Lint(ctx context.Context, text string) ([]Diagnostic, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := c.args()
	cmd := exec.CommandContext(ctx, c.Bin, args...)
	cmd.Dir = c.Config.Dir()
	cmd.Stdin = bytes.NewBufferString(text)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	line := shellescape.QuoteCommand(append([]string{c.Bin}, args...))
	Logger.Debug().Str("command", line).Str("dir", cmd.Dir).Msg("running textlint")

	err := cmd.Run()
	if stderr.Len() > 0 {
		newStderrConsumer("textlint").Err(c.Bin, stderr.String())
	}
	if err != nil {
		var exitErr *exec.ExitError
		// exit status 1 means lint errors were found
		if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 || stdout.Len() == 0 {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("textlint interrupted: %w", ctx.Err())
			}
			return nil, fmt.Errorf("textlint failed: %w", err)
		}
	}

	diags, err := parseReport(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	return diags, nil
}

func (c *Command) args() []string {
	name := c.StdinFilename
	if name == "" {
		name = DefaultStdinFilename
	}
	args := []string{"--format", "json", "--stdin", "--stdin-filename", name}
	if c.Config != nil && c.Config.Path != "" {
		args = append(args, "--config", c.Config.Path)
	}
	return args
}

// parseReport decodes the output of textlint's json formatter. Anything printed before
// the JSON array, such as package manager notices, is ignored.
func parseReport(output []byte) ([]Diagnostic, error) {
	start := bytes.IndexByte(output, '[')
	if start < 0 {
		return nil, fmt.Errorf("no JSON report in textlint output: %q", truncate(output, 200))
	}
	output = output[start:]

	var results []textlintResult
	if err := json.Unmarshal(output, &results); err != nil {
		return nil, fmt.Errorf("failed to parse textlint output: %w", err)
	}
	Logger.Trace().RawJSON("report", pretty.Ugly(output)).Msg("textlint report")

	diags := []Diagnostic{}
	for _, r := range results {
		diags = append(diags, r.Messages...)
	}
	sortDiagnostics(diags)
	return diags, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
