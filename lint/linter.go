// Package lint is a configuration-driven linter for Japanese prose. Rules are enabled by
// a project rule file in the textlint format and run either in-process or through an
// external textlint installation.
package lint

import (
	"context"
	"fmt"
	"time"
)

// Engine lints a text and reports diagnostics in document order.
type Engine interface {
	Lint(ctx context.Context, text string) ([]Diagnostic, error)
}

// Overrider is implemented by engines that can switch rules on or off for a single
// call. A true entry enables a rule with its default options, a false entry disables it.
type Overrider interface {
	LintWith(ctx context.Context, text string, overrides map[string]bool) ([]Diagnostic, error)
}

type boundRule struct {
	rule Rule
	opts Options
}

// Linter runs the in-process rules enabled by a Config.
type Linter struct {
	config   *Config
	registry *Registry
	rules    []boundRule
}

// NewLinter binds the enabled rules of cfg to their implementation in reg (the
// default registry when nil). Rules without an implementation are skipped.
func NewLinter(cfg *Config, reg *Registry) *Linter {
	if reg == nil {
		reg = DefaultRegistry()
	}
	l := &Linter{config: cfg, registry: reg}
	for _, id := range cfg.Enabled() {
		rule, ok := reg.Get(id)
		if !ok {
			Logger.Warn().Str("rule", id).Msg("rule has no in-process implementation, skipped")
			continue
		}
		l.rules = append(l.rules, boundRule{rule: rule, opts: cfg.Rules[id].Options})
	}
	return l
}

// Config returns the configuration the linter was built from.
func (l *Linter) Config() *Config {
	return l.config
}

// RuleIDs returns the ids of the active rules.
func (l *Linter) RuleIDs() []string {
	ids := make([]string, len(l.rules))
	for i, b := range l.rules {
		ids[i] = b.rule.ID()
	}
	return ids
}

// Lint implements Engine.
func (l *Linter) Lint(ctx context.Context, text string) ([]Diagnostic, error) {
	return l.run(ctx, text, l.rules)
}

// LintWith implements Overrider.
func (l *Linter) LintWith(ctx context.Context, text string, overrides map[string]bool) ([]Diagnostic, error) {
	if len(overrides) == 0 {
		return l.Lint(ctx, text)
	}
	active := make([]boundRule, 0, len(l.rules))
	seen := make(map[string]bool)
	for _, b := range l.rules {
		id := b.rule.ID()
		seen[id] = true
		if enabled, ok := overrides[id]; ok && !enabled {
			continue
		}
		active = append(active, b)
	}
	for id, enabled := range overrides {
		if !enabled || seen[id] {
			continue
		}
		rule, ok := l.registry.Get(id)
		if !ok {
			Logger.Debug().Str("rule", id).Msg("cannot force unknown rule on")
			continue
		}
		active = append(active, boundRule{rule: rule})
	}
	return l.run(ctx, text, active)
}

func (l *Linter) run(ctx context.Context, text string, rules []boundRule) ([]Diagnostic, error) {
	doc := NewDocument(text)
	diags := []Diagnostic{}
	for _, b := range rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diags = append(diags, b.rule.Check(doc, b.opts)...)
	}
	sortDiagnostics(diags)
	return diags, nil
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	command       string
	registry      *Registry
	timeout       time.Duration
	stdinFilename string
}

// WithCommand makes Load return a Command running the textlint executable bin.
func WithCommand(bin string) Option {
	return func(o *loadOptions) {
		o.command = bin
	}
}

// WithRegistry sets the rule registry of the in-process linter.
func WithRegistry(r *Registry) Option {
	return func(o *loadOptions) {
		o.registry = r
	}
}

// WithTimeout bounds each run of an external command.
func WithTimeout(d time.Duration) Option {
	return func(o *loadOptions) {
		o.timeout = d
	}
}

// WithStdinFilename sets the file name textlint uses to pick a processor plugin.
func WithStdinFilename(name string) Option {
	return func(o *loadOptions) {
		o.stdinFilename = name
	}
}

// Load finds and parses the rule file of the project at dir and returns the engine
// applying it. It returns an error wrapping ErrNoConfig when the project has none.
func Load(dir string, opts ...Option) (Engine, error) {
	o := loadOptions{
		timeout:       DefaultTimeout,
		stdinFilename: DefaultStdinFilename,
	}
	for _, opt := range opts {
		opt(&o)
	}

	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load lint configuration: %w", err)
	}
	Logger.Debug().Str("path", path).Strs("rules", cfg.Enabled()).Msg("lint configuration loaded")

	if o.command != "" {
		return &Command{
			Bin:           o.command,
			Config:        cfg,
			Timeout:       o.timeout,
			StdinFilename: o.stdinFilename,
		}, nil
	}
	return NewLinter(cfg, o.registry), nil
}
