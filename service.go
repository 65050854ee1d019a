package kousei

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tassa-yoniso-manasi-karoto/go-kousei/lint"
	"github.com/tassa-yoniso-manasi-karoto/go-kousei/position"
)

// ErrNotInitialized is returned by analyses that need the tokenizer while the service
// has not been successfully initialized.
var ErrNotInitialized = errors.New("service not initialized")

// Service runs the calibration pipeline over texts. The tokenizer and the linter are
// built once by Initialize and shared by every analysis, which may run concurrently.
type Service struct {
	userDict     string
	build        TokenizerBuilder
	loadLinter   LinterLoader
	lintOpts     []lint.Option
	extra        map[string]string
	queryTimeout time.Duration
	logger       zerolog.Logger

	mu   sync.Mutex
	cell *initCell

	lintMu     sync.RWMutex
	projectDir string
	linter     lint.Engine
}

// initCell holds the outcome of the single tokenizer build.
type initCell struct {
	done      chan struct{}
	err       error
	tokenizer Tokenizer
}

// Option configures a Service
type Option func(*Service)

// WithProjectDir sets the directory searched for the lint rule file at initialization.
func WithProjectDir(dir string) Option {
	return func(s *Service) {
		s.projectDir = dir
	}
}

// WithUserDictionary loads a kagome user dictionary on top of the system dictionary.
// It has no effect together with WithTokenizerBuilder.
func WithUserDictionary(path string) Option {
	return func(s *Service) {
		s.userDict = path
	}
}

// WithTokenizerBuilder replaces the kagome tokenizer.
func WithTokenizerBuilder(fn TokenizerBuilder) Option {
	return func(s *Service) {
		s.build = fn
	}
}

// WithLinterLoader replaces how the lint engine of a project is built.
func WithLinterLoader(fn LinterLoader) Option {
	return func(s *Service) {
		s.loadLinter = fn
	}
}

// WithLintOptions are passed to lint.Load by the default linter loader.
func WithLintOptions(opts ...lint.Option) Option {
	return func(s *Service) {
		s.lintOpts = append(s.lintOpts, opts...)
	}
}

// WithSubstitutions adds kanji to kana recommendations to the built-in table.
func WithSubstitutions(extra map[string]string) Option {
	return func(s *Service) {
		s.extra = extra
	}
}

// WithQueryTimeout bounds Analyze and AnalyzeExternalLint.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.queryTimeout = d
	}
}

// WithLogger sets the logger of the service, the package Logger by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a service. It must be initialized before use.
func New(opts ...Option) *Service {
	s := &Service{
		logger: Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.build == nil {
		s.build = KagomeBuilder(s.userDict)
	}
	if s.loadLinter == nil {
		s.loadLinter = DefaultLinterLoader(s.lintOpts...)
	}
	s.logger = componentLogger(s.logger, "kousei")
	return s
}

// Initialize builds the tokenizer from the dictionary at dictionaryPath and loads the
// project lint configuration, in parallel. An empty path searches the XDG data
// directories and falls back to the embedded IPA dictionary.
//
// Concurrent and repeated calls share a single build. A tokenizer failure is final:
// every later call returns the same error. A lint configuration failure only disables
// external linting. Cancelling ctx stops waiting, not the build.
func (s *Service) Initialize(ctx context.Context, dictionaryPath string) error {
	s.mu.Lock()
	cell := s.cell
	if cell == nil {
		cell = &initCell{done: make(chan struct{})}
		s.cell = cell
		go s.initialize(context.WithoutCancel(ctx), cell, dictionaryPath)
	}
	s.mu.Unlock()

	select {
	case <-cell.done:
		return cell.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) initialize(ctx context.Context, cell *initCell, dictionaryPath string) {
	defer close(cell.done)
	start := time.Now()

	if dictionaryPath == "" {
		if path, err := DefaultDictionaryPath(); err == nil {
			dictionaryPath = path
		} else {
			s.logger.Debug().Err(err).Msg("using embedded IPA dictionary")
		}
	}

	s.lintMu.RLock()
	projectDir := s.projectDir
	s.lintMu.RUnlock()

	var engine lint.Engine
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.build(gctx, dictionaryPath)
		if err != nil {
			return fmt.Errorf("failed to build tokenizer: %w", err)
		}
		cell.tokenizer = t
		return nil
	})
	g.Go(func() error {
		engine = s.loadProjectLinter(gctx, projectDir)
		return nil
	})
	if err := g.Wait(); err != nil {
		cell.err = err
		cell.tokenizer = nil
		s.logger.Error().Err(err).Str("path", dictionaryPath).Msg("initialization failed")
		return
	}

	s.lintMu.Lock()
	// a reload that completed meanwhile wins
	if s.linter == nil {
		s.linter = engine
	}
	s.lintMu.Unlock()

	s.logger.Info().
		Str("path", dictionaryPath).
		Bool("lint", engine != nil).
		Dur("took", time.Since(start)).
		Msg("service initialized")
}

// loadProjectLinter returns nil when the project has no usable lint configuration.
func (s *Service) loadProjectLinter(ctx context.Context, dir string) lint.Engine {
	if dir == "" {
		s.logger.Debug().Msg("no project directory, external lint disabled")
		return nil
	}
	engine, err := s.loadLinter(ctx, dir)
	switch {
	case errors.Is(err, lint.ErrNoConfig):
		s.logger.Info().Str("path", dir).Msg("no lint configuration, external lint disabled")
		return nil
	case err != nil:
		s.logger.Warn().Err(err).Str("path", dir).Msg("external lint disabled")
		return nil
	}
	return engine
}

// ReloadExternalLintConfig replaces the linter with the one configured in projectPath.
// On failure external linting is disabled until the next successful reload.
func (s *Service) ReloadExternalLintConfig(ctx context.Context, projectPath string) error {
	engine, err := s.loadLinter(ctx, projectPath)

	s.lintMu.Lock()
	defer s.lintMu.Unlock()
	s.projectDir = projectPath
	if err != nil {
		s.linter = nil
		s.logger.Warn().Err(err).Str("path", projectPath).Msg("lint configuration reload failed")
		return fmt.Errorf("failed to reload lint configuration: %w", err)
	}
	s.linter = engine
	s.logger.Debug().Str("path", projectPath).Msg("lint configuration reloaded")
	return nil
}

// Ready reports whether Initialize completed successfully.
func (s *Service) Ready() bool {
	_, err := s.tokenizer()
	return err == nil
}

// LintEnabled reports whether a lint engine is loaded.
func (s *Service) LintEnabled() bool {
	s.lintMu.RLock()
	defer s.lintMu.RUnlock()
	return s.linter != nil
}

func (s *Service) tokenizer() (Tokenizer, error) {
	s.mu.Lock()
	cell := s.cell
	s.mu.Unlock()
	if cell == nil {
		return nil, ErrNotInitialized
	}
	select {
	case <-cell.done:
	default:
		return nil, fmt.Errorf("%w: initialization in progress", ErrNotInitialized)
	}
	if cell.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, cell.err)
	}
	return cell.tokenizer, nil
}

// tokenize returns the tokens of text and the mapper their offsets resolve against.
func (s *Service) tokenize(ctx context.Context, text string) (Tokens, *position.Mapper, error) {
	t, err := s.tokenizer()
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	m := position.New(text)
	return t.Tokenize(m.Text()), m, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout > 0 {
		return context.WithTimeout(ctx, s.queryTimeout)
	}
	return context.WithCancel(ctx)
}

// Tokens returns the analysis of text by the tokenizer.
func (s *Service) Tokens(ctx context.Context, text string) (Tokens, error) {
	tokens, _, err := s.tokenize(ctx, text)
	return tokens, err
}

// AnalyzeFrequency returns the content-word frequency table of text.
func (s *Service) AnalyzeFrequency(ctx context.Context, text string) ([]FrequencyResult, error) {
	tokens, _, err := s.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}
	return CountFrequency(tokens), nil
}

// AnalyzeConsistency returns the kanji that are conventionally written in kana.
func (s *Service) AnalyzeConsistency(ctx context.Context, text string) ([]Issue, error) {
	tokens, m, err := s.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}
	return DetectKanjiOpenClose(tokens, m, s.extra), nil
}

// AnalyzeParticleRepetition returns the particles repeated within a sentence.
func (s *Service) AnalyzeParticleRepetition(ctx context.Context, text string) ([]Issue, error) {
	tokens, m, err := s.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}
	return DetectParticleRepetition(tokens, m), nil
}

// AnalyzeExternalLint lints text with the project configuration. It fails with
// ErrNotInitialized until Initialize has succeeded. Afterwards a missing or failing
// linter yields no issues; the error is only logged.
func (s *Service) AnalyzeExternalLint(ctx context.Context, text string, settings Settings) ([]Issue, error) {
	if _, err := s.tokenizer(); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.externalLint(ctx, text, settings.Rules), nil
}

func (s *Service) externalLint(ctx context.Context, text string, rules map[string]bool) []Issue {
	s.lintMu.RLock()
	defer s.lintMu.RUnlock()
	if s.linter == nil {
		return []Issue{}
	}

	diags, err := runLinter(ctx, s.linter, position.StripBOM(text), rules)
	if err != nil {
		s.logger.Warn().Err(err).Msg("external lint failed")
		return []Issue{}
	}
	return DiagnosticsToIssues(diags, rules)
}

// Analyze runs the frequency counter and the checks enabled by settings. External lint
// runs concurrently with the tokenizer-based checks and never fails the call.
func (s *Service) Analyze(ctx context.Context, text string, settings Settings) (*Result, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tokens, m, err := s.tokenize(ctx, text)
	if err != nil {
		return nil, err
	}

	var lintIssues []Issue
	var g errgroup.Group
	if settings.Textlint {
		g.Go(func() error {
			lintIssues = s.externalLint(ctx, text, settings.Rules)
			return nil
		})
	}

	result := &Result{
		Frequency: CountFrequency(tokens),
		Issues:    []Issue{},
	}
	if settings.KanjiOpenClose {
		result.Issues = append(result.Issues, DetectKanjiOpenClose(tokens, m, s.extra)...)
	}
	_ = g.Wait()
	result.Issues = append(result.Issues, lintIssues...)
	if settings.ParticleRepetition {
		result.Issues = append(result.Issues, DetectParticleRepetition(tokens, m)...)
	}
	result.Issues = uniqueIDs(result.Issues)

	s.logger.Trace().
		Int("tokens", len(tokens)).
		Int("issues", len(result.Issues)).
		Msg("analysis done")
	return result, nil
}
