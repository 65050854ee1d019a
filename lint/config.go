package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are the rule file names looked up in a project, in order of preference.
var ConfigFiles = []string{
	".textlintrc",
	".textlintrc.json",
	".textlintrc.yml",
	".textlintrc.yaml",
}

// ErrNoConfig is returned when a project carries no rule file.
var ErrNoConfig = errors.New("no textlint configuration found")

const (
	rulePrefix   = "textlint-rule-"
	presetPrefix = "preset-"
)

// Options are the rule options found in the configuration.
type Options map[string]any

// Int returns the integer option key, or def when it is absent or not a number.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns the boolean option key, or def when it is absent.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// RuleSetting is the configured state of one rule.
type RuleSetting struct {
	Enabled bool
	Options Options
}

// Config is a parsed project rule file.
type Config struct {
	Path  string // empty for configurations built in code
	Rules map[string]RuleSetting
}

// Enabled returns the ids of the enabled rules, sorted.
func (c *Config) Enabled() []string {
	var ids []string
	for id, setting := range c.Rules {
		if setting.Enabled {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Dir returns the directory holding the rule file.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// FindConfig returns the path of the project rule file of dir. When dir has none, the
// root of the enclosing git worktree is searched too.
func FindConfig(dir string) (string, error) {
	if path, ok := lookupConfig(dir); ok {
		return path, nil
	}
	root, err := worktreeRoot(dir)
	if err != nil {
		Logger.Trace().Err(err).Str("path", dir).Msg("no git worktree around project")
		return "", fmt.Errorf("%w in %s", ErrNoConfig, dir)
	}
	if root != dir {
		if path, ok := lookupConfig(root); ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNoConfig, dir)
}

func lookupConfig(dir string) (string, bool) {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func worktreeRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// LoadConfig reads and parses the rule file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// ParseConfig decodes a rule file. Both JSON and YAML are accepted.
//
// A rule value is either a boolean or an options object, which enables the rule. A
// preset entry ("preset-…") set to an object configures the rules it names.
func ParseConfig(data []byte) (*Config, error) {
	var raw struct {
		Rules map[string]any `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}

	cfg := &Config{Rules: make(map[string]RuleSetting)}
	for key, value := range raw.Rules {
		id := normalizeRuleID(key)
		if strings.HasPrefix(id, presetPrefix) {
			if err := cfg.addPreset(id, value); err != nil {
				return nil, err
			}
			continue
		}
		setting, err := parseRuleSetting(id, value)
		if err != nil {
			return nil, err
		}
		cfg.Rules[id] = setting
	}
	return cfg, nil
}

func (c *Config) addPreset(id string, value any) error {
	switch v := value.(type) {
	case bool:
		// the preset contents are unknown in-process
		Logger.Debug().Str("rule", id).Bool("enabled", v).Msg("preset without rule list ignored")
		return nil
	case map[string]any:
		for key, ruleValue := range v {
			ruleID := normalizeRuleID(key)
			setting, err := parseRuleSetting(ruleID, ruleValue)
			if err != nil {
				return fmt.Errorf("preset %s: %w", id, err)
			}
			c.Rules[ruleID] = setting
		}
		return nil
	}
	return fmt.Errorf("preset %s: unsupported value %T", id, value)
}

func parseRuleSetting(id string, value any) (RuleSetting, error) {
	switch v := value.(type) {
	case bool:
		return RuleSetting{Enabled: v}, nil
	case map[string]any:
		return RuleSetting{Enabled: true, Options: Options(v)}, nil
	case nil:
		return RuleSetting{}, nil
	}
	return RuleSetting{}, fmt.Errorf("rule %s: unsupported value %T", id, value)
}

func normalizeRuleID(id string) string {
	return strings.TrimPrefix(id, rulePrefix)
}
