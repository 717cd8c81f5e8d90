package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrTemplateNotFound = errors.New("template not found")
	ErrSkeleton         = errors.New("creating directory skeleton")
	ErrRender           = errors.New("rendering templates")
	ErrTargetExists     = errors.New("target already contains a project")
)

const DefaultDescription = "Modern web project built with toprak"

// CSSFramework selects the stylesheet variant.
type CSSFramework string

const (
	CSSTailwind CSSFramework = "tailwind"
	CSSNone     CSSFramework = "none"
)

// TailwindVersion is the framework release the generated configs target.
const TailwindVersion = "3.4.1"

func ParseCSSFramework(s string) (CSSFramework, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tailwind", "tailwindcss":
		return CSSTailwind, nil
	case "none", "plain", "css", "":
		return CSSNone, nil
	default:
		return "", fmt.Errorf("%w: unknown css framework %q (expected tailwind or none)", ErrInvalidConfig, s)
	}
}

func (c CSSFramework) DisplayName() string {
	switch c {
	case CSSTailwind:
		return "TailwindCSS"
	default:
		return "Plain CSS"
	}
}

func (c CSSFramework) IsFramework() bool {
	return c == CSSTailwind
}

func (c *CSSFramework) UnmarshalText(text []byte) error {
	parsed, err := ParseCSSFramework(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c CSSFramework) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

type GitConfig struct {
	Init   bool   `toml:"init" yaml:"init" json:"init"`
	Remote string `toml:"remote" yaml:"remote" json:"remote"`
	Push   bool   `toml:"push" yaml:"push" json:"push"`
}

// Config is the set of answers a project is materialized from.
type Config struct {
	ProjectName string       `toml:"name" yaml:"name" json:"name"`
	Description string       `toml:"description" yaml:"description" json:"description"`
	TypeScript  bool         `toml:"typescript" yaml:"typescript" json:"typescript"`
	CSS         CSSFramework `toml:"css" yaml:"css" json:"css"`
	Markdown    bool         `toml:"markdown" yaml:"markdown" json:"markdown"`
	Includes    bool         `toml:"includes" yaml:"includes" json:"includes"`
	Git         GitConfig    `toml:"git" yaml:"git" json:"git"`
}

// DefaultConfig mirrors the defaults offered by the interactive prompt.
func DefaultConfig(name string) Config {
	return Config{
		ProjectName: name,
		Description: DefaultDescription,
		TypeScript:  true,
		CSS:         CSSTailwind,
		Includes:    true,
		Git:         GitConfig{Init: true},
	}
}

// Normalize fills derived fields. The markdown homepage is laid out by the
// shared includes, so it forces them on.
func (c Config) Normalize() Config {
	c.Git.Remote = strings.TrimSpace(c.Git.Remote)
	if strings.TrimSpace(c.Description) == "" {
		c.Description = DefaultDescription
	}
	if parsed, err := ParseCSSFramework(string(c.CSS)); err == nil {
		c.CSS = parsed
	}
	if c.Markdown {
		c.Includes = true
	}
	return c
}

func (c Config) Validate() error {
	name := c.ProjectName
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: project name is required", ErrInvalidConfig)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: project name %q has leading or trailing whitespace", ErrInvalidConfig, name)
	case name == "." || name == "..":
		return fmt.Errorf("%w: project name %q is not a directory name", ErrInvalidConfig, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: project name %q must not contain path separators", ErrInvalidConfig, name)
	}

	if c.CSS != CSSTailwind && c.CSS != CSSNone {
		return fmt.Errorf("%w: unknown css framework %q", ErrInvalidConfig, c.CSS)
	}
	if c.Git.Remote != "" && !c.Git.Init {
		return fmt.Errorf("%w: git remote set but git init disabled", ErrInvalidConfig)
	}
	if c.Git.Push && c.Git.Remote == "" {
		return fmt.Errorf("%w: git push requires a remote", ErrInvalidConfig)
	}

	return nil
}

// TemplateFormat is the display name of the homepage format.
func (c Config) TemplateFormat() string {
	if c.Markdown {
		return "Markdown"
	}
	return "HTML"
}

// ScriptEntry is the path of the surviving script entry.
func (c Config) ScriptEntry() string {
	return c.Script().Entry
}
