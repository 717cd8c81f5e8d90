package scaffold

import "strings"

const (
	TokenProjectName        = "{{PROJECT_NAME}}"
	TokenProjectDescription = "{{PROJECT_DESCRIPTION}}"
	TokenUseTypeScript      = "{{USE_TYPESCRIPT}}"
	TokenCSSFramework       = "{{CSS_FRAMEWORK}}"
	TokenTemplateFormat     = "{{TEMPLATE_FORMAT}}"
	TokenGitInit            = "{{GIT_INIT}}"
	TokenPackageManager     = "{{PACKAGE_MANAGER}}"
)

// Tokens lists every placeholder token.
var Tokens = []string{
	TokenProjectName,
	TokenProjectDescription,
	TokenUseTypeScript,
	TokenCSSFramework,
	TokenTemplateFormat,
	TokenGitInit,
	TokenPackageManager,
}

const DefaultPackageManager = "npm"

// Placeholders holds the resolved value for each token.
type Placeholders struct {
	ProjectName        string
	ProjectDescription string
	UseTypeScript      string
	CSSFramework       string
	TemplateFormat     string
	GitInit            string
	PackageManager     string
}

func Glyph(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}

func NewPlaceholders(cfg Config, packageManager string) Placeholders {
	cfg = cfg.Normalize()
	if packageManager == "" {
		packageManager = DefaultPackageManager
	}

	return Placeholders{
		ProjectName:        cfg.ProjectName,
		ProjectDescription: cfg.Description,
		UseTypeScript:      Glyph(cfg.TypeScript),
		CSSFramework:       cfg.CSS.DisplayName(),
		TemplateFormat:     cfg.TemplateFormat(),
		GitInit:            Glyph(cfg.Git.Init),
		PackageManager:     packageManager,
	}
}

// Replacer substitutes every token in a single pass. Replacement values are
// never scanned for further tokens.
func (p Placeholders) Replacer() *strings.Replacer {
	return strings.NewReplacer(
		TokenProjectName, p.ProjectName,
		TokenProjectDescription, p.ProjectDescription,
		TokenUseTypeScript, p.UseTypeScript,
		TokenCSSFramework, p.CSSFramework,
		TokenTemplateFormat, p.TemplateFormat,
		TokenGitInit, p.GitInit,
		TokenPackageManager, p.PackageManager,
	)
}

func (p Placeholders) Apply(s string) string {
	return p.Replacer().Replace(s)
}

// ContainsToken reports whether s still holds any placeholder token.
func ContainsToken(s string) bool {
	for _, t := range Tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
