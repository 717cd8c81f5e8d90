package scaffold

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9._~-]+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

const fallbackPackageName = "project"

// PackageName derives an npm-safe package name from a project name. The
// project name itself is kept verbatim everywhere else.
func PackageName(projectName string) string {
	s := strings.ToLower(strings.TrimSpace(projectName))
	s = strings.ReplaceAll(s, "_", "-")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = strings.TrimLeft(s, "._")
	if len(s) > 214 {
		s = strings.TrimRight(s[:214], "-")
	}
	if s == "" {
		return fallbackPackageName
	}
	return s
}

// DisplayName turns a directory-style project name into a human title,
// "my-site" becomes "My Site".
func DisplayName(projectName string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(strings.TrimSpace(projectName))
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "My Site"
	}
	return cases.Title(language.English).String(name)
}
