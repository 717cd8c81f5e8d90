package scaffold

// Entry maps a template key to the file it is rendered to. When is nil for
// entries emitted regardless of config.
type Entry struct {
	Key  string
	Path string
	When func(Config) bool
}

func withFramework(c Config) bool { return c.CSS.IsFramework() }
func withIncludes(c Config) bool  { return c.Includes }

// baseManifest lists every entry the renderer knows about. Both variants of
// each axis are always rendered; pruning removes the unselected one.
var baseManifest = []Entry{
	{Key: HomeHTML.Key, Path: HomeHTML.Entry},
	{Key: HomeMarkdown.Key, Path: HomeMarkdown.Entry},
	{Key: ScriptJS.Key, Path: ScriptJS.Entry},
	{Key: ScriptTS.Key, Path: ScriptTS.Entry},
	{Key: StylePlain.Key, Path: plainStyle},
	{Key: StyleFramework.Key, Path: tailwindStyle},
	{Key: "includes/base", Path: "src/_includes/base.njk", When: withIncludes},
	{Key: "includes/header", Path: "src/_includes/header.njk", When: withIncludes},
	{Key: "includes/footer", Path: "src/_includes/footer.njk", When: withIncludes},
	{Key: "config/eleventy", Path: "config/eleventy.config.js"},
	{Key: "config/eleventy-root", Path: ".eleventy.js"},
	{Key: "config/tailwind", Path: tailwindCfg, When: withFramework},
	{Key: "config/postcss", Path: postcssCfg, When: withFramework},
	{Key: "config/tsconfig", Path: TSConfigPath},
	{Key: "misc/gitignore", Path: ".gitignore"},
	{Key: "misc/readme", Path: ReadmeSource},
}

// DefaultManifest returns the entries that apply to cfg.
func DefaultManifest(cfg Config) []Entry {
	out := make([]Entry, 0, len(baseManifest))
	for _, e := range baseManifest {
		if e.When != nil && !e.When(cfg) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ManifestKeys returns every key referenced by the manifest under any config.
func ManifestKeys() []string {
	keys := make([]string, 0, len(baseManifest))
	for _, e := range baseManifest {
		keys = append(keys, e.Key)
	}
	return keys
}
