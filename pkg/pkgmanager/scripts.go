package pkgmanager

import (
	"fmt"

	"github.com/toprak/run/pkg/scaffold"
)

const (
	htmlMinifyFlags = "--input-dir dist --output-dir dist --file-ext html --collapse-whitespace --remove-comments " +
		"--remove-optional-tags --remove-redundant-attributes --remove-script-type-attributes --remove-tag-whitespace " +
		"--use-short-doctype --minify-css true --minify-js true"
	cssnano = "postcss ./dist/style.css --use cssnano --output ./dist/style.css"
)

// Scripts returns the npm scripts registered in package.json.
func Scripts(cfg scaffold.Config, m Manager) map[string]string {
	scripts := map[string]string{
		"build:html": "eleventy && html-minifier-terser " + htmlMinifyFlags,
	}

	if cfg.CSS.IsFramework() {
		scripts["build:css"] = fmt.Sprintf("tailwindcss -i ./%s -o ./dist/style.css --config ./config/tailwind.config.js && %s",
			scaffold.StyleEntry, cssnano)
	} else {
		scripts["build:css"] = fmt.Sprintf("cp ./%s ./dist/style.css && %s", scaffold.StyleEntry, cssnano)
	}

	js := fmt.Sprintf("esbuild %s --bundle --outfile=dist/bundle.js --minify", cfg.ScriptEntry())
	if cfg.TypeScript {
		js += " --loader:.ts=ts"
	}
	scripts["build:js"] = js

	scripts["build"] = fmt.Sprintf("%s && %s && %s", m.Run("build:css"), m.Run("build:js"), m.Run("build:html"))
	scripts["dev"] = fmt.Sprintf(`concurrently "%s --watch" "%s --watch" "eleventy --serve --watch"`,
		m.Run("build:css"), m.Run("build:js"))

	return scripts
}
