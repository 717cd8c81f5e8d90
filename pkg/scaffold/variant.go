package scaffold

// Axis is one of the independent choices that pruning resolves to a single file.
type Axis string

const (
	AxisScript Axis = "script"
	AxisHome   Axis = "home"
	AxisStyle  Axis = "style"
)

// Rename moves a selected variant's output to its canonical name.
type Rename struct {
	From string
	To   string
}

// Variant is one option on an axis. Owns lists every output that exists only
// for this variant and is deleted when another variant is selected.
type Variant struct {
	Axis   Axis
	Name   string
	Key    string
	Entry  string
	Owns   []string
	Rename *Rename
}

const (
	StyleEntry    = "src/styles/input.css"
	ReadmeSource  = "README.md.template"
	ReadmeTarget  = "README.md"
	TSConfigPath  = "tsconfig.json"
	tailwindCfg   = "config/tailwind.config.js"
	postcssCfg    = "config/postcss.config.js"
	tailwindStyle = "src/styles/tailwind.css"
	plainStyle    = "src/styles/plain.css"
)

var (
	ScriptTS = Variant{
		Axis:  AxisScript,
		Name:  "ts",
		Key:   "ts/main",
		Entry: "src/scripts/main.ts",
		Owns:  []string{"src/scripts/main.ts", TSConfigPath},
	}
	ScriptJS = Variant{
		Axis:  AxisScript,
		Name:  "js",
		Key:   "js/main",
		Entry: "src/scripts/main.js",
		Owns:  []string{"src/scripts/main.js"},
	}

	HomeMarkdown = Variant{
		Axis:  AxisHome,
		Name:  "markdown",
		Key:   "markdown/index",
		Entry: "src/index.md",
		Owns:  []string{"src/index.md"},
	}
	HomeHTML = Variant{
		Axis:  AxisHome,
		Name:  "html",
		Key:   "html/index",
		Entry: "src/index.html",
		Owns:  []string{"src/index.html"},
	}

	StyleFramework = Variant{
		Axis:   AxisStyle,
		Name:   "tailwind",
		Key:    "css/tailwind",
		Entry:  StyleEntry,
		Owns:   []string{tailwindStyle, tailwindCfg, postcssCfg},
		Rename: &Rename{From: tailwindStyle, To: StyleEntry},
	}
	StylePlain = Variant{
		Axis:   AxisStyle,
		Name:   "plain",
		Key:    "css/plain",
		Entry:  StyleEntry,
		Owns:   []string{plainStyle},
		Rename: &Rename{From: plainStyle, To: StyleEntry},
	}
)

// Axes lists every axis with its variants, in pruning order.
func Axes() [][]Variant {
	return [][]Variant{
		{ScriptTS, ScriptJS},
		{HomeMarkdown, HomeHTML},
		{StyleFramework, StylePlain},
	}
}

func (c Config) Script() Variant {
	if c.TypeScript {
		return ScriptTS
	}
	return ScriptJS
}

func (c Config) Home() Variant {
	if c.Markdown {
		return HomeMarkdown
	}
	return HomeHTML
}

func (c Config) Style() Variant {
	if c.CSS.IsFramework() {
		return StyleFramework
	}
	return StylePlain
}

// Selected returns the chosen variant on the given axis.
func (c Config) Selected(axis Axis) Variant {
	switch axis {
	case AxisScript:
		return c.Script()
	case AxisHome:
		return c.Home()
	default:
		return c.Style()
	}
}
