package services

import (
	"sort"
	"strings"
)

// aliasSampleSize bounds how many known aliases are listed in the
// application-not-found error.
const aliasSampleSize = 10

// builtinAppAliases maps friendly application names to their launch
// commands. User overrides from apps.aliases are merged over this at
// construction; the merged table is read-only afterwards.
var builtinAppAliases = map[string]string{
	"firefox":            "firefox",
	"chrome":             "google-chrome",
	"google chrome":      "google-chrome",
	"chromium":           "chromium-browser",
	"vscode":             "code",
	"visual studio code": "code",
	"terminal":           "gnome-terminal",
	"console":            "gnome-terminal",
	"files":              "nautilus",
	"file manager":       "nautilus",
	"calculator":         "gnome-calculator",
	"text editor":        "gedit",
	"gedit":              "gedit",
	"music":              "rhythmbox",
	"rhythmbox":          "rhythmbox",
	"settings":           "gnome-control-center",
	"system settings":    "gnome-control-center",
}

// AliasTable resolves friendly application names to launch commands.
type AliasTable struct {
	aliases map[string]string
}

// NewAliasTable merges user overrides over the built-in aliases. Override
// keys are lowercased so they match normalized input.
func NewAliasTable(overrides map[string]string) *AliasTable {
	aliases := make(map[string]string, len(builtinAppAliases)+len(overrides))
	for name, command := range builtinAppAliases {
		aliases[name] = command
	}
	for name, command := range overrides {
		aliases[strings.ToLower(name)] = command
	}
	return &AliasTable{aliases: aliases}
}

// Resolve returns the launch command for a friendly name.
func (t *AliasTable) Resolve(name string) (string, bool) {
	command, ok := t.aliases[name]
	return command, ok
}

// Sample returns up to n known alias names, sorted for stable output.
func (t *AliasTable) Sample(n int) []string {
	names := make([]string, 0, len(t.aliases))
	for name := range t.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > n {
		names = names[:n]
	}
	return names
}
