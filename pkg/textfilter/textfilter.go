// Package textfilter normalizes content-table identifiers into
// player-facing display text.
package textfilter

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// displayOverrides holds names whose spelling plain title-casing gets
// wrong.
var displayOverrides = map[string]string{
	"mountdoom":      "Mount Doom",
	"amonhen":        "Amon Hen",
	"emynmuil":       "Emyn Muil",
	"deadmarshes":    "The Dead Marshes",
	"blackgate":      "The Black Gate",
	"cirithungol":    "Cirith Ungol",
	"trollshaws":     "The Trollshaws",
	"caradhras_pass": "The Pass of Caradhras",
}

// DisplayName turns a snake_case content key into display text:
// "west_gate_of_moria" becomes "West Gate Of Moria". Known irregular
// names are spelled from the override table.
func DisplayName(key string) string {
	if name, ok := displayOverrides[key]; ok {
		return name
	}
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}
