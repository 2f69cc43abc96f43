package commands

import "strings"

// maxSuggestions caps how many hints Suggest returns.
const maxSuggestions = 3

// suggestionEntry maps known misspellings and abbreviations of a command's
// first word to the usage hint shown for it.
type suggestionEntry struct {
	typos []string
	hint  string
}

// suggestionTable is consulted in order; only the first whitespace token of
// the unrecognized input is checked.
var suggestionTable = []suggestionEntry{
	{typos: []string{"opn", "ope"}, hint: "open <application>"},
	{typos: []string{"cls", "cloe"}, hint: "close <application>"},
	{typos: []string{"shut", "shutdwn"}, hint: "shutdown"},
	{typos: []string{"rest", "restrt"}, hint: "restart"},
	{typos: []string{"serch", "serh"}, hint: "search <query>"},
	{typos: []string{"tim"}, hint: "time"},
	{typos: []string{"dat"}, hint: "date"},
}

// Suggest returns up to three usage hints for unrecognized input, based on a
// fixed table of known misspellings of the first token. The result is
// advisory text only and must never be treated as a resolved intent. A fully
// unmatched input yields an empty slice.
func Suggest(text string) []string {
	fields := strings.Fields(Normalize(text))
	if len(fields) == 0 {
		return nil
	}

	first := fields[0]
	var suggestions []string
	for _, entry := range suggestionTable {
		for _, typo := range entry.typos {
			if first == typo {
				suggestions = append(suggestions, entry.hint)
				break
			}
		}
		if len(suggestions) == maxSuggestions {
			break
		}
	}

	return suggestions
}
