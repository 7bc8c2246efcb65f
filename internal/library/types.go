package library

import "strings"

// friendlyTypes maps human-friendly item-type names to the canonical type
// names the store understands. Lookup is case-insensitive.
var friendlyTypes = map[string]string{
	"article":      "journalArticle",
	"journal":      "journalArticle",
	"paper":        "journalArticle",
	"preprint":     "preprint",
	"blog":         "blogPost",
	"blogpost":     "blogPost",
	"book":         "book",
	"chapter":      "bookSection",
	"conference":   "conferencePaper",
	"thesis":       "thesis",
	"report":       "report",
	"webpage":      "webpage",
	"web":          "webpage",
	"website":      "webpage",
	"news":         "newspaperArticle",
	"newspaper":    "newspaperArticle",
	"magazine":     "magazineArticle",
	"video":        "videoRecording",
	"podcast":      "podcast",
	"presentation": "presentation",
	"software":     "computerProgram",
	"manuscript":   "manuscript",
}

// ResolveItemType maps a friendly type name to its canonical form. Unknown
// names pass through unchanged — they are treated as already-canonical and
// left for the store to validate.
func ResolveItemType(name string) string {
	if canonical, ok := friendlyTypes[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}
