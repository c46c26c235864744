// Package builtin holds the read-only email templates shipped with the
// service. They live in the binary, not the database, and can never be
// mutated or deleted through the API.
package builtin

import (
	"embed"
	"sort"
)

//go:embed *.html
var files embed.FS

// Template describes one shipped template.
type Template struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

var descriptions = map[string]string{
	"default.html":     "Professional template with clean Google-style design",
	"celebratory.html": "Fun, energetic template for special events and hackathons",
	"corporate.html":   "Formal template for enterprise and official occasions",
}

// List enumerates the shipped templates in a stable order.
func List() []Template {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}

	out := make([]Template, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		out = append(out, Template{
			Name:        entry.Name(),
			Type:        "builtin",
			Description: Description(entry.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Read returns the HTML content of a shipped template by filename.
func Read(name string) (string, bool) {
	content, err := files.ReadFile(name)
	if err != nil {
		return "", false
	}
	return string(content), true
}

func Description(name string) string {
	if desc, ok := descriptions[name]; ok {
		return desc
	}
	return "Built-in email template"
}
