package handler

import (
	"fmt"
	"html/template"
	"time"
)

// templateFuncs are the helpers shared by every page template.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// longDate renders an ISO date ("2006-01-02") as "January 2, 2006".
		"longDate": func(iso string) string {
			t, err := time.Parse("2006-01-02", iso)
			if err != nil {
				return iso
			}
			return t.Format("January 2, 2006")
		},
		// rating renders an average rating with one decimal; nil means unrated.
		"rating": func(r *float64) string {
			if r == nil {
				return "–"
			}
			return fmt.Sprintf("%.1f", *r)
		},
		// add and sub build adjacent page numbers for prev/next links.
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		// deref unwraps optional strings for templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}
