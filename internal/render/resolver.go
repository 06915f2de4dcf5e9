package render

import "strings"

// Built-in token names with a hard-coded fallback value.
const (
	TokenCompanyName  = "company_name"
	TokenCategoryName = "category_name"
	TokenCountry      = "country"
	TokenCity         = "city"
	TokenCurrency     = "currency"
	TokenPrice        = "price"
	TokenCourseCount  = "course_count"
)

// DefaultCompanyName is used for company_name when the site has no name configured.
const DefaultCompanyName = "Prince2Cert"

var builtinDefaults = map[string]string{
	TokenCompanyName:  DefaultCompanyName,
	TokenCategoryName: "Prince2",
	TokenCountry:      "United States",
	TokenCity:         "New York",
	TokenCurrency:     "$",
	TokenPrice:        "2,499",
	TokenCourseCount:  "25+",
}

// SiteInfo is the slice of site-wide settings the renderer is allowed to see.
// It is passed in explicitly instead of being read from ambient state.
type SiteInfo struct {
	Name string
}

// Context carries every variable source for one render call.
type Context struct {
	Site      SiteInfo
	Globals   map[string]string
	Overrides map[string]string
}

// Defaults returns a copy of the built-in fallback table. A configured site
// name replaces the company_name fallback.
func Defaults(site SiteInfo) map[string]string {
	out := make(map[string]string, len(builtinDefaults))
	for name, value := range builtinDefaults {
		out[name] = value
	}
	if name := strings.TrimSpace(site.Name); name != "" {
		out[TokenCompanyName] = name
	}
	return out
}

// Resolve merges defaults, stored globals and render-scoped overrides into a
// single mapping. Later layers win; names missing from every layer are absent.
func Resolve(ctx Context) map[string]string {
	return Merge(Defaults(ctx.Site), ctx.Globals, ctx.Overrides)
}

// Merge flattens layers given in ascending precedence. Keys may be bare names
// or delimited markers; both collapse to the bare name.
func Merge(layers ...map[string]string) map[string]string {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}

	out := make(map[string]string, size)
	for _, layer := range layers {
		for key, value := range layer {
			name := TokenName(key)
			if name == "" {
				continue
			}
			out[name] = value
		}
	}
	return out
}

// TokenName strips surrounding marker delimiters and whitespace from key.
func TokenName(key string) string {
	name := strings.TrimSpace(key)
	if strings.HasPrefix(name, "{{") && strings.HasSuffix(name, "}}") && len(name) >= 4 {
		name = strings.TrimSpace(name[2 : len(name)-2])
	}
	return name
}

// Marker returns the delimited form of a bare token name.
func Marker(name string) string {
	return "{{" + TokenName(name) + "}}"
}
