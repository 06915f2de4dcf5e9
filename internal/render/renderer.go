// Package render implements the variable-substitution pipeline used to turn
// stored page content into a displayable document: resolve variables,
// substitute {{token}} markers, convert inline markup.
//
// Everything here is a pure function of its inputs. Loading pages, loading
// variables and persisting view counts belong to the caller.
package render

// Page is the snapshot of a stored page the renderer reads from.
type Page struct {
	Title       string
	Heading     string
	Description string
	Content     string
	Views       int
}

// Document is the rendered form of a Page.
type Document struct {
	Title       string
	Heading     string
	Description string
	// Body is the converted content. It is empty when the page has no content.
	Body string
	// Unresolved lists markers left in the content because no layer defined them.
	Unresolved []string
}

// Stages exposes the intermediate results of the pipeline for preview tools.
type Stages struct {
	Variables   map[string]string
	Substituted string
	Converted   string
	Unresolved  []string
}

// Render resolves variables for ctx, substitutes them into the page and
// converts the body. It returns the document and the view count the caller
// should persist, which is always page.Views+1.
func Render(page Page, ctx Context) (Document, int) {
	mapping := Resolve(ctx)

	doc := Document{
		Title:       Substitute(page.Title, mapping),
		Heading:     Substitute(page.Heading, mapping),
		Description: Substitute(page.Description, mapping),
	}
	if page.Content != "" {
		substituted := Substitute(page.Content, mapping)
		doc.Body = Convert(substituted)
		doc.Unresolved = Unresolved(page.Content, mapping)
	}

	views := page.Views
	if views < 0 {
		views = 0
	}
	return doc, views + 1
}

// Pipeline runs resolve, substitute and convert over raw text and keeps every
// intermediate value.
func Pipeline(raw string, ctx Context) Stages {
	mapping := Resolve(ctx)
	substituted := Substitute(raw, mapping)
	return Stages{
		Variables:   mapping,
		Substituted: substituted,
		Converted:   Convert(substituted),
		Unresolved:  Unresolved(raw, mapping),
	}
}
