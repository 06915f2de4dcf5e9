package render

import (
	"regexp"
	"strings"
)

var (
	reBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic = regexp.MustCompile(`\*([^*\n]+)\*`)
	reLink   = regexp.MustCompile(`\[([^\]\n]*)\]\(([^)\s]*)\)`)
	reImage  = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\s]*)\)`)
)

const (
	listItemPrefix = "- "
	lineBreak      = "<br />"
)

// Convert turns the small inline markup dialect used in page content into
// HTML. Rules run in a fixed order: bold, italic, links, images, bullet
// lists, then line breaks. Malformed markup is left as literal text.
//
// Convert is not idempotent; feeding it its own output may convert twice.
func Convert(text string) string {
	if text == "" {
		return ""
	}

	out := strings.ReplaceAll(text, "\r\n", "\n")
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = convertLinks(out)
	out = reImage.ReplaceAllString(out, `<img src="$2" alt="$1" />`)
	out = convertLists(out)
	return strings.ReplaceAll(out, "\n", lineBreak)
}

// convertLinks rewrites [label](url) except when the bracket is the start of
// an image marker, which the image rule handles next.
func convertLinks(s string) string {
	matches := reLink.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(matches)*16)
	last := 0
	for _, m := range matches {
		if m[0] > 0 && s[m[0]-1] == '!' {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(`<a href="`)
		b.WriteString(s[m[4]:m[5]])
		b.WriteString(`">`)
		b.WriteString(s[m[2]:m[3]])
		b.WriteString(`</a>`)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// convertLists wraps "- " lines in <li> and groups each run of consecutive
// items into one <ul>, collapsing the run onto a single line.
func convertLists(s string) string {
	if !strings.Contains(s, listItemPrefix) {
		return s
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	var items []string

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, "<ul>"+strings.Join(items, "")+"</ul>")
		items = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, listItemPrefix) {
			items = append(items, "<li>"+strings.TrimPrefix(line, listItemPrefix)+"</li>")
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()

	return strings.Join(out, "\n")
}
