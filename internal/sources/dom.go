package sources

import (
	"strings"

	"golang.org/x/net/html"
)

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func hasClassContaining(n *html.Node, substr string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	return strings.Contains(v, substr)
}

// textContent returns the visible text under n, with script and style
// subtrees excluded.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.ElementNode && (m.Data == "script" || m.Data == "style") {
			return
		}
		if m.Type == html.TextNode {
			sb.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// findAll walks doc in document order and returns every node for which
// match returns true.
func findAll(doc *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// findFirst returns the first node matching match in document order, or
// nil.
func findFirst(doc *html.Node, match func(*html.Node) bool) *html.Node {
	all := findAll(doc, match)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func byTag(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag }
}

func byTagAndClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == tag && hasClass(n, class) }
}

func byTagAndID(tag, id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return n.Data == tag && ok && v == id
	}
}

// findMeta returns the content attribute of <meta name="name" ...>.
func findMeta(doc *html.Node, name string) (string, bool) {
	metas := findAll(doc, byTag("meta"))
	for _, m := range metas {
		if v, ok := attr(m, "name"); ok && v == name {
			if c, ok := attr(m, "content"); ok {
				return c, true
			}
		}
		if v, ok := attr(m, "property"); ok && v == name {
			if c, ok := attr(m, "content"); ok {
				return c, true
			}
		}
	}
	return "", false
}

// firstTable returns the first descendant <table> of n, or n itself if n
// is already a table.
func firstTable(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	return findFirst(n, byTag("table"))
}
