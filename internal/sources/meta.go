package sources

import "golang.org/x/net/html"

// genericContainerMeta extracts label/caption/notes from a table
// container using the common XML-ish and CSS-class name variants shared
// by several publisher dialects (<label>/.label, <caption>/.caption/"p.caption",
// <table-wrap-foot>/.tblFootnote/<tfoot>). Dialects call this first and
// then override the fields their markup names differently (HighWire's
// fetched sub-documents replace label, caption and notes from their own
// class names).
func genericContainerMeta(container *html.Node) TableMeta {
	var meta TableMeta

	if n := findFirst(container, byTag("label")); n != nil {
		meta.Label = textContent(n)
	} else if n := findFirst(container, byTagAndClass("span", "label")); n != nil {
		meta.Label = textContent(n)
	}

	if n := findFirst(container, byTag("caption")); n != nil {
		meta.Caption = textContent(n)
	} else if n := findFirst(container, byTag("title")); n != nil {
		meta.Caption = textContent(n)
	} else if n := findFirst(container, byTagAndClass("div", "caption")); n != nil {
		meta.Caption = textContent(n)
	} else if n := findFirst(container, byTagAndClass("p", "caption")); n != nil {
		meta.Caption = textContent(n)
	}

	if n := findFirst(container, byTag("table-wrap-foot")); n != nil {
		meta.Notes = textContent(n)
	} else if n := findFirst(container, byTagAndClass("div", "tblFootnote")); n != nil {
		meta.Notes = textContent(n)
	} else if n := findFirst(container, byTag("tfoot")); n != nil {
		meta.Notes = textContent(n)
	}

	return meta
}
