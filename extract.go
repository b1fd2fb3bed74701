package opf

import (
	"fmt"
	"strings"
)

// metadataExtractor walks the direct children of a <metadata> element and
// produces a flat list of normalized items plus the link declarations.
// Malformed declarations are dropped, never fatal; drops that lose data are
// recorded as warnings.
type metadataExtractor struct {
	prefixes map[string]Vocabulary
	path     string // package document path, base for link hrefs
	lang     string // inherited xml:lang for elements without their own
	warnings []string
}

// extract dispatches each child element on its (namespace, name) pair.
func (x *metadataExtractor) extract(metadata *Element) ([]*Item, []Link) {
	var items []*Item
	var links []Link

	for _, el := range metadata.Children {
		switch {
		case el.XMLName.Space == nsDC:
			if it := x.parseDCElement(el); it != nil {
				items = append(items, it)
			}
		case el.XMLName.Space == nsOPF && el.XMLName.Local == "meta":
			if it := x.parseMeta(el); it != nil {
				items = append(items, it)
			}
		case el.XMLName.Space == nsOPF && el.XMLName.Local == "link":
			if l, ok := x.parseLink(el); ok {
				links = append(links, l)
			}
		}
	}
	return items, links
}

// parseDCElement handles Dublin Core elements. The text content becomes the
// value and the property is the Dublin Core Terms identifier for the
// element name. Elements with empty text are dropped.
func (x *metadataExtractor) parseDCElement(el *Element) *Item {
	value := el.Text()
	if value == "" {
		return nil
	}

	it := &Item{
		Property: string(VocabularyDCTerms) + el.XMLName.Local,
		Value:    value,
		Lang:     x.elementLang(el),
		ID:       el.ID(),
	}

	switch el.XMLName.Local {
	case "creator", "contributor", "publisher":
		// EPUB 2 expresses sort keys and roles as attributes; fold them
		// into the refinement shape EPUB 3 uses so the adapter sees one
		// representation.
		if fileAs := el.legacyAttr("file-as"); fileAs != "" {
			it.addChild(&Item{Property: propFileAs, Value: fileAs, Lang: it.Lang})
		}
		if role := el.legacyAttr("role"); role != "" {
			it.addChild(&Item{Property: propRole, Value: role, Lang: it.Lang})
		}
	case "date":
		if el.legacyAttr("event") == "modification" {
			it.Property = propDCModified
		}
	}
	return it
}

// parseMeta handles both <meta> shapes: the EPUB 2 name/content pair and
// the EPUB 3 property expression.
func (x *metadataExtractor) parseMeta(el *Element) *Item {
	property := strings.TrimSpace(el.Attr("property"))

	if property == "" {
		// Legacy shape. The name is kept literal, not vocabulary-resolved.
		name := strings.TrimSpace(el.Attr("name"))
		content := el.Attr("content")
		if name == "" || content == "" {
			x.warn("meta element without property is missing name or content")
			return nil
		}
		return &Item{
			Property: name,
			Value:    content,
			Lang:     x.elementLang(el),
			ID:       el.ID(),
		}
	}

	resolved, ok := ResolveProperty(property, x.prefixes, VocabularyMeta)
	if !ok {
		return nil
	}
	value := el.Text()
	if value == "" {
		x.warn(fmt.Sprintf("meta element %s has no value", property))
		return nil
	}

	it := &Item{
		Property: resolved,
		Value:    value,
		Lang:     x.elementLang(el),
		Refines:  strings.TrimPrefix(strings.TrimSpace(el.Attr("refines")), "#"),
		ID:       el.ID(),
	}
	// The scheme resolves strictly: an unregistered prefix or a bare token
	// yields no scheme rather than a default-vocabulary guess.
	if scheme := el.Attr("scheme"); scheme != "" {
		if s, ok := ResolveProperty(scheme, x.prefixes, ""); ok {
			it.Scheme = s
		}
	}
	return it
}

// parseLink handles metadata <link> elements. rel and properties are
// whitespace-tokenized and resolved against the link vocabulary; the href
// is normalized relative to the package document.
func (x *metadataExtractor) parseLink(el *Element) (Link, bool) {
	href := strings.TrimSpace(el.Attr("href"))
	if href == "" {
		x.warn("link element is missing href")
		return Link{}, false
	}
	normalized := normalizeHref(x.path, href)
	if normalized == "" {
		x.warn(fmt.Sprintf("link href %q escapes the package", href))
		return Link{}, false
	}

	return Link{
		Href:       normalized,
		Rels:       x.resolveTokens(el.Attr("rel")),
		MediaType:  strings.TrimSpace(el.Attr("media-type")),
		Refines:    strings.TrimPrefix(strings.TrimSpace(el.Attr("refines")), "#"),
		Properties: x.resolveTokens(el.Attr("properties")),
	}, true
}

// resolveTokens splits a whitespace-separated keyword list and resolves
// each token against the link vocabulary, dropping unresolved tokens and
// duplicates while preserving order.
func (x *metadataExtractor) resolveTokens(list string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(list) {
		resolved, ok := ResolveProperty(tok, x.prefixes, VocabularyLink)
		if !ok || seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out
}

// elementLang returns the element's own xml:lang, falling back to the
// language inherited from the metadata or package element.
func (x *metadataExtractor) elementLang(el *Element) string {
	if lang := el.Lang(); lang != "" {
		return lang
	}
	return x.lang
}

func (x *metadataExtractor) warn(msg string) {
	x.warnings = append(x.warnings, msg)
}
