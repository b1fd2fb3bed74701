package opf

// Link is a metadata <link> declaration: a reference to an external
// resource carrying metadata about the publication or about another
// expression. Links are constructed once per parse and immutable
// thereafter.
type Link struct {
	// Href is the link target, normalized to an absolute-within-package
	// path relative to the package document.
	Href string

	// Rels holds the resolved rel keywords, document order, de-duplicated.
	Rels []string

	// MediaType is the declared media type, possibly empty.
	MediaType string

	// Refines is the id of the expression this link annotates, or "".
	Refines string

	// Properties holds the resolved properties keywords.
	Properties []string
}
