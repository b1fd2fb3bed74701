package opf

import "strings"

// Vocabulary is a base URI namespace under which bare property suffixes are
// resolved. EPUB 3 reserves a fixed set of vocabularies and prefixes for
// package metadata; additional prefixes may be declared on the <package>
// element's prefix attribute.
type Vocabulary string

// Reserved vocabularies defined by the EPUB 3 packages specification, plus
// the de-facto Calibre namespace found in converted files.
const (
	VocabularyMeta      Vocabulary = "http://idpf.org/epub/vocab/package/meta/#"
	VocabularyLink      Vocabulary = "http://idpf.org/epub/vocab/package/link/#"
	VocabularyItem      Vocabulary = "http://idpf.org/epub/vocab/package/item/#"
	VocabularyItemref   Vocabulary = "http://idpf.org/epub/vocab/package/itemref/#"
	VocabularyRendition Vocabulary = "http://www.idpf.org/vocab/rendition/#"
	VocabularyMedia     Vocabulary = "http://www.idpf.org/epub/vocab/overlays/#"
	VocabularyA11Y      Vocabulary = "http://www.idpf.org/epub/vocab/package/a11y/#"
	VocabularyDCTerms   Vocabulary = "http://purl.org/dc/terms/"
	VocabularyMARC      Vocabulary = "http://id.loc.gov/vocabulary/"
	VocabularyONIX      Vocabulary = "http://www.editeur.org/ONIX/book/codelists/current.html#"
	VocabularySchema    Vocabulary = "http://schema.org/"
	VocabularyXSD       Vocabulary = "http://www.w3.org/2001/XMLSchema#"
	VocabularyCalibre   Vocabulary = "https://calibre-ebook.com/"
)

// reservedPrefixes maps the prefixes reserved by the packages specification
// (which need no declaration) to their vocabularies. Declared prefixes are
// merged over this table, so a package may legally re-map a reserved prefix.
var reservedPrefixes = map[string]Vocabulary{
	"dcterms":   VocabularyDCTerms,
	"media":     VocabularyMedia,
	"rendition": VocabularyRendition,
	"a11y":      VocabularyA11Y,
	"marc":      VocabularyMARC,
	"onix":      VocabularyONIX,
	"schema":    VocabularySchema,
	"xsd":       VocabularyXSD,
	"calibre":   VocabularyCalibre,
}

// ReservedPrefixes returns a fresh copy of the reserved prefix table,
// suitable as the base prefix map for ResolveProperty. ParsePackage merges
// declared prefixes over this table automatically.
func ReservedPrefixes() map[string]Vocabulary {
	out := make(map[string]Vocabulary, len(reservedPrefixes))
	for name, vocab := range reservedPrefixes {
		out[name] = vocab
	}
	return out
}

// ResolveProperty maps a possibly-prefixed property token (e.g.
// "dcterms:modified" or "layout") to a fully-qualified property identifier.
//
// A token whose prefix is found in prefixes resolves to the prefix's base URI
// plus the suffix. A token with no colon, or with an unregistered prefix,
// resolves against defaultVocab instead. When defaultVocab is empty the
// token must carry a registered prefix to resolve at all; this is the strict
// mode used for meta scheme attributes.
//
// The boolean result is false when the token is empty after trimming or
// cannot be resolved. The property suffix is case-sensitive.
func ResolveProperty(token string, prefixes map[string]Vocabulary, defaultVocab Vocabulary) (string, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}

	if prefix, suffix, ok := strings.Cut(token, ":"); ok {
		if base, found := prefixes[prefix]; found {
			return string(base) + suffix, true
		}
	}

	if defaultVocab == "" {
		return "", false
	}
	return string(defaultVocab) + token, true
}

// Fully-qualified identifiers for the properties the adapter consumes.
const (
	propDCIdentifier  = string(VocabularyDCTerms) + "identifier"
	propDCLanguage    = string(VocabularyDCTerms) + "language"
	propDCTitle       = string(VocabularyDCTerms) + "title"
	propDCCreator     = string(VocabularyDCTerms) + "creator"
	propDCContributor = string(VocabularyDCTerms) + "contributor"
	propDCPublisher   = string(VocabularyDCTerms) + "publisher"
	propDCSubject     = string(VocabularyDCTerms) + "subject"
	propDCDate        = string(VocabularyDCTerms) + "date"
	propDCModified    = string(VocabularyDCTerms) + "modified"
	propDCDescription = string(VocabularyDCTerms) + "description"

	propFileAs              = string(VocabularyMeta) + "file-as"
	propRole                = string(VocabularyMeta) + "role"
	propTitleType           = string(VocabularyMeta) + "title-type"
	propDisplaySeq          = string(VocabularyMeta) + "display-seq"
	propAlternateScript     = string(VocabularyMeta) + "alternate-script"
	propBelongsToCollection = string(VocabularyMeta) + "belongs-to-collection"
	propCollectionType      = string(VocabularyMeta) + "collection-type"
	propGroupPosition       = string(VocabularyMeta) + "group-position"
	propAuthority           = string(VocabularyMeta) + "authority"
	propTerm                = string(VocabularyMeta) + "term"

	propNarrator = string(VocabularyMedia) + "narrator"

	propFlow        = string(VocabularyRendition) + "flow"
	propLayout      = string(VocabularyRendition) + "layout"
	propOrientation = string(VocabularyRendition) + "orientation"
	propSpread      = string(VocabularyRendition) + "spread"

	// Calibre legacy metas keep their literal name attribute as property.
	propCalibreSeries      = "calibre:series"
	propCalibreSeriesIndex = "calibre:series_index"
	propCalibreTitleSort   = "calibre:title_sort"
)
