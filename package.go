package opf

import (
	"regexp"
	"strconv"
	"strings"
)

// Package is a parsed OPF package document, reduced to what the metadata
// pipeline needs: version, identity attributes, prefix declarations, spine
// direction and the located <metadata> element.
type Package struct {
	// Version is the declared EPUB version ("2.0" when absent).
	Version string

	// UniqueIdentifierID is the IDREF of the dc:identifier element holding
	// the publication's primary identifier.
	UniqueIdentifierID string

	// Prefixes maps declared and reserved prefixes to their vocabularies.
	Prefixes map[string]Vocabulary

	// ReadingProgression is the spine's page-progression-direction.
	ReadingProgression ReadingProgression

	path     string
	lang     string // xml:lang in effect for metadata children
	metadata *Element
	warnings []string
}

// ParsePackage decodes an OPF package document. filePath is the document's
// path within the container, used to normalize link hrefs.
//
// Only decode failures and a missing <package> root are errors; everything
// inside the document is handled leniently by the later pipeline stages.
func ParsePackage(data []byte, filePath string) (*Package, error) {
	root, err := decodeElement(data)
	if err != nil {
		return nil, err
	}
	if root.XMLName.Local != "package" || root.XMLName.Space != nsOPF {
		return nil, ErrNoPackage
	}

	p := &Package{
		Version:            "2.0",
		UniqueIdentifierID: strings.TrimSpace(root.Attr("unique-identifier")),
		Prefixes:           packagePrefixes(root.Attr("prefix")),
		ReadingProgression: ReadingProgressionAuto,
		path:               filePath,
		lang:               root.Lang(),
		metadata:           root.First(nsOPF, "metadata"),
	}

	if v := strings.TrimSpace(root.Attr("version")); v != "" {
		p.Version = v
	}

	if spine := root.First(nsOPF, "spine"); spine != nil {
		switch spine.Attr("page-progression-direction") {
		case "ltr":
			p.ReadingProgression = ReadingProgressionLTR
		case "rtl":
			p.ReadingProgression = ReadingProgressionRTL
		}
	}

	if p.metadata != nil {
		if lang := p.metadata.Lang(); lang != "" {
			p.lang = lang
		}
	}

	return p, nil
}

// RawMetadata extracts the metadata items and links and resolves the
// refinement hierarchy. Returns ErrNoMetadata when the document has no
// <metadata> element; an empty metadata block yields an empty result.
func (p *Package) RawMetadata() (*RawMetadata, error) {
	if p.metadata == nil {
		return nil, ErrNoMetadata
	}

	x := &metadataExtractor{
		prefixes: p.Prefixes,
		path:     p.path,
		lang:     p.lang,
	}
	items, links := x.extract(p.metadata)
	p.warnings = append(p.warnings, x.warnings...)

	roots := resolveItemHierarchy(items)
	global, refine := partitionItems(roots)

	return &RawMetadata{
		Global: global,
		Refine: refine,
		Links:  links,
	}, nil
}

// MetadataOptions carries the caller-supplied context the adapter cannot
// derive from the package document itself.
type MetadataOptions struct {
	// FallbackTitle is used when the metadata declares no title at all.
	FallbackTitle string

	// DisplayOptions holds the legacy iBooks display options (see
	// ParseDisplayOptions), consulted for the EPUB 2 fixed-layout flag.
	DisplayOptions map[string]string
}

// Metadata parses the metadata block and adapts it into the structured
// Metadata model. Returns ErrNoMetadata when no <metadata> element exists.
func (p *Package) Metadata(opts MetadataOptions) (Metadata, error) {
	raw, err := p.RawMetadata()
	if err != nil {
		return Metadata{}, err
	}
	return AdaptMetadata(raw, AdaptOptions{
		EPUBVersion:        p.Version,
		FallbackTitle:      opts.FallbackTitle,
		UniqueIdentifierID: p.UniqueIdentifierID,
		ReadingProgression: p.ReadingProgression,
		DisplayOptions:     opts.DisplayOptions,
	}), nil
}

// Warnings returns the non-fatal anomalies recorded while parsing.
func (p *Package) Warnings() []string {
	return append([]string(nil), p.warnings...)
}

// ParseMetadata is the one-call convenience API: parse the package document
// and adapt its metadata in a single step.
func ParseMetadata(data []byte, filePath string, opts MetadataOptions) (Metadata, error) {
	p, err := ParsePackage(data, filePath)
	if err != nil {
		return Metadata{}, err
	}
	return p.Metadata(opts)
}

// prefixPattern matches one "name: URI" pair in a prefix attribute.
var prefixPattern = regexp.MustCompile(`([A-Za-z][\w.-]*):\s+(\S+)`)

// packagePrefixes merges the prefix declarations from the package element's
// prefix attribute over the reserved prefix table.
func packagePrefixes(attr string) map[string]Vocabulary {
	out := ReservedPrefixes()
	for _, m := range prefixPattern.FindAllStringSubmatch(attr, -1) {
		out[m[1]] = Vocabulary(m[2])
	}
	return out
}

// isEPUB3 reports whether the declared version is 3.0 or later. An
// unparsable version is treated as pre-3.0, matching the lenient default.
func isEPUB3(version string) bool {
	major, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return false
	}
	return major >= 3.0
}
