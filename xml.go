package opf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
)

// XML namespaces used by package documents.
const (
	nsOPF = "http://www.idpf.org/2007/opf"
	nsDC  = "http://purl.org/dc/elements/1.1/"
	nsXML = "http://www.w3.org/XML/1998/namespace"
)

// Element is a generic parsed-XML node. The extractor and adapter only ever
// see Elements; raw markup never crosses into this package's pipeline.
//
// encoding/xml fills the exported fields directly: Attrs receives every
// attribute, Children every child element in document order, and Chardata
// the concatenated character data.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Children []*Element `xml:",any"`
	Chardata string     `xml:",chardata"`
}

// Attr returns the value of the first attribute with the given local name
// and no namespace, or "" when absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// AttrNS returns the value of the first attribute with the given local name
// in the given namespace, or "" when absent.
func (e *Element) AttrNS(space, name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name && a.Name.Space == space {
			return a.Value
		}
	}
	return ""
}

// legacyAttr looks up an attribute first in the OPF namespace, then without
// a namespace. EPUB 2 files vary between <dc:creator opf:role="aut"> and the
// non-conformant <dc:creator role="aut">.
func (e *Element) legacyAttr(name string) string {
	if v := e.AttrNS(nsOPF, name); v != "" {
		return v
	}
	return e.Attr(name)
}

// Text returns the element's character data with surrounding whitespace
// trimmed.
func (e *Element) Text() string {
	return strings.TrimSpace(e.Chardata)
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	return e.Attr("id")
}

// Lang returns the element's own xml:lang attribute, or "". Go's XML parser
// reports the predeclared xml prefix either as "xml" or as the full
// namespace URI depending on how the document declares it.
func (e *Element) Lang() string {
	if v := e.AttrNS("xml", "lang"); v != "" {
		return v
	}
	if v := e.AttrNS(nsXML, "lang"); v != "" {
		return v
	}
	return e.Attr("lang")
}

// First returns the first child element with the given namespace and local
// name, or nil.
func (e *Element) First(space, local string) *Element {
	for _, c := range e.Children {
		if c.XMLName.Local == local && c.XMLName.Space == space {
			return c
		}
	}
	return nil
}

// decodeElement parses an XML document into a generic Element tree.
// A UTF-8 BOM is stripped, HTML named entities are rewritten to numeric
// references, and non-UTF-8 encodings declared in the XML prolog are
// handled via x/net's charset reader.
func decodeElement(data []byte) (*Element, error) {
	data = stripBOM(data)
	data = rewriteNamedEntities(data)

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var root Element
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("opf: parse xml: %w", err)
	}
	return &root, nil
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// namedEntityPattern matches common HTML named entities case-insensitively.
var namedEntityPattern = regexp.MustCompile(
	`(?i)&(nbsp|mdash|ndash|hellip|lsquo|rsquo|ldquo|rdquo|copy|reg|trade|bull|middot|` +
		`eacute|egrave|ecirc|euml|aacute|agrave|acirc|auml|iacute|igrave|icirc|iuml|` +
		`oacute|ograve|ocirc|ouml|uacute|ugrave|ucirc|uuml|ntilde|ccedil|` +
		`times|divide|deg|para|sect|laquo|raquo|iexcl|iquest);`)

// entityNameToNumeric maps lowercase HTML entity names to their XML numeric
// character references. encoding/xml does not recognise HTML named entities,
// so they are converted before parsing the package document.
var entityNameToNumeric = map[string][]byte{
	"nbsp": []byte("&#160;"), "mdash": []byte("&#8212;"), "ndash": []byte("&#8211;"),
	"hellip": []byte("&#8230;"),
	"lsquo": []byte("&#8216;"), "rsquo": []byte("&#8217;"),
	"ldquo": []byte("&#8220;"), "rdquo": []byte("&#8221;"),
	"copy": []byte("&#169;"), "reg": []byte("&#174;"), "trade": []byte("&#8482;"),
	"bull": []byte("&#8226;"), "middot": []byte("&#183;"),
	"eacute": []byte("&#233;"), "egrave": []byte("&#232;"),
	"ecirc": []byte("&#234;"), "euml": []byte("&#235;"),
	"aacute": []byte("&#225;"), "agrave": []byte("&#224;"),
	"acirc": []byte("&#226;"), "auml": []byte("&#228;"),
	"iacute": []byte("&#237;"), "igrave": []byte("&#236;"),
	"icirc": []byte("&#238;"), "iuml": []byte("&#239;"),
	"oacute": []byte("&#243;"), "ograve": []byte("&#242;"),
	"ocirc": []byte("&#244;"), "ouml": []byte("&#246;"),
	"uacute": []byte("&#250;"), "ugrave": []byte("&#249;"),
	"ucirc": []byte("&#251;"), "uuml": []byte("&#252;"),
	"ntilde": []byte("&#241;"), "ccedil": []byte("&#231;"),
	"times": []byte("&#215;"), "divide": []byte("&#247;"),
	"deg": []byte("&#176;"), "para": []byte("&#182;"), "sect": []byte("&#167;"),
	"laquo": []byte("&#171;"), "raquo": []byte("&#187;"),
	"iexcl": []byte("&#161;"), "iquest": []byte("&#191;"),
}

// rewriteNamedEntities replaces common HTML named entities with numeric
// character references. Matching is case-insensitive to handle
// non-standard producers.
func rewriteNamedEntities(data []byte) []byte {
	return namedEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		if replacement, ok := entityNameToNumeric[name]; ok {
			return replacement
		}
		return match
	})
}
