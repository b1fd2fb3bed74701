package opf

import "errors"

// Sentinel errors returned by the opf package.
var (
	// ErrNoMetadata indicates the package document contains no <metadata>
	// element at all. An empty-but-present metadata block is not an error;
	// it yields a metadata object with default fields.
	ErrNoMetadata = errors.New("opf: package document has no metadata element")

	// ErrNoPackage indicates the document's root element is not an OPF
	// <package> element.
	ErrNoPackage = errors.New("opf: not a package document")
)
