// Package opf resolves the metadata section of an EPUB package document
// (the OPF <metadata> block, any 2.x/3.x version) into a structured,
// queryable publication metadata model.
//
// The pipeline has three stages: property resolution (CURIE-style tokens
// against the EPUB vocabulary/prefix system), refinement hierarchy
// resolution (folding <meta refines="#id"> expressions into the items they
// annotate, with cycle breaking), and semantic adaptation (deriving titles,
// contributors, collections, subjects and rendition hints). It reconciles
// the legacy EPUB 2 flat attribute shapes (opf:file-as, opf:role,
// opf:event) with the EPUB 3 refinement model so downstream code sees a
// single representation.
//
// # Parsing
//
// Use [ParseMetadata] for the common case, or [ParsePackage] followed by
// [Package.Metadata] to control the adaptation context:
//
//	md, err := opf.ParseMetadata(data, "OEBPS/content.opf", opf.MetadataOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(md.Title(), md.Authors())
//
// The lower-level stages are also available: [ResolveProperty] for
// vocabulary resolution, [Package.RawMetadata] for the resolved refinement
// forest before adaptation.
//
// # Leniency
//
// Real-world OPF producers violate the specification routinely, so parsing
// is lenient by design: malformed or incomplete declarations are skipped,
// never fatal, and the adapter always yields a usable [Metadata] once a
// <metadata> element was found. Skips that lose data are reported by
// [Package.Warnings]. The only structural error is [ErrNoMetadata], which
// distinguishes a missing <metadata> element from an empty one.
//
// This package performs no I/O: container access, date parsing and the
// publication link model are the caller's concern.
package opf
