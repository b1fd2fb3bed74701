package opf_test

import (
	"fmt"
	"log"

	"github.com/simp-lee/opf"
)

const exampleOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package version="3.0" xmlns="http://www.idpf.org/2007/opf" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="uid">urn:uuid:0f7c2e1a</dc:identifier>
    <dc:language>en</dc:language>
    <dc:title id="t1">A Practical Example</dc:title>
    <meta refines="#t1" property="file-as">Practical Example, A</meta>
    <dc:creator id="c1">Ada Writer</dc:creator>
    <meta refines="#c1" property="role">aut</meta>
    <dc:subject>Fiction, Adventure</dc:subject>
  </metadata>
</package>`

func ExampleParseMetadata() {
	md, err := opf.ParseMetadata([]byte(exampleOPF), "OEBPS/content.opf", opf.MetadataOptions{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(md.Title())
	fmt.Println(md.SortAs())
	fmt.Println(md.Authors()[0].Name.String())
	for _, s := range md.Subjects {
		fmt.Println(s.Name.String())
	}
	// Output:
	// A Practical Example
	// Practical Example, A
	// Ada Writer
	// Fiction
	// Adventure
}

func ExampleResolveProperty() {
	prefixes := opf.ReservedPrefixes()

	resolved, _ := opf.ResolveProperty("dcterms:modified", prefixes, opf.VocabularyMeta)
	fmt.Println(resolved)

	bare, _ := opf.ResolveProperty("title-type", prefixes, opf.VocabularyMeta)
	fmt.Println(bare)
	// Output:
	// http://purl.org/dc/terms/modified
	// http://idpf.org/epub/vocab/package/meta/#title-type
}
