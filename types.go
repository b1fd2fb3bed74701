package opf

// Metadata is the structured publication metadata produced by adapting the
// raw refinement hierarchy. All fields are value objects owned by the
// caller; unpopulated fields default to empty collections or zero values.
type Metadata struct {
	// Identifier is the publication identifier, preferring the dc:identifier
	// designated by the package's unique-identifier attribute.
	Identifier string

	// Modified is the raw dcterms:modified timestamp, if declared.
	Modified string

	// Published is the raw dc:date value, if declared.
	Published string

	// Languages lists all dc:language values in document order, duplicates
	// preserved. The first entry is the publication's default language.
	Languages []string

	// Titles lists every dc:title expression with its refinements.
	Titles []Title

	// LocalizedTitle is the main title: the first title typed "main", else
	// the first title in document order, else the fallback title.
	LocalizedTitle LocalizedString

	// LocalizedSubtitle is the first title typed "subtitle" after
	// display-seq ordering; empty when no subtitle is declared.
	LocalizedSubtitle LocalizedString

	// LocalizedSortAs is the title sort key (meta file-as refinement, or a
	// legacy calibre:title_sort meta).
	LocalizedSortAs LocalizedString

	// Description is the dc:description value, localized.
	Description LocalizedString

	// Subjects lists the dc:subject expressions. A single bare subject
	// containing commas or semicolons is split into one subject per token.
	Subjects []Subject

	// Contributors maps a MARC relator code to the contributors carrying
	// that role. A contributor with several recognized roles appears under
	// each; one with no recognized role appears only under the empty key.
	Contributors map[string][]Contributor

	// BelongsToSeries lists the series this publication belongs to
	// (belongs-to-collection typed "series", or a legacy calibre:series).
	BelongsToSeries []Collection

	// BelongsToCollections lists non-series collections.
	BelongsToCollections []Collection

	// Presentation holds the rendition hints.
	Presentation Presentation

	// ReadingProgression is the spine's page progression direction.
	ReadingProgression ReadingProgression

	// OtherMetadata preserves every global expression whose property is not
	// consumed by the fields above. Items with refinements serialize as a
	// nested map with an "@value" key for their own text.
	OtherMetadata map[string]any
}

// Title returns the main title's default translation.
func (m Metadata) Title() string {
	return m.LocalizedTitle.String()
}

// Subtitle returns the subtitle's default translation, or "".
func (m Metadata) Subtitle() string {
	return m.LocalizedSubtitle.String()
}

// SortAs returns the title sort key's default translation, or "".
func (m Metadata) SortAs() string {
	return m.LocalizedSortAs.String()
}

// ContributorsByRole returns the contributors carrying the given MARC
// relator code. The empty role returns contributors with no recognized
// role.
func (m Metadata) ContributorsByRole(role string) []Contributor {
	return m.Contributors[role]
}

// Convenience accessors for the recognized contributor roles.
func (m Metadata) Authors() []Contributor      { return m.Contributors["aut"] }
func (m Metadata) Translators() []Contributor  { return m.Contributors["trl"] }
func (m Metadata) Editors() []Contributor      { return m.Contributors["edt"] }
func (m Metadata) Publishers() []Contributor   { return m.Contributors["pbl"] }
func (m Metadata) Artists() []Contributor      { return m.Contributors["art"] }
func (m Metadata) Illustrators() []Contributor { return m.Contributors["ill"] }
func (m Metadata) Colorists() []Contributor    { return m.Contributors["clr"] }
func (m Metadata) Narrators() []Contributor    { return m.Contributors["nrt"] }

// Title is one dc:title expression with its refinements.
type Title struct {
	// Value is the localized title text, including alternate-script
	// variants.
	Value LocalizedString

	// FileAs is the localized sort key, if refined.
	FileAs LocalizedString

	// Type tags the title's role ("main", "subtitle", "short", ...), or "".
	Type string

	// DisplaySeq is the display sequence number, nil when absent or
	// unparsable.
	DisplaySeq *int
}

// Subject is one dc:subject expression with its refinements.
type Subject struct {
	// Name is the localized subject heading.
	Name LocalizedString

	// FileAs is the localized sort key, if refined.
	FileAs LocalizedString

	// Scheme names the authority the code is drawn from (meta authority
	// refinement), or "".
	Scheme string

	// Code is the subject code within the authority (meta term
	// refinement), or "".
	Code string
}

// Contributor is one creator, contributor, publisher or narrator
// expression.
type Contributor struct {
	// Name is the localized contributor name, including alternate-script
	// variants.
	Name LocalizedString

	// FileAs is the localized sort key, if refined.
	FileAs LocalizedString

	// Roles lists the MARC relator codes for this contributor. When no
	// explicit role is refined, the element's default role applies
	// (creator → "aut", publisher → "pbl", narrator → "nrt"); plain
	// dc:contributor elements have no default and may end up roleless.
	Roles []string

	// Identifier is a refined identifier for the contributor, or "".
	Identifier string

	// Position is the display sequence number, nil when absent.
	Position *float64
}

// Collection is a series or collection the publication belongs to.
type Collection struct {
	// Name is the localized collection name.
	Name LocalizedString

	// FileAs is the localized sort key, if refined.
	FileAs LocalizedString

	// Position is the publication's position in the collection, nil when
	// absent or unparsable.
	Position *float64
}

// ReadingProgression is the direction content progresses through the
// spine.
type ReadingProgression string

const (
	ReadingProgressionAuto ReadingProgression = "auto"
	ReadingProgressionLTR  ReadingProgression = "ltr"
	ReadingProgressionRTL  ReadingProgression = "rtl"
)
