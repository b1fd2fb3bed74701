package opf

import (
	"sort"
	"strconv"
	"strings"
)

// AdaptOptions is the publication-level context the metadata adapter needs
// beyond the metadata items themselves.
type AdaptOptions struct {
	// EPUBVersion selects between the legacy and modern field derivations
	// (calibre:series vs belongs-to-collection, display options vs
	// rendition:layout).
	EPUBVersion string

	// FallbackTitle is used when no dc:title is declared.
	FallbackTitle string

	// UniqueIdentifierID is the IDREF of the primary dc:identifier.
	UniqueIdentifierID string

	// ReadingProgression is passed through to the result.
	ReadingProgression ReadingProgression

	// DisplayOptions holds legacy iBooks display options for EPUB 2 files.
	DisplayOptions map[string]string
}

// knownRoles is the fixed set of MARC relator codes the adapter buckets
// contributors by. Everything else lands in the unclassified bucket.
var knownRoles = map[string]bool{
	"aut": true, "trl": true, "edt": true, "pbl": true,
	"art": true, "ill": true, "clr": true, "nrt": true,
}

// reservedProperties are the global properties consumed by dedicated
// Metadata fields; they are excluded from OtherMetadata.
var reservedProperties = map[string]bool{
	propDCIdentifier:        true,
	propDCLanguage:          true,
	propDCTitle:             true,
	propDCCreator:           true,
	propDCContributor:       true,
	propDCPublisher:         true,
	propDCSubject:           true,
	propDCDate:              true,
	propDCModified:          true,
	propDCDescription:       true,
	propNarrator:            true,
	propFlow:                true,
	propLayout:              true,
	propOrientation:         true,
	propSpread:              true,
	propBelongsToCollection: true,
	propCalibreSeries:       true,
	propCalibreSeriesIndex:  true,
	propCalibreTitleSort:    true,
}

// presentationKey is where the derived presentation descriptor lands inside
// OtherMetadata, so it round-trips alongside free-form extensions.
const presentationKey = "presentation"

// AdaptMetadata derives the structured Metadata from the resolved global
// items. Every field derivation is independent and lenient: malformed
// declarations degrade to empty or default fields, never to an error.
func AdaptMetadata(raw *RawMetadata, opts AdaptOptions) Metadata {
	a := &adapter{
		global: raw.Global,
		epub3:  isEPUB3(opts.EPUBVersion),
		opts:   opts,
	}

	languages := a.languages()
	if len(languages) > 0 {
		a.defaultLang = languages[0]
	}

	m := Metadata{
		Identifier:         a.identifier(),
		Modified:           a.firstValue(propDCModified),
		Published:          a.firstValue(propDCDate),
		Languages:          languages,
		Subjects:           a.subjects(),
		Contributors:       a.contributors(),
		Presentation:       a.presentation(),
		ReadingProgression: opts.ReadingProgression,
	}

	m.Titles, m.LocalizedTitle, m.LocalizedSubtitle, m.LocalizedSortAs = a.titles()
	m.BelongsToSeries, m.BelongsToCollections = a.collections()
	if it := a.first(propDCDescription); it != nil {
		m.Description = a.localizedItem(it)
	}
	m.OtherMetadata = a.otherMetadata(m.Presentation)

	return m
}

// adapter holds the shared derivation context.
type adapter struct {
	global      map[string][]*Item
	epub3       bool
	defaultLang string
	opts        AdaptOptions
}

func (a *adapter) items(property string) []*Item {
	return a.global[property]
}

func (a *adapter) first(property string) *Item {
	if items := a.global[property]; len(items) > 0 {
		return items[0]
	}
	return nil
}

func (a *adapter) firstValue(property string) string {
	if it := a.first(property); it != nil {
		return it.Value
	}
	return ""
}

// langOr substitutes the publication's default language for an empty tag.
func (a *adapter) langOr(lang string) string {
	if lang != "" {
		return lang
	}
	return a.defaultLang
}

// localizedItem builds the localized value of an item: its own text keyed
// by its language, plus any alternate-script refinements.
func (a *adapter) localizedItem(it *Item) LocalizedString {
	ls := NewLocalizedString(it.Value, a.langOr(it.Lang))
	for _, alt := range it.Children[propAlternateScript] {
		ls.Set(a.langOr(alt.Lang), alt.Value)
	}
	return ls
}

// localizedChild builds the localized value of a refinement child, e.g. a
// file-as sort key. Returns an empty LocalizedString when the child is
// absent.
func (a *adapter) localizedChild(it *Item, property string) LocalizedString {
	c := it.child(property)
	if c == nil {
		return LocalizedString{}
	}
	return NewLocalizedString(c.Value, a.langOr(c.Lang))
}

// identifier prefers the dc:identifier designated by the package's
// unique-identifier attribute, then the first identifier in document order.
func (a *adapter) identifier() string {
	items := a.items(propDCIdentifier)
	if a.opts.UniqueIdentifierID != "" {
		for _, it := range items {
			if it.ID == a.opts.UniqueIdentifierID {
				return it.Value
			}
		}
	}
	if len(items) > 0 {
		return items[0].Value
	}
	return ""
}

func (a *adapter) languages() []string {
	items := a.items(propDCLanguage)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Value)
	}
	return out
}

// titles derives the title list and the main/subtitle/sort-as selections.
func (a *adapter) titles() (titles []Title, main, subtitle, sortAs LocalizedString) {
	for _, it := range a.items(propDCTitle) {
		t := Title{
			Value:  a.localizedItem(it),
			FileAs: a.localizedChild(it, propFileAs),
			Type:   it.childValue(propTitleType),
		}
		if n, err := strconv.Atoi(strings.TrimSpace(it.childValue(propDisplaySeq))); err == nil {
			t.DisplaySeq = &n
		}
		titles = append(titles, t)
	}

	if len(titles) == 0 {
		// No titles at all: the caller-supplied fallback, unlocalized.
		main = NewLocalizedString(a.opts.FallbackTitle, "")
		return titles, main, subtitle, sortAs
	}

	mainTitle := titles[0]
	for _, t := range titles {
		if t.Type == "main" {
			mainTitle = t
			break
		}
	}
	main = mainTitle.Value

	// Subtitle: the first subtitle after a display-seq stable sort,
	// entries without a sequence sorting last.
	var subtitles []Title
	for _, t := range titles {
		if t.Type == "subtitle" {
			subtitles = append(subtitles, t)
		}
	}
	sort.SliceStable(subtitles, func(i, j int) bool {
		si, sj := subtitles[i].DisplaySeq, subtitles[j].DisplaySeq
		switch {
		case si == nil:
			return false
		case sj == nil:
			return true
		default:
			return *si < *sj
		}
	})
	if len(subtitles) > 0 {
		subtitle = subtitles[0].Value
	}

	sortAs = mainTitle.FileAs
	if sortAs.IsEmpty() {
		if it := a.first(propCalibreTitleSort); it != nil {
			sortAs = NewLocalizedString(it.Value, a.langOr(it.Lang))
		}
	}
	return titles, main, subtitle, sortAs
}

// subjects converts dc:subject items, exploding a lone unqualified subject
// whose text looks like a comma- or semicolon-separated list. A subject
// refined with an authority, code or sort key is never split.
func (a *adapter) subjects() []Subject {
	items := a.items(propDCSubject)
	var subjects []Subject
	for _, it := range items {
		subjects = append(subjects, Subject{
			Name:   a.localizedItem(it),
			FileAs: a.localizedChild(it, propFileAs),
			Scheme: it.childValue(propAuthority),
			Code:   it.childValue(propTerm),
		})
	}

	if len(subjects) != 1 {
		return subjects
	}
	s := subjects[0]
	if len(s.Name.Translations) != 1 || s.Scheme != "" || s.Code != "" || !s.FileAs.IsEmpty() {
		return subjects
	}

	var lang, value string
	for l, v := range s.Name.Translations {
		lang, value = l, v
	}
	tokens := splitSubjectList(value)
	if len(tokens) <= 1 {
		return subjects
	}
	split := make([]Subject, 0, len(tokens))
	for _, tok := range tokens {
		split = append(split, Subject{Name: NewLocalizedString(tok, lang)})
	}
	return split
}

// splitSubjectList splits on commas and semicolons, trimming and dropping
// empty tokens.
func splitSubjectList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// contributors builds the contributor universe from creators, publishers,
// narrators and plain contributors, then buckets it by role.
func (a *adapter) contributors() map[string][]Contributor {
	sources := []struct {
		property    string
		defaultRole string
	}{
		{propDCCreator, "aut"},
		{propDCContributor, ""},
		{propDCPublisher, "pbl"},
		{propNarrator, "nrt"},
	}

	buckets := make(map[string][]Contributor)
	for _, src := range sources {
		for _, it := range a.items(src.property) {
			c := a.contributor(it, src.defaultRole)

			classified := false
			for _, role := range c.Roles {
				if knownRoles[role] {
					buckets[role] = append(buckets[role], c)
					classified = true
				}
			}
			if !classified {
				buckets[""] = append(buckets[""], c)
			}
		}
	}
	if len(buckets) == 0 {
		return nil
	}
	return buckets
}

// contributor converts one item. The default role applies only when the
// item carries no explicit role refinement.
func (a *adapter) contributor(it *Item, defaultRole string) Contributor {
	c := Contributor{
		Name:       a.localizedItem(it),
		FileAs:     a.localizedChild(it, propFileAs),
		Identifier: it.childValue(propDCIdentifier),
	}

	seen := make(map[string]bool)
	for _, roleItem := range it.Children[propRole] {
		role := strings.TrimSpace(roleItem.Value)
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		c.Roles = append(c.Roles, role)
	}
	if len(c.Roles) == 0 && defaultRole != "" {
		c.Roles = []string{defaultRole}
	}

	if f, err := strconv.ParseFloat(strings.TrimSpace(it.childValue(propDisplaySeq)), 64); err == nil {
		c.Position = &f
	}
	return c
}

// collections derives series and collection membership. EPUB 3 uses
// belongs-to-collection expressions; earlier versions know only the single
// legacy calibre:series meta.
func (a *adapter) collections() (series, collections []Collection) {
	if !a.epub3 {
		it := a.first(propCalibreSeries)
		if it == nil {
			return nil, nil
		}
		col := Collection{Name: NewLocalizedString(it.Value, a.langOr(it.Lang))}
		if f, err := strconv.ParseFloat(strings.TrimSpace(a.firstValue(propCalibreSeriesIndex)), 64); err == nil {
			col.Position = &f
		}
		return []Collection{col}, nil
	}

	for _, it := range a.items(propBelongsToCollection) {
		col := Collection{
			Name:   a.localizedItem(it),
			FileAs: a.localizedChild(it, propFileAs),
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(it.childValue(propGroupPosition)), 64); err == nil {
			col.Position = &f
		}
		if it.childValue(propCollectionType) == "series" {
			series = append(series, col)
		} else {
			collections = append(collections, col)
		}
	}
	return series, collections
}

// presentation maps the rendition properties onto a Presentation
// descriptor, defaulting every absent hint.
func (a *adapter) presentation() Presentation {
	p := defaultPresentation()

	switch a.firstValue(propFlow) {
	case "paginated":
		p.Overflow = OverflowPaginated
	case "scrolled-continuous":
		p.Overflow = OverflowScrolled
		p.Continuous = true
	case "scrolled-doc":
		p.Overflow = OverflowScrolled
	}

	if a.epub3 {
		if a.firstValue(propLayout) == "pre-paginated" {
			p.Layout = LayoutFixed
		}
	} else if a.opts.DisplayOptions["fixed-layout"] == "true" {
		p.Layout = LayoutFixed
	}

	switch a.firstValue(propOrientation) {
	case "landscape":
		p.Orientation = OrientationLandscape
	case "portrait":
		p.Orientation = OrientationPortrait
	}

	switch a.firstValue(propSpread) {
	case "none":
		p.Spread = SpreadNone
	case "landscape":
		p.Spread = SpreadLandscape
	case "both", "portrait":
		p.Spread = SpreadBoth
	}
	return p
}

// otherMetadata preserves every non-reserved global property. Items with
// refinements serialize as nested maps with an "@value" key for their own
// text; the derived presentation is injected under a reserved key.
func (a *adapter) otherMetadata(presentation Presentation) map[string]any {
	out := make(map[string]any)
	for property, items := range a.global {
		if reservedProperties[property] {
			continue
		}
		if len(items) == 1 {
			out[property] = serializeItem(items[0])
			continue
		}
		values := make([]any, 0, len(items))
		for _, it := range items {
			values = append(values, serializeItem(it))
		}
		out[property] = values
	}
	out[presentationKey] = presentation
	return out
}

// serializeItem renders an item as its raw text when it has no
// refinements, and as a child-property map otherwise.
func serializeItem(it *Item) any {
	if len(it.Children) == 0 {
		return it.Value
	}
	m := map[string]any{"@value": it.Value}
	for property, group := range it.Children {
		if len(group) == 1 {
			m[property] = serializeItem(group[0])
			continue
		}
		values := make([]any, 0, len(group))
		for _, c := range group {
			values = append(values, serializeItem(c))
		}
		m[property] = values
	}
	return m
}
