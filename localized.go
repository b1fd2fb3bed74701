package opf

import (
	"sort"

	"golang.org/x/text/language"
)

// LocalizedString is a string with translations keyed by BCP 47 language
// tag. The empty tag holds a value declared without a language.
type LocalizedString struct {
	// Translations maps a language tag to the value in that language.
	Translations map[string]string
}

// NewLocalizedString builds a LocalizedString with a single translation.
// An empty lang records the value as language-neutral.
func NewLocalizedString(value, lang string) LocalizedString {
	return LocalizedString{Translations: map[string]string{lang: value}}
}

// Set adds or replaces the translation for lang.
func (s *LocalizedString) Set(lang, value string) {
	if s.Translations == nil {
		s.Translations = make(map[string]string)
	}
	s.Translations[lang] = value
}

// IsEmpty reports whether the string carries no translation at all.
func (s LocalizedString) IsEmpty() bool {
	return len(s.Translations) == 0
}

// String returns the default translation: the language-neutral value when
// present, otherwise the translation for the lexicographically smallest
// tag, so the choice is deterministic.
func (s LocalizedString) String() string {
	if v, ok := s.Translations[""]; ok {
		return v
	}
	keys := s.sortedTags()
	if len(keys) == 0 {
		return ""
	}
	return s.Translations[keys[0]]
}

// Get returns the translation best matching the given language tag, using
// BCP 47 matching (e.g. "en" matches an "en-US" translation). Falls back
// to the default translation when nothing matches.
func (s LocalizedString) Get(tag language.Tag) string {
	if len(s.Translations) == 0 {
		return ""
	}

	keys := s.sortedTags()
	tags := make([]language.Tag, len(keys))
	for i, k := range keys {
		tags[i] = language.Make(k)
	}

	matcher := language.NewMatcher(tags)
	if _, index, conf := matcher.Match(tag); conf > language.No {
		return s.Translations[keys[index]]
	}
	return s.String()
}

func (s LocalizedString) sortedTags() []string {
	keys := make([]string, 0, len(s.Translations))
	for k := range s.Translations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
