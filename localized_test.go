package opf

import (
	"testing"

	"golang.org/x/text/language"
)

func TestLocalizedStringDefault(t *testing.T) {
	s := NewLocalizedString("Hello", "")
	if s.String() != "Hello" {
		t.Errorf("neutral translation = %q", s.String())
	}

	s = NewLocalizedString("Bonjour", "fr")
	s.Set("de", "Hallo")
	// No neutral entry: the smallest tag wins, deterministically.
	if s.String() != "Hallo" {
		t.Errorf("default translation = %q, want Hallo", s.String())
	}
	s.Set("", "Hi")
	if s.String() != "Hi" {
		t.Errorf("neutral entry must win, got %q", s.String())
	}
}

func TestLocalizedStringGet(t *testing.T) {
	s := NewLocalizedString("Colour", "en-GB")
	s.Set("fr", "Couleur")

	if got := s.Get(language.Make("fr-CA")); got != "Couleur" {
		t.Errorf("fr-CA = %q, want Couleur", got)
	}
	if got := s.Get(language.English); got != "Colour" {
		t.Errorf("en = %q, want Colour", got)
	}
	// Nothing matches: fall back to the default translation.
	if got := s.Get(language.Japanese); got != s.String() {
		t.Errorf("ja fallback = %q, want %q", got, s.String())
	}
}

func TestLocalizedStringEmpty(t *testing.T) {
	var s LocalizedString
	if !s.IsEmpty() || s.String() != "" || s.Get(language.English) != "" {
		t.Error("zero-value LocalizedString must behave as empty")
	}
}
