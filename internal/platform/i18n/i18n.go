// Package i18n defines the closed set of locale tags served by toolatlas.
//
// A Set is built once at process start from configuration and never mutated
// afterwards, so it is safe to share across request goroutines.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

// Locale is one recognized locale: the path segment that selects it and the
// parsed BCP 47 tag used for message printing.
type Locale struct {
	Segment string
	Tag     language.Tag
}

// String returns the locale path segment.
func (l Locale) String() string {
	return l.Segment
}

// Set is an immutable, ordered collection of recognized locales with one
// default member.
type Set struct {
	locales   []Locale
	bySegment map[string]Locale
	fallback  Locale
}

// DefaultSegments are the locales served when configuration is silent.
var DefaultSegments = []string{"en", "zh"}

// DefaultSegment is the fallback locale when configuration is silent.
const DefaultSegment = "en"

// NewSet validates segments and the default and returns an immutable set.
func NewSet(segments []string, defaultSegment string) (Set, error) {
	if len(segments) == 0 {
		return Set{}, fmt.Errorf("at least one locale is required")
	}
	set := Set{
		locales:   make([]Locale, 0, len(segments)),
		bySegment: make(map[string]Locale, len(segments)),
	}
	for _, raw := range segments {
		segment := strings.TrimSpace(raw)
		if segment == "" {
			return Set{}, fmt.Errorf("locale segment cannot be blank")
		}
		if strings.ContainsAny(segment, "/.") {
			return Set{}, fmt.Errorf("locale segment %q must not contain '/' or '.'", segment)
		}
		if _, exists := set.bySegment[segment]; exists {
			return Set{}, fmt.Errorf("duplicate locale segment %q", segment)
		}
		tag, err := language.Parse(segment)
		if err != nil {
			return Set{}, fmt.Errorf("parse locale %q: %w", segment, err)
		}
		locale := Locale{Segment: segment, Tag: tag}
		set.locales = append(set.locales, locale)
		set.bySegment[segment] = locale
	}
	defaultSegment = strings.TrimSpace(defaultSegment)
	fallback, ok := set.bySegment[defaultSegment]
	if !ok {
		return Set{}, fmt.Errorf("default locale %q is not in the recognized set", defaultSegment)
	}
	set.fallback = fallback
	return set, nil
}

// MustNewSet is NewSet for static configuration known to be valid.
func MustNewSet(segments []string, defaultSegment string) Set {
	set, err := NewSet(segments, defaultSegment)
	if err != nil {
		panic(err)
	}
	return set
}

// DefaultSet returns the built-in en/zh set.
func DefaultSet() Set {
	return MustNewSet(DefaultSegments, DefaultSegment)
}

// Locales returns the recognized locales in configuration order.
func (s Set) Locales() []Locale {
	out := make([]Locale, len(s.locales))
	copy(out, s.locales)
	return out
}

// Default returns the fallback locale.
func (s Set) Default() Locale {
	return s.fallback
}

// Lookup returns the locale whose segment exactly equals segment.
func (s Set) Lookup(segment string) (Locale, bool) {
	locale, ok := s.bySegment[segment]
	return locale, ok
}

// Normalize returns the locale for segment, or the default when unknown.
func (s Set) Normalize(segment string) Locale {
	if locale, ok := s.Lookup(strings.TrimSpace(segment)); ok {
		return locale
	}
	return s.fallback
}

// MatchAcceptLanguage returns the first recognized locale appearing in an
// Accept-Language preference list. Preferences are visited in q-value order;
// for each one an exact tag match wins, then a member whose tag is the bare
// base language, then any member sharing the base language.
func (s Set) MatchAcceptLanguage(header string) (Locale, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Locale{}, false
	}
	preferred, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return Locale{}, false
	}
	for _, tag := range preferred {
		if locale, ok := s.matchTag(tag); ok {
			return locale, true
		}
	}
	return Locale{}, false
}

func (s Set) matchTag(tag language.Tag) (Locale, bool) {
	for _, locale := range s.locales {
		if locale.Tag == tag {
			return locale, true
		}
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return Locale{}, false
	}
	for _, locale := range s.locales {
		if locale.Tag.String() == base.String() {
			return locale, true
		}
	}
	for _, locale := range s.locales {
		if memberBase, _ := locale.Tag.Base(); memberBase == base {
			return locale, true
		}
	}
	return Locale{}, false
}

// Printer returns a message printer for the locale.
func Printer(locale Locale) *message.Printer {
	return message.NewPrinter(locale.Tag)
}

// DisplayName returns the locale's name written in its own language.
func DisplayName(locale Locale) string {
	name := strings.TrimSpace(display.Self.Name(locale.Tag))
	if name == "" {
		return locale.Segment
	}
	return name
}
