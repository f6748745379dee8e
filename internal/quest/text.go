package quest

import (
	"encoding/json"
	"fmt"
)

// FallbackLocale is used when a localized text has no entry for the requested
// locale.
const FallbackLocale = "en"

// Text is an authored free-text value. Authors write either a bare string
// (used verbatim in every locale) or a per-locale map.
type Text struct {
	raw      string
	byLocale map[string]string
	isMap    bool
}

// PlainText returns a Text holding a bare string.
func PlainText(s string) Text {
	return Text{raw: s}
}

// LocalizedText returns a Text holding a per-locale map.
func LocalizedText(byLocale map[string]string) Text {
	return Text{byLocale: byLocale, isMap: true}
}

// Resolve returns the text for locale, falling back to FallbackLocale and
// then to the empty string.
func (t Text) Resolve(locale string) string {
	if !t.isMap {
		return t.raw
	}
	if v, ok := t.byLocale[locale]; ok && v != "" {
		return v
	}
	return t.byLocale[FallbackLocale]
}

// WithPrefix returns a copy of the text with prefix prepended to every
// localized value.
func (t Text) WithPrefix(prefix string) Text {
	if prefix == "" {
		return t
	}
	if !t.isMap {
		return PlainText(prefix + t.raw)
	}
	prefixed := make(map[string]string, len(t.byLocale))
	for locale, v := range t.byLocale {
		prefixed[locale] = prefix + v
	}
	return LocalizedText(prefixed)
}

// Defined reports whether any text was authored.
func (t Text) Defined() bool {
	if t.isMap {
		return len(t.byLocale) > 0
	}
	return t.raw != ""
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.isMap {
		return json.Marshal(t.raw)
	}
	// encoding/json sorts map keys, so texts are safe to feed into id
	// derivation.
	return json.Marshal(t.byLocale)
}

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = PlainText(s)
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("text is neither string nor locale map: %w", err)
	}
	*t = LocalizedText(m)
	return nil
}
