package quest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextResolve(t *testing.T) {
	txt := PlainText("Kill the boss")
	assert.Equal(t, "Kill the boss", txt.Resolve("en"))
	assert.Equal(t, "Kill the boss", txt.Resolve("fr"))
}

func TestLocalizedTextResolve(t *testing.T) {
	txt := LocalizedText(map[string]string{"en": "Hello", "fr": "Bonjour"})
	assert.Equal(t, "Hello", txt.Resolve("en"))
	assert.Equal(t, "Bonjour", txt.Resolve("fr"))
}

func TestLocalizedTextFallsBackToEnglish(t *testing.T) {
	txt := LocalizedText(map[string]string{"en": "Hello"})
	assert.Equal(t, "Hello", txt.Resolve("de"))
}

func TestTextDefined(t *testing.T) {
	assert.False(t, Text{}.Defined())
	assert.False(t, PlainText("").Defined())
	assert.True(t, PlainText("x").Defined())
	assert.True(t, LocalizedText(map[string]string{"en": "x"}).Defined())
}

func TestWithPrefix(t *testing.T) {
	txt := PlainText("Hunt").WithPrefix("(repeat) ")
	assert.Equal(t, "(repeat) Hunt", txt.Resolve("en"))

	loc := LocalizedText(map[string]string{"en": "Hunt", "fr": "Chasse"}).WithPrefix("* ")
	assert.Equal(t, "* Hunt", loc.Resolve("en"))
	assert.Equal(t, "* Chasse", loc.Resolve("fr"))
}

func TestWithPrefixEmptyIsIdentity(t *testing.T) {
	txt := PlainText("Hunt")
	assert.Equal(t, txt, txt.WithPrefix(""))
}

func TestTextJSONRoundTrip(t *testing.T) {
	var fromString Text
	require.NoError(t, json.Unmarshal([]byte(`"plain"`), &fromString))
	assert.Equal(t, "plain", fromString.Resolve("en"))

	var fromMap Text
	require.NoError(t, json.Unmarshal([]byte(`{"en":"a","fr":"b"}`), &fromMap))
	assert.Equal(t, "b", fromMap.Resolve("fr"))

	data, err := json.Marshal(fromMap)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"a","fr":"b"}`, string(data))
}

func TestTextRejectsNumbers(t *testing.T) {
	var txt Text
	assert.Error(t, json.Unmarshal([]byte(`3`), &txt))
}
