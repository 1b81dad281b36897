package tmx

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodio78/termsuite-core/internal/domain"
)

func texts(segs []Segment) []string {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		out = append(out, s.Text)
	}
	return out
}

func TestParseFile_Namespaced(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/namespaced.tmx")
	require.NoError(t, err)

	assert.Equal(t, "namespaced", doc.Strategy)
	require.Len(t, doc.Units, 2)
	assert.Equal(t, []string{"hello", "hello"}, texts(doc.Segments("en")))
	assert.Equal(t, []string{"en", "es", "fr"}, doc.Languages())
}

func TestParseFile_FallsBackToPlain(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/plain.tmx")
	require.NoError(t, err)

	assert.Equal(t, "plain", doc.Strategy)
	assert.Equal(t, []string{"Translation memory", "term base"}, texts(doc.Segments("en")))
	assert.Len(t, doc.Segments(""), 7)
	assert.Equal(t, []string{"de", "en", "es"}, doc.Languages())
}

func TestParseFile_UntaggedVariantIsExcludedFromLanguageScope(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/plain.tmx")
	require.NoError(t, err)

	for _, lang := range []string{"en", "de", "es"} {
		for _, s := range doc.Segments(lang) {
			assert.NotEqual(t, "untagged", s.Text, "lang %s", lang)
		}
	}
	assert.Contains(t, texts(doc.Segments("")), "untagged")
}

func TestParse_InlineCodesAreSkipped(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/inline.tmx")
	require.NoError(t, err)

	assert.Equal(t, "Press Save now", doc.Units[0].Variants[0].Text)
	assert.Equal(t, "Pulse Guardar ahora", doc.Units[0].Variants[1].Text)
}

func TestDocument_Pairs(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/inline.tmx")
	require.NoError(t, err)

	t.Run("by source language, last non-source wins", func(t *testing.T) {
		assert.Equal(t, []Pair{
			{Source: "Press Save now", Target: "Pulse Guardar ahora"},
			{Source: "file", Target: "fichier"},
		}, doc.Pairs("en"))
	})

	t.Run("positional", func(t *testing.T) {
		assert.Equal(t, []Pair{
			{Source: "Press Save now", Target: "Pulse Guardar ahora"},
			{Source: "file", Target: "archivo"},
		}, doc.Pairs(""))
	})

	t.Run("source missing from every unit", func(t *testing.T) {
		assert.Empty(t, doc.Pairs("de"))
	})
}

func TestDocument_PairsSkipEmptySides(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/plain.tmx")
	require.NoError(t, err)

	assert.Equal(t, []Pair{
		{Source: "Translation memory", Target: "Memoria de traducción"},
		{Source: "term base", Target: "base terminológica"},
	}, doc.Pairs("en"))
}

func TestParse_VariantWithoutSegKeepsPosition(t *testing.T) {
	t.Parallel()

	const raw = `<tmx version="1.4"><body>
  <tu>
    <tuv xml:lang="en"><seg>glossary</seg></tuv>
    <tuv xml:lang="es"><note>pending</note></tuv>
    <tuv xml:lang="fr"><seg>glossaire</seg></tuv>
  </tu>
  <tu>
    <tuv xml:lang="en"><seg>term</seg></tuv>
    <tuv xml:lang="es"><seg>término</seg></tuv>
  </tu>
</body></tmx>`

	doc, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)

	require.Len(t, doc.Units[0].Variants, 3)
	assert.Empty(t, doc.Units[0].Variants[1].Text)
	assert.Equal(t, []Pair{{Source: "term", Target: "término"}}, doc.Pairs(""))
	assert.Equal(t, []string{"término"}, texts(doc.Segments("es")))
}

func TestParse_XMLLangTakesPrecedenceOverLang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tuv  string
		want string
	}{
		{"xml:lang first", `<tuv xml:lang="fr" lang="de"><seg>x</seg></tuv>`, "fr"},
		{"xml:lang second", `<tuv lang="de" xml:lang="fr"><seg>x</seg></tuv>`, "fr"},
		{"bare lang only", `<tuv lang="de"><seg>x</seg></tuv>`, "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := Parse(strings.NewReader(`<tmx><body><tu>` + tt.tuv + `</tu></body></tmx>`))
			require.NoError(t, err)
			require.Len(t, doc.Units, 1)
			assert.Equal(t, tt.want, doc.Units[0].Variants[0].Language)
			assert.Equal(t, []string{tt.want}, doc.Languages())
		})
	}
}

func TestParse_NoSegmentsIsEmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := ParseFile("testdata/no_segments.tmx")
	require.NoError(t, err)

	assert.Empty(t, doc.Units)
	assert.Empty(t, doc.Strategy)
	assert.Empty(t, doc.Languages())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	t.Run("malformed", func(t *testing.T) {
		_, err := ParseFile("testdata/malformed.tmx")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrParse))

		var pe *domain.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "testdata/malformed.tmx", pe.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ParseFile("testdata/does-not-exist.tmx")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrParse))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		assert.ErrorIs(t, err, domain.ErrParse)
	})
}
