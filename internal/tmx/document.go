package tmx

// Segment is the text of one unit variant with its declared language.
// Language is "" when the variant declares none.
type Segment struct {
	Language string
	Text     string
}

// Unit is a translation unit: the variants of one phrase in document order.
type Unit struct {
	Variants []Segment
}

// Pair is a source/target couple taken from one unit.
type Pair struct {
	Source string
	Target string
}

// Document is a parsed translation memory.
type Document struct {
	Units []Unit
	// Strategy names the traversal that produced Units, empty when none did.
	Strategy string
}

// Segments returns every variant with non-empty text whose language matches
// lang, in document order. An empty lang selects every variant, including
// those without a declared language.
func (d *Document) Segments(lang string) []Segment {
	var out []Segment
	for _, u := range d.Units {
		for _, v := range u.Variants {
			if v.Text == "" {
				continue
			}
			if lang != "" && !MatchLanguage(v.Language, lang) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

// Languages returns the lowercased base subtags declared in the document,
// distinct and sorted.
func (d *Document) Languages() []string {
	var tags []string
	for _, u := range d.Units {
		for _, v := range u.Variants {
			tags = append(tags, v.Language)
		}
	}
	return normalizeLanguages(tags)
}

// Pairs returns one source/target pair per unit that yields both sides.
//
// With a source language, the first variant matching it is the source and
// the last variant with a declared language not matching it is the target.
// Without one, the first two variants are taken positionally. Pairs where
// either side is empty are skipped.
func (d *Document) Pairs(source string) []Pair {
	var out []Pair
	for _, u := range d.Units {
		var (
			p  Pair
			ok bool
		)
		if source == "" {
			p, ok = positionalPair(u)
		} else {
			p, ok = languagePair(u, source)
		}
		if ok && p.Source != "" && p.Target != "" {
			out = append(out, p)
		}
	}
	return out
}

func positionalPair(u Unit) (Pair, bool) {
	if len(u.Variants) < 2 {
		return Pair{}, false
	}
	return Pair{Source: u.Variants[0].Text, Target: u.Variants[1].Text}, true
}

func languagePair(u Unit, source string) (Pair, bool) {
	var (
		src, tgt         string
		haveSrc, haveTgt bool
	)
	for _, v := range u.Variants {
		if MatchLanguage(v.Language, source) {
			if !haveSrc {
				src, haveSrc = v.Text, true
			}
			continue
		}
		if v.Language != "" {
			tgt, haveTgt = v.Text, true
		}
	}
	if !haveSrc || !haveTgt {
		return Pair{}, false
	}
	return Pair{Source: src, Target: tgt}, true
}
