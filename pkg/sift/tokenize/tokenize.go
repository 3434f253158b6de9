package tokenize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball"
	"github.com/pemistahl/lingua-go"

	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// DefaultLanguages are the languages detected and stemmed out of the box.
var DefaultLanguages = []string{"english", "russian", "spanish", "french"}

// languageTable maps configured language names to the detector constant and
// the snowball algorithm name.
var languageTable = map[string]struct {
	lang lingua.Language
	stem string
}{
	"english": {lingua.English, "english"},
	"russian": {lingua.Russian, "russian"},
	"spanish": {lingua.Spanish, "spanish"},
	"french":  {lingua.French, "french"},
	"swedish": {lingua.Swedish, "swedish"},
}

// Tokenizer turns raw text into normalized, stemmed tokens. The pipeline is
// pure and deterministic: identical input always yields the identical token
// sequence. Safe for concurrent use.
type Tokenizer struct {
	detector lingua.LanguageDetector
	stemmers map[lingua.Language]string
	fallback string
}

// New creates a tokenizer detecting and stemming the given languages.
// A nil or empty list uses DefaultLanguages; unknown names are an error.
func New(languages []string) (*Tokenizer, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	var langs []lingua.Language
	stemmers := make(map[lingua.Language]string, len(languages))
	for _, name := range languages {
		entry, ok := languageTable[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported language %q", internalerr.ErrInvalidInput, name)
		}
		langs = append(langs, entry.lang)
		stemmers[entry.lang] = entry.stem
	}

	t := &Tokenizer{stemmers: stemmers}
	if len(langs) >= 2 {
		t.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build()
	} else {
		// The detector needs alternatives to choose between; with one
		// configured language every sentence is that language.
		t.fallback = stemmers[langs[0]]
	}
	return t, nil
}

// Tokenize splits text into sentences, detects each sentence's dominant
// language, splits sentences into words, lowercases them, and reduces
// inflected forms to their stem. Only alphanumeric words survive; for those,
// the normalized form is preferred over the raw surface form. Empty or
// punctuation-only input yields no tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	for _, sentence := range splitSentences(text) {
		stem := t.sentenceStemmer(sentence)
		for _, seg := range splitWords(sentence) {
			if seg.kind != kindAlphaNumeric {
				continue
			}
			tokens = append(tokens, t.normalize(seg.text, stem))
		}
	}
	return tokens
}

// sentenceStemmer picks the snowball algorithm for a sentence, or "" when
// the language is unknown or has no stemmer configured.
func (t *Tokenizer) sentenceStemmer(sentence string) string {
	if t.detector == nil {
		return t.fallback
	}
	lang, ok := t.detector.DetectLanguageOf(sentence)
	if !ok {
		return ""
	}
	return t.stemmers[lang]
}

// normalize lowercases the word and applies stemming when a stemmer is
// available, falling back to the lowercased surface form.
func (t *Tokenizer) normalize(word, stem string) string {
	word = strings.ToLower(word)
	if stem == "" {
		return word
	}
	stemmed, err := snowball.Stem(word, stem, false)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// splitSentences breaks text at sentence-ending punctuation and newlines.
// Language detection runs per sentence, so a boundary here bounds how far
// one language's stemming rules reach.
func splitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		switch r {
		case '.', '!', '?', '\n':
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + utf8.RuneLen(r)
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

type kind int

const (
	kindAlphaNumeric kind = iota
	kindOther
)

type segment struct {
	text string
	kind kind
}

// splitWords splits a sentence into maximal runs of alphanumeric runes and
// runs of punctuation or symbols, classifying each run. Whitespace only
// separates runs and never appears in the output.
func splitWords(sentence string) []segment {
	var segs []segment
	var current strings.Builder
	currentKind := kindOther
	flush := func() {
		if current.Len() > 0 {
			segs = append(segs, segment{text: current.String(), kind: currentKind})
			current.Reset()
		}
	}

	for _, r := range sentence {
		switch {
		case unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if current.Len() > 0 && currentKind != kindAlphaNumeric {
				flush()
			}
			currentKind = kindAlphaNumeric
			current.WriteRune(r)
		default:
			if current.Len() > 0 && currentKind != kindOther {
				flush()
			}
			currentKind = kindOther
			current.WriteRune(r)
		}
	}
	flush()
	return segs
}
