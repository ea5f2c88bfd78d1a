// Package draft turns plain Japanese text into a first notation draft.
//
// Words get bracket furigana and an empty accent, particles are left bare so
// they follow the preceding tone. Pitch numbers are not in the dictionary
// and have to be filled in by hand.
package draft

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Word is one drafted section.
type Word struct {
	Surface  string
	Reading  string // Hiragana, empty for particles and symbols
	POS      string
	Particle bool
	Symbol   bool
}

// Notation returns the word as a notation token.
func (w Word) Notation() string {
	switch {
	case w.Particle, w.Symbol:
		return w.Surface
	case w.Reading == "" || isKana(w.Surface):
		return w.Surface + ":"
	}
	return Furigana(w.Surface, w.Reading) + ":"
}

// Drafter analyzes text with the IPA dictionary.
type Drafter struct {
	t *tokenizer.Tokenizer
}

// New creates a drafter. Loading the dictionary takes a moment.
func New() (*Drafter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer: %w", err)
	}
	return &Drafter{t: t}, nil
}

// Words splits text into drafted words. Verbs absorb the auxiliaries that
// follow them.
func (d *Drafter) Words(text string) []Word {
	var out []Word
	for _, kt := range d.t.Tokenize(text) {
		if strings.TrimSpace(kt.Surface) == "" {
			continue
		}
		pos := kt.POS()
		w := Word{Surface: kt.Surface}
		if len(pos) > 0 {
			w.POS = pos[0]
		}
		if reading, ok := kt.Reading(); ok && reading != "*" {
			w.Reading = kana.ToHiragana(reading)
		}

		switch {
		case w.POS == "助詞":
			w.Particle = true
			w.Reading = ""
		case w.POS == "記号":
			w.Symbol = true
			w.Reading = ""
		case isAuxiliary(pos) && len(out) > 0 && out[len(out)-1].POS == "動詞":
			prev := &out[len(out)-1]
			prev.Surface += w.Surface
			prev.Reading += w.Reading
			if w.Reading == "" {
				prev.Reading += kana.ToHiragana(w.Surface)
			}
			continue
		}
		out = append(out, w)
	}
	return out
}

// Draft returns the notation draft of text.
func (d *Drafter) Draft(text string) string {
	words := d.Words(text)
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w.Notation()
	}
	return strings.Join(tokens, " ")
}

func isAuxiliary(pos []string) bool {
	if len(pos) == 0 {
		return false
	}
	if pos[0] == "助動詞" {
		return true
	}
	return pos[0] == "動詞" && len(pos) > 1 && (pos[1] == "非自立" || pos[1] == "接尾")
}

func isKana(s string) bool {
	for _, r := range s {
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana) && r != 'ー' {
			return false
		}
	}
	return s != ""
}

// Furigana writes reading over surface, leaving trailing okurigana outside
// the brackets.
//
//	食べました, たべました → 食[た]べました
//	お茶, おちゃ           → お茶[おちゃ]
func Furigana(surface, reading string) string {
	s, r := []rune(surface), []rune(reading)
	hs := []rune(kana.ToHiragana(surface))

	n := 0
	for n < len(s)-1 && n < len(r)-1 && hs[len(hs)-1-n] == r[len(r)-1-n] {
		n++
	}
	if n == 0 {
		return surface + "[" + reading + "]"
	}
	return string(s[:len(s)-n]) + "[" + string(r[:len(r)-n]) + "]" + string(s[len(s)-n:])
}
