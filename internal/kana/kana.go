// Package kana turns a notation word into the morae it is pronounced with.
package kana

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/f3rmion/pitchgraph/internal/pitch"
)

// Markers that survive kana filtering.
const (
	DevoicedPrefix = "*" // Marks the following mora as devoiced
	GhostParticle  = "-" // Trailing circle without a label
)

// Mode selects how a reading is transliterated before segmentation.
type Mode string

const (
	ModeAsGiven  Mode = "as-given"
	ModeHiragana Mode = "hiragana"
	ModeKatakana Mode = "katakana"
)

// ParseMode parses a mode name. The empty string and unknown names map to
// ModeAsGiven.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeHiragana:
		return ModeHiragana, true
	case ModeKatakana:
		return ModeKatakana, true
	case ModeAsGiven, "", "none", "as_given":
		return ModeAsGiven, true
	}
	return ModeAsGiven, false
}

var (
	markerMoveRe = regexp.MustCompile(`(\*+)([^\[\]\*]*)\[`)
	furiganaRe   = regexp.MustCompile(`[^\[\]]*\[|\]`)
	nonKanaRe    = regexp.MustCompile(`[^\x{3040}-\x{309F}\x{30A0}-\x{30FF}\*\-]`)
	moraRe       = regexp.MustCompile(`\*?.[ァィゥェォャュョぁぃぅぇぉゃゅょ]?`)
	// A mark before a glide or at the end has no mora to apply to.
	strayMarkRe = regexp.MustCompile(`\*+([ァィゥェォャュョぁぃぅぇぉゃゅょ]|$)`)
	markRunRe   = regexp.MustCompile(`\*+`)
)

// FuriganaToReading replaces every `kanji[reading]` with its reading. A
// devoicing mark written in front of the kanji is moved into the reading.
//
//	大物[おおもの] → おおもの
//	稼[かせ]いで  → かせいで
//	*君[きみ]     → *きみ
func FuriganaToReading(word string) string {
	word = markerMoveRe.ReplaceAllString(word, "$2[$1")
	return furiganaRe.ReplaceAllString(word, "")
}

// Filter drops everything except kana and the devoiced/ghost markers.
func Filter(reading string) string {
	return nonKanaRe.ReplaceAllString(reading, "")
}

// Segment splits a reading into morae. Small glide kana fuse with the kana
// before them; a devoiced prefix is stripped into the Devoiced flag. Marks
// that do not precede a mora are dropped, so the morae are the same with or
// without them.
func Segment(reading string) []pitch.Mora {
	reading = strayMarkRe.ReplaceAllString(Filter(reading), "$1")
	reading = markRunRe.ReplaceAllString(reading, DevoicedPrefix)
	raw := moraRe.FindAllString(reading, -1)
	moraes := make([]pitch.Mora, 0, len(raw))
	for _, m := range raw {
		if rest, ok := strings.CutPrefix(m, DevoicedPrefix); ok && rest != "" {
			moraes = append(moraes, pitch.Mora{Text: rest, Devoiced: true})
			continue
		}
		moraes = append(moraes, pitch.Mora{Text: m})
	}
	return moraes
}

// Moraes derives the morae of a notation word: furigana is resolved, the
// reading transliterated per mode, then segmented.
func Moraes(word string, mode Mode) []pitch.Mora {
	return Segment(Transliterate(FuriganaToReading(word), mode))
}

// Transliterate converts a reading according to mode.
func Transliterate(reading string, mode Mode) string {
	switch mode {
	case ModeHiragana:
		return ToHiragana(reading)
	case ModeKatakana:
		return LiteralPronunciation(reading)
	default:
		return reading
	}
}

// ToHiragana converts katakana ァ–ヶ to hiragana.
func ToHiragana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x30A1 && r <= 0x30F6 {
			return r - 0x60
		}
		return r
	}, s)
}

// ToKatakana converts hiragana ぁ–ゖ to katakana.
func ToKatakana(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 0x3041 && r <= 0x3096 {
			return r + 0x60
		}
		return r
	}, s)
}

// LiteralPronunciation writes a reading in katakana the way it is spoken.
// The object particle を is pronounced お.
func LiteralPronunciation(s string) string {
	return strings.ReplaceAll(ToKatakana(s), "ヲ", "オ")
}

// particleSounds maps particles whose spelling differs from their sound.
var particleSounds = map[string]string{
	"は": "わ",
	"ハ": "ワ",
	"へ": "え",
	"ヘ": "エ",
}

// ParticleSound returns the pronounced form of a one-mora particle.
func ParticleSound(m pitch.Mora) pitch.Mora {
	if s, ok := particleSounds[m.Text]; ok {
		m.Text = s
	}
	return m
}

// IsGhost reports whether the mora is the label-less ghost marker.
func IsGhost(m pitch.Mora) bool {
	return m.Text == GhostParticle
}

// IsSokuon reports whether the mora is a small tsu.
func IsSokuon(m pitch.Mora) bool {
	return m.Text == "っ" || m.Text == "ッ"
}

// Width returns the number of glyphs in the mora's label.
func Width(m pitch.Mora) int {
	return utf8.RuneCountInString(m.Text)
}
