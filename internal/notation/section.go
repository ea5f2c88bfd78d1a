package notation

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/pitch"
)

// Token is a raw section split into its parts.
type Token struct {
	Word   string // Everything before the separator
	Sep    string // Separator as written, empty when absent
	Accent string // Everything after the separator
}

// Accent is a parsed accent field.
type Accent struct {
	Matched    bool   // The field follows one of the grammars
	IsParticle bool   // 'p' flag
	Role       string // Role letter(s) as written
	Pitch      string // Signed digit as written
	Keihan     bool   // Alternate-dialect form
	Levels     string // Explicit h/l string (alternate dialect)
}

var (
	tokenRe  = regexp.MustCompile(`^([^;:；：]+)([;:；：])?(.*)$`)
	tokyoRe  = regexp.MustCompile(`^([pP])?([a-zA-Z])?(-?\d)?$`)
	keihanRe = regexp.MustCompile(`^([a-zA-Z]{1,2})[;:；：]([hlHL]+)$`)
	rubyRe   = regexp.MustCompile(`\[[^\]]*\]`)
)

// IsSeparator reports whether s is a single word/accent separator.
func IsSeparator(s string) bool {
	switch s {
	case ";", ":", "；", "：":
		return true
	}
	return false
}

// SplitToken splits a raw section into word, separator and accent. A token
// that starts with a separator is kept whole as the word.
func SplitToken(raw string) Token {
	m := tokenRe.FindStringSubmatch(raw)
	if m == nil {
		return Token{Word: raw}
	}
	return Token{Word: m[1], Sep: m[2], Accent: m[3]}
}

// ParseAccent parses an accent field. Fields matching neither grammar come
// back with Matched unset. Full-width characters are read as their ASCII
// forms, so `２` is a pitch.
//
//	p?[A-Za-z]?-?\d?     standard dialect: particle flag, role, pitch
//	[A-Za-z]{1,2};[hl]+  alternate dialect: role and per-mora levels
func ParseAccent(raw string) Accent {
	raw = width.Narrow.String(raw)
	if m := tokyoRe.FindStringSubmatch(raw); m != nil {
		a := Accent{Matched: true, IsParticle: m[1] != "", Role: m[2], Pitch: m[3]}
		if a.Role == "" && a.IsParticle {
			// "p1" is a particle role with pitch 1.
			a.Role = "p"
		}
		return a
	}
	if m := keihanRe.FindStringSubmatch(raw); m != nil {
		return Accent{Matched: true, Keihan: true, Role: m[1], Levels: m[2]}
	}
	return Accent{}
}

// ParseSection parses one raw token into a resolved section. Morae are
// derived from the word with the given transliteration mode.
func ParseSection(raw string, mode kana.Mode) *pitch.Section {
	tok := SplitToken(raw)
	written := strings.ReplaceAll(tok.Word, kana.DevoicedPrefix, "")
	s := &pitch.Section{
		Raw:     raw,
		Word:    rubyRe.ReplaceAllString(written, ""),
		Written: written,
		Moraes:  kana.Moraes(tok.Word, mode),
		IsTape:  IsSeparator(raw),
	}

	accent := ParseAccent(tok.Accent)
	s.IsParticle = accent.IsParticle
	if accent.Keihan {
		resolveKeihan(s, accent)
	} else {
		resolveTokyo(s, tok, accent)
	}

	if (s.Role == pitch.RoleParticle || s.IsParticle) && len(s.Moraes) == 1 {
		s.Moraes[0] = kana.ParticleSound(s.Moraes[0])
	}
	return s
}

// ParseSequence parses every token of one sentence.
func ParseSequence(tokens []string, mode kana.Mode) pitch.Sequence {
	seq := make(pitch.Sequence, len(tokens))
	for i, raw := range tokens {
		seq[i] = ParseSection(raw, mode)
	}
	return seq
}

func isEmptyWord(word string) bool {
	switch word {
	case "|", ",", "、":
		return true
	}
	return false
}

func resolveTokyo(s *pitch.Section, tok Token, accent Accent) {
	s.Role = tokyoRole(s, tok, accent)
	if tok.Sep != "" && accent.Pitch != "" {
		n, _ := strconv.Atoi(accent.Pitch)
		s.Pitch = pitch.PitchOf(n)
		return
	}
	s.Pitch = s.Role.DefaultPitch(len(s.Moraes))
}

func tokyoRole(s *pitch.Section, tok Token, accent Accent) pitch.Role {
	switch {
	case len(s.Moraes) == 0 || isEmptyWord(s.Word):
		return pitch.RoleEmpty
	case tok.Sep == "" || !accent.Matched:
		return pitch.RoleParticle
	case accent.Role == "":
		return roleFromPitch(len(s.Moraes), accent.Pitch)
	}
	if r, ok := pitch.RoleFromLetter(strings.ToLower(accent.Role)[0]); ok && !r.IsKeihan() {
		return r
	}
	return pitch.RoleHeiban
}

// roleFromPitch guesses a role from the drop position alone.
func roleFromPitch(moraCount int, raw string) pitch.Role {
	if raw == "" {
		return pitch.RoleHeiban
	}
	n, err := strconv.Atoi(raw)
	switch {
	case err != nil, n == 0:
		return pitch.RoleHeiban
	case n < 0:
		return pitch.RoleParticle
	case n == 1:
		return pitch.RoleAtamadaka
	case n == moraCount:
		return pitch.RoleOdaka
	case n < moraCount:
		return pitch.RoleNakadaka
	}
	return pitch.RoleHeiban
}

func resolveKeihan(s *pitch.Section, accent Accent) {
	letter := accent.Role
	if len(letter) == 2 {
		if letter[0] == 'p' || letter[0] == 'P' {
			s.IsParticle = true
			letter = letter[1:]
		} else {
			letter = letter[:1]
		}
	}
	s.Keihan = true
	s.Role = keihanRole(letter)
	s.Levels = keihanLevels(accent.Levels, len(s.Moraes))
}

func keihanRole(letter string) pitch.Role {
	if r, ok := pitch.RoleFromLetter(strings.ToUpper(letter)[0]); ok {
		return r
	}
	if r, ok := pitch.RoleFromLetter(strings.ToLower(letter)[0]); ok {
		return r
	}
	return pitch.RoleKeihanHeiban
}

// keihanLevels maps an h/l string to one level per mora, repeating its last
// character when it is short and cutting it when it is long.
func keihanLevels(raw string, moraCount int) []pitch.Level {
	levels := make([]pitch.Level, moraCount)
	for i := range levels {
		c := raw[len(raw)-1]
		if i < len(raw) {
			c = raw[i]
		}
		levels[i] = pitch.LevelFromByte(c)
	}
	return levels
}
