// Package pitch provides the core types of the pitch-accent notation.
package pitch

import "strings"

// Role is the accent class of a section. It decides the default pitch and the
// CSS class used to color the section.
type Role int

const (
	RoleHeiban    Role = iota // Flat: low-high-high...
	RoleAtamadaka             // Head-high: drop after the first mora
	RoleNakadaka              // Mid-drop: drop inside the word
	RoleOdaka                 // Tail-high: drop right after the word
	RoleKifuku                // Undulating (verbs/adjectives with a drop)

	RoleBlack     // Neutral coloring, no inherent shape
	RoleWhite     // Neutral coloring, no inherent shape
	RoleSetsubigo // Suffix, behaves like heiban
	RoleEmpty     // Clause break or word without morae
	RoleParticle  // Continues the preceding tone

	RoleKeihanHeiban
	RoleKeihanAtamadaka
	RoleKeihanNakadaka
	RoleKeihanLowHeiban
	RoleKeihanLowNakadaka
	RoleKeihanLowOdaka
	RoleKeihanKifuku
)

type roleInfo struct {
	name   string
	letter byte
}

var roles = [...]roleInfo{
	RoleHeiban:            {"heiban", 'h'},
	RoleAtamadaka:         {"atamadaka", 'a'},
	RoleNakadaka:          {"nakadaka", 'n'},
	RoleOdaka:             {"odaka", 'o'},
	RoleKifuku:            {"kifuku", 'k'},
	RoleBlack:             {"black", 'b'},
	RoleWhite:             {"white", 'w'},
	RoleSetsubigo:         {"setsubigo", 's'},
	RoleEmpty:             {"empty", 'e'},
	RoleParticle:          {"particle", 'p'},
	RoleKeihanHeiban:      {"keihan_heiban", 'H'},
	RoleKeihanAtamadaka:   {"keihan_atamadaka", 'A'},
	RoleKeihanNakadaka:    {"keihan_nakadaka", 'N'},
	RoleKeihanLowHeiban:   {"keihan_low_heiban", 'L'},
	RoleKeihanLowNakadaka: {"keihan_low_nakadaka", 'M'},
	RoleKeihanLowOdaka:    {"keihan_low_odaka", 'O'},
	RoleKeihanKifuku:      {"keihan_kifuku", 'K'},
}

// Roles lists every role in declaration order.
func Roles() []Role {
	out := make([]Role, len(roles))
	for i := range roles {
		out[i] = Role(i)
	}
	return out
}

// String returns the role name, which doubles as its CSS class.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roles) {
		return "unknown"
	}
	return roles[r].name
}

// Letter returns the notation letter of the role. Alternate-dialect roles use
// upper case letters.
func (r Role) Letter() byte {
	if r < 0 || int(r) >= len(roles) {
		return 0
	}
	return roles[r].letter
}

// IsKeihan reports whether the role belongs to the alternate (Keihan) dialect.
func (r Role) IsKeihan() bool {
	return r >= RoleKeihanHeiban && r <= RoleKeihanKifuku
}

// RoleFromLetter looks up a role by its exact (case-sensitive) notation letter.
func RoleFromLetter(letter byte) (Role, bool) {
	for i, info := range roles {
		if info.letter == letter {
			return Role(i), true
		}
	}
	return 0, false
}

// RoleFromName looks up a role by its name.
func RoleFromName(name string) (Role, bool) {
	for i, info := range roles {
		if info.name == name {
			return Role(i), true
		}
	}
	return 0, false
}

// DefaultPitch returns the pitch a Tokyo-dialect role implies when the
// notation gives no explicit number. Particles have no default.
func (r Role) DefaultPitch(moraCount int) Pitch {
	switch r {
	case RoleHeiban, RoleSetsubigo:
		return PitchOf(0)
	case RoleAtamadaka:
		return PitchOf(1)
	case RoleNakadaka, RoleKifuku:
		return PitchOf(2)
	case RoleOdaka:
		return PitchOf(moraCount)
	case RoleParticle:
		return Pitch{}
	case RoleEmpty:
		return PitchOf(AllLow)
	default:
		return PitchOf(0)
	}
}

// Level is the tone of one mora.
type Level int

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "h"
	}
	return "l"
}

// LevelFromByte maps 'h'/'H' to High and everything else to Low.
func LevelFromByte(c byte) Level {
	if c == 'h' || c == 'H' {
		return High
	}
	return Low
}

// Special pitch values.
const (
	AllLow  = -1 // Every mora low
	AllHigh = -2 // Every mora high
)

// Pitch is an optional pitch-drop position.
type Pitch struct {
	Value int
	Set   bool
}

// PitchOf returns a set pitch.
func PitchOf(v int) Pitch {
	return Pitch{Value: v, Set: true}
}

// Is reports whether the pitch is set and equal to v.
func (p Pitch) Is(v int) bool {
	return p.Set && p.Value == v
}

// Mora is a single phonetic unit: one kana, optionally fused with a small
// glide kana.
type Mora struct {
	Text     string
	Devoiced bool
}

// Section is one notation token resolved into a word with its accent.
type Section struct {
	Raw        string  // Token as written
	Word       string  // Word without furigana or devoicing marks
	Written    string  // Word with bracket furigana, devoicing marks removed
	Moraes     []Mora  // Phonetic units of the reading
	Role       Role    // Resolved accent class
	Pitch      Pitch   // Tokyo dialect drop position
	Levels     []Level // Per-mora tone, filled by the contour builder
	Keihan     bool    // Levels given explicitly in the notation
	IsTape     bool    // Bare joiner: dashed connector, no word
	IsParticle bool    // Explicit 'p' flag
}

// ClassName returns the CSS class of the section's geometry group.
func (s *Section) ClassName() string {
	if s.IsParticle && s.Role != RoleParticle {
		return RoleParticle.String() + " " + s.Role.String()
	}
	return s.Role.String()
}

// LastLevel returns the level of the final mora and whether there is one.
func (s *Section) LastLevel() (Level, bool) {
	if len(s.Levels) == 0 {
		return Low, false
	}
	return s.Levels[len(s.Levels)-1], true
}

// Sequence is an ordered list of sections forming one sentence or clause.
type Sequence []*Section

// Raw returns the source tokens of the sequence.
func (seq Sequence) Raw() []string {
	out := make([]string, len(seq))
	for i, s := range seq {
		out[i] = s.Raw
	}
	return out
}

// String renders the sequence back as notation.
func (seq Sequence) String() string {
	return strings.Join(seq.Raw(), " ")
}
