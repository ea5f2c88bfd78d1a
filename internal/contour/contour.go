// Package contour assigns a high or low tone to every mora of a sentence.
//
// The only state carried between words is whether the previous word ended
// low. A sentence starts as if preceded by a low tone.
package contour

import (
	"github.com/f3rmion/pitchgraph/internal/notation"
	"github.com/f3rmion/pitchgraph/internal/pitch"
)

// Build fills in Levels (and the inferred pitch of bare particles) for every
// section of seq, in order, and returns seq.
func Build(seq pitch.Sequence) pitch.Sequence {
	endedLow := true
	for _, s := range seq {
		endedLow = Apply(s, endedLow)
	}
	return seq
}

// Apply resolves one section given the incoming state and returns the state
// for the next section. Sections with given levels end on their last level;
// without a mora they pass the state on.
func Apply(s *pitch.Section, endedLow bool) bool {
	if s.Keihan {
		last, ok := s.LastLevel()
		if !ok {
			return endedLow
		}
		return last == pitch.Low
	}
	s.Pitch = Infer(s.Pitch, endedLow)
	s.Levels = Levels(len(s.Moraes), s.Pitch.Value, endedLow)
	return Next(s, endedLow)
}

// Infer gives a bare particle the tone of what precedes it: all low after a
// low ending, all high otherwise. Set pitches are returned unchanged.
func Infer(p pitch.Pitch, endedLow bool) pitch.Pitch {
	if p.Set {
		return p
	}
	if endedLow {
		return pitch.PitchOf(pitch.AllLow)
	}
	return pitch.PitchOf(pitch.AllHigh)
}

// Levels computes the tones of n morae with drop position p.
func Levels(n, p int, endedLow bool) []pitch.Level {
	levels := make([]pitch.Level, n)
	for i := range levels {
		levels[i] = level(i, p, endedLow)
	}
	return levels
}

func level(i, p int, endedLow bool) pitch.Level {
	switch {
	case p == pitch.AllLow:
		return pitch.Low
	case p == pitch.AllHigh:
		return pitch.High
	case p == 1:
		if i == 0 {
			return pitch.High
		}
		return pitch.Low
	case i == 0:
		if endedLow {
			return pitch.Low
		}
		return pitch.High
	case i < p || p == 0:
		return pitch.High
	}
	return pitch.Low
}

// Next returns whether the section leaves the contour low. Empty sections
// other than pitch breaks are transparent.
func Next(s *pitch.Section, endedLow bool) bool {
	if s.Role == pitch.RoleEmpty && !notation.IsPitchBreak(s.Word) {
		return endedLow
	}
	switch p := s.Pitch.Value; {
	case p == 1:
		return true
	case p == 0 || p == pitch.AllHigh:
		return false
	default:
		return len(s.Moraes) >= p
	}
}
