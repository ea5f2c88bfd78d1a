package pitch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pitchgraph/internal/pitch"
)

func TestRoleLetters(t *testing.T) {
	seen := map[byte]pitch.Role{}
	for _, r := range pitch.Roles() {
		l := r.Letter()
		require.NotZero(t, l, "role %s has no letter", r)
		_, dup := seen[l]
		require.False(t, dup, "letter %q used twice", l)
		seen[l] = r

		got, ok := pitch.RoleFromLetter(l)
		require.True(t, ok)
		assert.Equal(t, r, got)

		byName, ok := pitch.RoleFromName(r.String())
		require.True(t, ok)
		assert.Equal(t, r, byName)
	}
}

func TestRoleFromLetterIsCaseSensitive(t *testing.T) {
	r, ok := pitch.RoleFromLetter('h')
	require.True(t, ok)
	assert.Equal(t, pitch.RoleHeiban, r)

	r, ok = pitch.RoleFromLetter('H')
	require.True(t, ok)
	assert.Equal(t, pitch.RoleKeihanHeiban, r)
	assert.True(t, r.IsKeihan())

	_, ok = pitch.RoleFromLetter('z')
	assert.False(t, ok)
}

func TestDefaultPitch(t *testing.T) {
	assert.Equal(t, pitch.PitchOf(0), pitch.RoleHeiban.DefaultPitch(3))
	assert.Equal(t, pitch.PitchOf(1), pitch.RoleAtamadaka.DefaultPitch(3))
	assert.Equal(t, pitch.PitchOf(2), pitch.RoleNakadaka.DefaultPitch(3))
	assert.Equal(t, pitch.PitchOf(3), pitch.RoleOdaka.DefaultPitch(3))
	assert.Equal(t, pitch.PitchOf(pitch.AllLow), pitch.RoleEmpty.DefaultPitch(0))
	assert.False(t, pitch.RoleParticle.DefaultPitch(1).Set)
}

func TestClassName(t *testing.T) {
	s := &pitch.Section{Role: pitch.RoleAtamadaka, IsParticle: true}
	assert.Equal(t, "particle atamadaka", s.ClassName())

	s = &pitch.Section{Role: pitch.RoleParticle, IsParticle: true}
	assert.Equal(t, "particle", s.ClassName())

	s = &pitch.Section{Role: pitch.RoleKeihanLowOdaka}
	assert.Equal(t, "keihan_low_odaka", s.ClassName())
}

func TestLastLevel(t *testing.T) {
	s := &pitch.Section{}
	_, ok := s.LastLevel()
	assert.False(t, ok)

	s.Levels = []pitch.Level{pitch.Low, pitch.High}
	l, ok := s.LastLevel()
	require.True(t, ok)
	assert.Equal(t, pitch.High, l)
}

func TestSequenceString(t *testing.T) {
	seq := pitch.Sequence{{Raw: "大物[おおもの]:2"}, {Raw: "が"}}
	assert.Equal(t, "大物[おおもの]:2 が", seq.String())
}
