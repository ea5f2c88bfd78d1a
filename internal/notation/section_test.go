package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/notation"
	"github.com/f3rmion/pitchgraph/internal/pitch"
)

func TestSplitToken(t *testing.T) {
	assert.Equal(t, notation.Token{Word: "大物[おおもの]", Sep: ":", Accent: "2"}, notation.SplitToken("大物[おおもの]:2"))
	assert.Equal(t, notation.Token{Word: "ねこ", Sep: "；", Accent: "a"}, notation.SplitToken("ねこ；a"))
	assert.Equal(t, notation.Token{Word: "が"}, notation.SplitToken("が"))
	assert.Equal(t, notation.Token{Word: ";"}, notation.SplitToken(";"))
}

func TestParseAccent(t *testing.T) {
	assert.Equal(t, notation.Accent{Matched: true, IsParticle: true, Role: "p", Pitch: "1"}, notation.ParseAccent("p1"))
	assert.Equal(t, notation.Accent{Matched: true, IsParticle: true, Role: "a", Pitch: "1"}, notation.ParseAccent("pa1"))
	assert.Equal(t, notation.Accent{Matched: true, Role: "k", Pitch: "-1"}, notation.ParseAccent("k-1"))
	assert.Equal(t, notation.Accent{Matched: true, Keihan: true, Role: "H", Levels: "hlll"}, notation.ParseAccent("H;hlll"))
	assert.False(t, notation.ParseAccent("xyz").Matched)
}

// SectionSuite parses single tokens in katakana mode.
type SectionSuite struct {
	suite.Suite
}

func (s *SectionSuite) parse(raw string) *pitch.Section {
	return notation.ParseSection(raw, kana.ModeKatakana)
}

func (s *SectionSuite) TestRoleFromPitch() {
	cases := map[string]pitch.Role{
		"おおもの:0": pitch.RoleHeiban,
		"おおもの:1": pitch.RoleAtamadaka,
		"おおもの:2": pitch.RoleNakadaka,
		"おおもの:4": pitch.RoleOdaka,
		"おおもの:":  pitch.RoleHeiban,
	}
	for raw, want := range cases {
		s.Equal(want, s.parse(raw).Role, raw)
	}
}

func (s *SectionSuite) TestExplicitRole() {
	sec := s.parse("たべる:k2")
	s.Equal(pitch.RoleKifuku, sec.Role)
	s.Equal(pitch.PitchOf(2), sec.Pitch)

	sec = s.parse("たかい:o")
	s.Equal(pitch.RoleOdaka, sec.Role)
	s.Equal(pitch.PitchOf(3), sec.Pitch)
}

func (s *SectionSuite) TestFurigana() {
	sec := s.parse("大物[おおもの]:2")
	s.Equal("大物", sec.Word)
	s.Equal("大物[おおもの]", sec.Written)
	s.Len(sec.Moraes, 4)
	s.Equal("オ", sec.Moraes[0].Text)
	s.Equal(pitch.RoleNakadaka, sec.Role)
}

func (s *SectionSuite) TestBareParticle() {
	sec := s.parse("が")
	s.Equal(pitch.RoleParticle, sec.Role)
	s.False(sec.Pitch.Set)
	s.False(sec.IsParticle)
}

func (s *SectionSuite) TestParticleFlag() {
	sec := s.parse("まで:p1")
	s.True(sec.IsParticle)
	s.Equal(pitch.RoleParticle, sec.Role)
	s.Equal(pitch.PitchOf(1), sec.Pitch)

	sec = s.parse("ねこ:pa1")
	s.True(sec.IsParticle)
	s.Equal(pitch.RoleAtamadaka, sec.Role)
	s.Equal("particle atamadaka", sec.ClassName())
}

func (s *SectionSuite) TestParticleSound() {
	s.Equal("ワ", s.parse("は").Moraes[0].Text)
	s.Equal("エ", s.parse("へ").Moraes[0].Text)
	s.Equal("オ", s.parse("を").Moraes[0].Text)
	s.Equal("わ", notation.ParseSection("は", kana.ModeAsGiven).Moraes[0].Text)
	// Only one-mora particles are respelled.
	s.Equal("ハ", s.parse("はな:2").Moraes[0].Text)
}

func (s *SectionSuite) TestUnparseableAccentIsParticle() {
	sec := s.parse("ねこ:xyz")
	s.Equal(pitch.RoleParticle, sec.Role)
}

func (s *SectionSuite) TestEmpty() {
	for _, raw := range []string{"|", "、", ",", "。"} {
		sec := s.parse(raw)
		s.Equal(pitch.RoleEmpty, sec.Role, raw)
		s.Empty(sec.Moraes, raw)
	}
}

func (s *SectionSuite) TestTape() {
	for _, raw := range []string{";", ":", "；", "："} {
		sec := s.parse(raw)
		s.True(sec.IsTape, raw)
		s.Equal(pitch.RoleEmpty, sec.Role)
	}
}

func (s *SectionSuite) TestDevoiced() {
	sec := s.parse("*しき:0")
	s.Equal("しき", sec.Word)
	s.Equal("*君[きみ]:0", s.parse("*君[きみ]:0").Raw)
	s.Equal("君[きみ]", s.parse("*君[きみ]:0").Written)
	require.Len(s.T(), sec.Moraes, 2)
	s.True(sec.Moraes[0].Devoiced)
	s.Equal("シ", sec.Moraes[0].Text)
}

func (s *SectionSuite) TestKeihan() {
	sec := s.parse("おおさか:H;hlll")
	s.True(sec.Keihan)
	s.Equal(pitch.RoleKeihanHeiban, sec.Role)
	s.Equal([]pitch.Level{pitch.High, pitch.Low, pitch.Low, pitch.Low}, sec.Levels)
}

func (s *SectionSuite) TestKeihanRepeatsLastLevel() {
	sec := s.parse("さくら:L;lh")
	s.Equal(pitch.RoleKeihanLowHeiban, sec.Role)
	s.Equal([]pitch.Level{pitch.Low, pitch.High, pitch.High}, sec.Levels)
}

func (s *SectionSuite) TestKeihanCutsExtraLevels() {
	sec := s.parse("あめ:A;hlh")
	s.Equal([]pitch.Level{pitch.High, pitch.Low}, sec.Levels)
}

func (s *SectionSuite) TestFullWidthPitch() {
	sec := s.parse("おおもの；２")
	s.Equal(pitch.RoleNakadaka, sec.Role)
	s.Equal(pitch.PitchOf(2), sec.Pitch)

	sec = s.parse("まで:ｐ１")
	s.True(sec.IsParticle)
	s.Equal(pitch.PitchOf(1), sec.Pitch)
}

func (s *SectionSuite) TestKeihanParticle() {
	sec := s.parse("から:pA;hl")
	s.True(sec.IsParticle)
	s.Equal(pitch.RoleKeihanAtamadaka, sec.Role)
}

func TestSectionSuite(t *testing.T) {
	suite.Run(t, new(SectionSuite))
}

func TestParseSequence(t *testing.T) {
	seq := notation.ParseSequence([]string{"ねこ:1", "が"}, kana.ModeHiragana)
	require.Len(t, seq, 2)
	assert.Equal(t, "ねこ:1 が", seq.String())
	assert.Equal(t, "が", seq[1].Moraes[0].Text)
}
