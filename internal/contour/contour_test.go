package contour_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pitchgraph/internal/contour"
	"github.com/f3rmion/pitchgraph/internal/kana"
	"github.com/f3rmion/pitchgraph/internal/notation"
	"github.com/f3rmion/pitchgraph/internal/pitch"
)

const (
	L = pitch.Low
	H = pitch.High
)

func build(tokens ...string) pitch.Sequence {
	return contour.Build(notation.ParseSequence(tokens, kana.ModeKatakana))
}

func levels(seq pitch.Sequence) [][]pitch.Level {
	out := make([][]pitch.Level, len(seq))
	for i, s := range seq {
		out[i] = s.Levels
	}
	return out
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name     string
		n, p     int
		endedLow bool
		want     []pitch.Level
	}{
		{"heiban after low", 4, 0, true, []pitch.Level{L, H, H, H}},
		{"heiban after high", 4, 0, false, []pitch.Level{H, H, H, H}},
		{"atamadaka", 4, 1, false, []pitch.Level{H, L, L, L}},
		{"nakadaka", 4, 2, true, []pitch.Level{L, H, L, L}},
		{"odaka", 3, 3, true, []pitch.Level{L, H, H}},
		{"all low", 2, pitch.AllLow, false, []pitch.Level{L, L}},
		{"all high", 2, pitch.AllHigh, true, []pitch.Level{H, H}},
		{"drop past the word", 2, 5, true, []pitch.Level{L, H}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := contour.Levels(tt.n, tt.p, tt.endedLow)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Levels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParticleFollowsPrecedingTone(t *testing.T) {
	seq := build("大物[おおもの]:2", "が")
	want := [][]pitch.Level{{L, H, L, L}, {L}}
	if diff := cmp.Diff(want, levels(seq)); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, pitch.PitchOf(pitch.AllLow), seq[1].Pitch)

	seq = build("がっこう:0", "に")
	want = [][]pitch.Level{{L, H, H, H}, {H}}
	if diff := cmp.Diff(want, levels(seq)); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, pitch.PitchOf(pitch.AllHigh), seq[1].Pitch)
}

func TestOdakaDropsOnParticle(t *testing.T) {
	seq := build("おとこ:3", "が")
	assert.Equal(t, []pitch.Level{L}, seq[1].Levels)
}

func TestHeibanFirstMoraDependsOnState(t *testing.T) {
	seq := build("ねこ:0", "いぬ:0")
	assert.Equal(t, []pitch.Level{H, H}, seq[1].Levels)

	seq = build("ねこ:1", "いぬ:0")
	assert.Equal(t, []pitch.Level{L, H}, seq[1].Levels)
}

func TestPitchBreakResetsLow(t *testing.T) {
	seq := build("がっこう:0", "|", "に")
	assert.Equal(t, []pitch.Level{L}, seq[2].Levels)

	seq = build("がっこう:0", "、", "いく:0")
	assert.Equal(t, []pitch.Level{L, H}, seq[2].Levels)
}

func TestEmptyWordIsTransparent(t *testing.T) {
	seq := build("がっこう:0", "。", "に")
	assert.Equal(t, []pitch.Level{H}, seq[2].Levels)
}

func TestKeihanKeepsGivenLevels(t *testing.T) {
	seq := build("おおさか:H;hhhh", "に")
	assert.Equal(t, []pitch.Level{H, H, H, H}, seq[0].Levels)
	assert.Equal(t, []pitch.Level{H}, seq[1].Levels)

	seq = build("さくら:L;llh", "が")
	assert.Equal(t, []pitch.Level{H}, seq[1].Levels)

	seq = build("あめ:A;hl", "が")
	assert.Equal(t, []pitch.Level{L}, seq[1].Levels)
}

func TestKeihanEndsOnLastDrawnLevel(t *testing.T) {
	seq := build("あめ:A;hlh", "が")
	assert.Equal(t, []pitch.Level{H, L}, seq[0].Levels)
	assert.Equal(t, []pitch.Level{L}, seq[1].Levels)
}

func TestNext(t *testing.T) {
	s := &pitch.Section{Role: pitch.RoleNakadaka, Pitch: pitch.PitchOf(3), Moraes: make([]pitch.Mora, 2)}
	assert.False(t, contour.Next(s, true), "drop after the word keeps a high ending")

	s.Moraes = make([]pitch.Mora, 3)
	assert.True(t, contour.Next(s, false))
}

func TestInfer(t *testing.T) {
	assert.Equal(t, pitch.PitchOf(2), contour.Infer(pitch.PitchOf(2), true))
	assert.Equal(t, pitch.PitchOf(pitch.AllLow), contour.Infer(pitch.Pitch{}, true))
	assert.Equal(t, pitch.PitchOf(pitch.AllHigh), contour.Infer(pitch.Pitch{}, false))
}

func TestBuildEveryMoraHasALevel(t *testing.T) {
	seq := build("きょう:1", "は", "いい:1", "てんき:1", "です:1", "ね")
	for _, s := range seq {
		require.Len(t, s.Levels, len(s.Moraes), s.Raw)
	}
}
