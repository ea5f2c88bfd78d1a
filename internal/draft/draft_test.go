package draft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/pitchgraph/internal/draft"
)

func TestFurigana(t *testing.T) {
	tests := []struct {
		surface, reading, want string
	}{
		{"食べました", "たべました", "食[た]べました"},
		{"お茶", "おちゃ", "お茶[おちゃ]"},
		{"大物", "おおもの", "大物[おおもの]"},
		{"好き", "すき", "好[す]き"},
		{"稼いで", "かせいで", "稼[かせ]いで"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, draft.Furigana(tt.surface, tt.reading), tt.surface)
	}
}

func TestWordNotation(t *testing.T) {
	assert.Equal(t, "が", draft.Word{Surface: "が", Particle: true}.Notation())
	assert.Equal(t, "。", draft.Word{Surface: "。", Symbol: true}.Notation())
	assert.Equal(t, "ねこ:", draft.Word{Surface: "ねこ", Reading: "ねこ"}.Notation())
	assert.Equal(t, "ABC:", draft.Word{Surface: "ABC"}.Notation())
	assert.Equal(t, "猫[ねこ]:", draft.Word{Surface: "猫", Reading: "ねこ"}.Notation())
}

func TestDraft(t *testing.T) {
	d, err := draft.New()
	require.NoError(t, err)

	assert.Equal(t, "猫[ねこ]: が 好[す]き:", d.Draft("猫が好き"))

	words := d.Words("食べました。")
	require.Len(t, words, 2)
	assert.Equal(t, "食べました", words[0].Surface)
	assert.Equal(t, "たべました", words[0].Reading)
	assert.True(t, words[1].Symbol)
}
