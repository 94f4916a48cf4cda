package key

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceBasicOperations(t *testing.T) {
	seq := NewSequence()
	assert.True(t, seq.IsEmpty())

	seq.Add(NewRuneEvent('g', ModNone))
	seq.Add(NewRuneEvent('g', ModNone))
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, "gg", seq.String())
	assert.True(t, seq.Equals(MustParseSequence("gg")))
	assert.False(t, seq.Equals(MustParseSequence("g")))
}

func TestSequencePrefixAndSlices(t *testing.T) {
	seq := MustParseSequence("<C-w>jk")

	assert.True(t, seq.HasPrefix(MustParseSequence("<C-w>")))
	assert.True(t, seq.HasPrefix(NewSequence()), "empty sequence is a prefix of everything")
	assert.False(t, seq.HasPrefix(MustParseSequence("<C-w>jkl")))

	assert.Equal(t, "jk", seq.Tail(1).String())
	assert.Equal(t, "<C-w>", seq.Head(1).String())
	assert.Equal(t, "jk", seq.Slice(1, 99).String())
	assert.Equal(t, "<C-w>k", seq.Head(1).Append(seq.Tail(2)).String())

	clone := seq.Clone()
	clone.Events[0] = NewRuneEvent('x', ModNone)
	assert.Equal(t, 'w', seq.Events[0].Rune, "Clone should not share storage")
}

func TestSequenceEqualsNil(t *testing.T) {
	var nilSeq *Sequence
	assert.True(t, nilSeq.Equals(NewSequence()))
	assert.True(t, NewSequence().Equals(nilSeq))
	assert.True(t, nilSeq.Equals(nil))
	assert.False(t, nilSeq.Equals(MustParseSequence("a")))
	assert.False(t, MustParseSequence("a").Equals(nilSeq))
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), NewRuneEvent('x', ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), NewRuneEvent('x', ModAlt)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), NewSpecialEvent(KeyEnter, ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), NewSpecialEvent(KeyEscape, ModNone)},
		{"shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), NewSpecialEvent(KeyUp, ModShift)},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), NewSpecialEvent(KeyF5, ModNone)},
		{"ctrl s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), NewRuneEvent('s', ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTcell(tt.ev))
		})
	}
}
