package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// parseOne parses notation that must describe exactly one key.
func parseOne(t *testing.T, spec string) Event {
	t.Helper()
	seq, err := ParseSequence(spec)
	require.NoError(t, err, spec)
	require.Equal(t, 1, seq.Len(), spec)
	return seq.Events[0]
}

func TestParseSingleCharacter(t *testing.T) {
	for _, r := range []rune{'a', 'A', '1', '@', 'é', '+'} {
		event := parseOne(t, string(r))
		assert.Equal(t, NewRuneEvent(r, ModNone), event)
		assert.False(t, event.IsModified())
	}
}

func TestParseVimStyle(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"<Esc>", Event{Key: KeyEscape}},
		{"<CR>", Event{Key: KeyEnter}},
		{"<Enter>", Event{Key: KeyEnter}},
		{"<BS>", Event{Key: KeyBackspace}},
		{"<F12>", Event{Key: KeyF12}},
		{"<Space>", Event{Key: KeyRune, Rune: ' '}},
		{"<lt>", Event{Key: KeyRune, Rune: '<'}},
		{"<Bar>", Event{Key: KeyRune, Rune: '|'}},
		{"<C-s>", Event{Key: KeyRune, Rune: 's', Modifiers: ModCtrl}},
		{"<C-S>", Event{Key: KeyRune, Rune: 's', Modifiers: ModCtrl}},
		{"<C-S-p>", Event{Key: KeyRune, Rune: 'p', Modifiers: ModCtrl | ModShift}},
		{"<S-a>", Event{Key: KeyRune, Rune: 'A'}},
		{"<M-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}},
		{"<D-x>", Event{Key: KeyRune, Rune: 'x', Modifiers: ModMeta}},
		{"<S-Tab>", Event{Key: KeyTab, Modifiers: ModShift}},
		{"<C-S-F12>", Event{Key: KeyF12, Modifiers: ModCtrl | ModShift}},
		{"<M-F4>", Event{Key: KeyF4, Modifiers: ModAlt}},
		{"<C-->", Event{Key: KeyRune, Rune: '-', Modifiers: ModCtrl}},
		{"<Char-13>", Event{Key: KeyRune, Rune: '\r'}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOne(t, tt.spec))
		})
	}
}

func TestParseBracketErrors(t *testing.T) {
	for _, inner := range []string{"Nope", "F13", "a", "C-", "Char-x"} {
		_, err := parseVimStyle(inner)
		assert.ErrorIs(t, err, ErrInvalidSpec, inner)
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input string
		want  []Event
	}{
		{"", nil},
		{"jj", []Event{NewRuneEvent('j', ModNone), NewRuneEvent('j', ModNone)}},
		{"a b", []Event{NewRuneEvent('a', ModNone), NewRuneEvent(' ', ModNone), NewRuneEvent('b', ModNone)}},
		{"<C-w>j", []Event{NewRuneEvent('w', ModCtrl), NewRuneEvent('j', ModNone)}},
		{"<Esc>:w<CR>", []Event{
			NewSpecialEvent(KeyEscape, ModNone),
			NewRuneEvent(':', ModNone),
			NewRuneEvent('w', ModNone),
			NewSpecialEvent(KeyEnter, ModNone),
		}},
		{"<x>", []Event{NewRuneEvent('<', ModNone), NewRuneEvent('x', ModNone), NewRuneEvent('>', ModNone)}},
		{"<F13>", []Event{
			NewRuneEvent('<', ModNone), NewRuneEvent('F', ModNone), NewRuneEvent('1', ModNone),
			NewRuneEvent('3', ModNone), NewRuneEvent('>', ModNone),
		}},
		{"<", []Event{NewRuneEvent('<', ModNone)}},
		{"üb", []Event{NewRuneEvent('ü', ModNone), NewRuneEvent('b', ModNone)}},
	}

	for _, tt := range tests {
		seq, err := ParseSequence(tt.input)
		require.NoError(t, err, tt.input)
		want := NewSequenceFrom(tt.want...)
		assert.Truef(t, seq.Equals(want), "ParseSequence(%q) = %s, want %s", tt.input, seq, want)
	}

	_, err := ParseSequence("a\xffb")
	assert.ErrorIs(t, err, ErrInvalidSpec)
	assert.Panics(t, func() { MustParseSequence("\xff") })
}

func TestVimString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRuneEvent('a', ModNone), "a"},
		{NewRuneEvent('a', ModShift), "A"},
		{NewRuneEvent(' ', ModNone), "<Space>"},
		{NewRuneEvent('<', ModNone), "<lt>"},
		{NewRuneEvent('w', ModCtrl), "<C-w>"},
		{NewRuneEvent('\r', ModNone), "<Char-13>"},
		{NewSpecialEvent(KeyEnter, ModNone), "<CR>"},
		{NewSpecialEvent(KeyF1, ModShift), "<S-F1>"},
		{Event{}, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.event.VimString())
	}
}

func drawEvent(t *rapid.T) Event {
	if rapid.Bool().Draw(t, "special") {
		k := Key(rapid.IntRange(int(KeyEscape), int(KeyF12)).Draw(t, "key"))
		mods := Modifier(rapid.IntRange(0, 15).Draw(t, "mods"))
		return NewSpecialEvent(k, mods)
	}
	r := rapid.SampledFrom([]rune("aZ09 <>|\\-@é\r\t")).Draw(t, "rune")
	mods := Modifier(rapid.IntRange(0, 15).Draw(t, "mods"))
	return NewRuneEvent(r, mods)
}

func TestSequenceNotationRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(t, "n")
		seq := NewSequence()
		for i := 0; i < n; i++ {
			seq.Add(drawEvent(t))
		}

		back, err := ParseSequence(seq.String())
		if err != nil {
			t.Fatalf("ParseSequence(%q): %v", seq.String(), err)
		}
		if !back.Equals(seq) {
			t.Fatalf("round trip of %q gave %q", seq.String(), back.String())
		}
	})
}
