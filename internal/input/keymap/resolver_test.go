package keymap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vimcore/internal/input/key"
)

func mustAdd(t *testing.T, r *Resolver, mode Mode, from, to string, recursive bool) {
	t.Helper()
	require.NoError(t, r.AddMapping(mode, from, to, recursive))
}

func TestResolveNonRecursiveIsVerbatim(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeInsert, "jj", "<Esc>", false)
	mustAdd(t, r, ModeInsert, "<Esc>", "XX", true)

	out, err := r.ResolveString(ModeInsert, "jj")
	require.NoError(t, err)
	assert.Equal(t, "<Esc>", out)

	out, err = r.ResolveString(ModeInsert, "<Esc>")
	require.NoError(t, err)
	assert.Equal(t, "XX", out)
}

func TestResolveLongestPrefix(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "g", "A", false)
	mustAdd(t, r, ModeNormal, "gg", "B", false)
	mustAdd(t, r, ModeNormal, "ggg", "C", false)

	tests := []struct {
		in, want string
	}{
		{"g", "A"},
		{"gg", "B"},
		{"ggg", "C"},
		{"gggg", "CA"},
		{"xgy", "xAy"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, err := r.ResolveString(ModeNormal, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResolveRecursive(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "a", "b", true)
	mustAdd(t, r, ModeNormal, "b", "c", true)
	mustAdd(t, r, ModeNormal, "x", "a", false)

	out, err := r.ResolveString(ModeNormal, "a")
	require.NoError(t, err)
	assert.Equal(t, "c", out)

	// Non-recursive output is never rescanned.
	out, err = r.ResolveString(ModeNormal, "x")
	require.NoError(t, err)
	assert.Equal(t, "a", out)
}

func TestResolveExpansionJoinsFollowingInput(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "a", "b", true)
	mustAdd(t, r, ModeNormal, "bc", "Z", false)

	out, err := r.ResolveString(ModeNormal, "ac")
	require.NoError(t, err)
	assert.Equal(t, "Z", out)
}

func TestResolveRhsStartingWithLhs(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "j", "jzz", true)
	mustAdd(t, r, ModeNormal, "z", "Q", false)

	out, err := r.ResolveString(ModeNormal, "jj")
	require.NoError(t, err)
	assert.Equal(t, "jQQjQQ", out)
}

func TestResolveCycle(t *testing.T) {
	r := NewResolver(WithMaxDepth(20))
	mustAdd(t, r, ModeNormal, "a", "b", true)
	mustAdd(t, r, ModeNormal, "b", "a", true)
	mustAdd(t, r, ModeNormal, "q", "Q", false)

	out, err := r.ResolveString(ModeNormal, "qaq")
	require.ErrorIs(t, err, ErrMappingCycle)
	assert.Equal(t, "Qaq", out, "resolved prefix plus untransformed remainder")
}

func TestResolveGrowingCycle(t *testing.T) {
	r := NewResolver(WithMaxDepth(50))
	mustAdd(t, r, ModeNormal, "x", "yx", true)

	out, err := r.ResolveString(ModeNormal, "x")
	require.ErrorIs(t, err, ErrMappingCycle)
	assert.Equal(t, "x", out)
}

func TestResolveWideExpansionIsNotACycle(t *testing.T) {
	r := NewResolver(WithMaxDepth(3))
	mustAdd(t, r, ModeNormal, "a", "bbbb", true)
	mustAdd(t, r, ModeNormal, "b", "c", true)

	out, err := r.ResolveString(ModeNormal, "a")
	require.NoError(t, err)
	assert.Equal(t, "cccc", out)
}

func TestResolveExpansionWiderThanDefaultDepth(t *testing.T) {
	r := NewResolver()
	wide := strings.Repeat("b", DefaultMaxDepth+1)
	mustAdd(t, r, ModeNormal, "a", wide, true)
	mustAdd(t, r, ModeNormal, "b", "c", true)

	out, err := r.ResolveString(ModeNormal, "a")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("c", DefaultMaxDepth+1), out)
}

func TestResolveDepthLimitIsNesting(t *testing.T) {
	r := NewResolver(WithMaxDepth(3))
	mustAdd(t, r, ModeNormal, "a", "b", true)
	mustAdd(t, r, ModeNormal, "b", "c", true)
	mustAdd(t, r, ModeNormal, "c", "d", true)

	out, err := r.ResolveString(ModeNormal, "a")
	require.NoError(t, err)
	assert.Equal(t, "d", out)

	mustAdd(t, r, ModeNormal, "d", "e", true)
	out, err = r.ResolveString(ModeNormal, "xa")
	require.ErrorIs(t, err, ErrMappingCycle)
	assert.Equal(t, "xa", out)
}

func TestResolveModeScoped(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeInsert, "jj", "<Esc>", false)

	out, err := r.ResolveString(ModeNormal, "jj")
	require.NoError(t, err)
	assert.Equal(t, "jj", out)
}

func TestAddRuleReplacesDuplicate(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "a", "1", false)
	mustAdd(t, r, ModeNormal, "b", "2", false)
	mustAdd(t, r, ModeNormal, "a", "3", true)

	assert.Equal(t, 2, r.Len(ModeNormal))

	rules := r.Rules(ModeNormal)
	require.Len(t, rules, 2)
	assert.Equal(t, "b", rules[0].From.String())
	assert.Equal(t, "a", rules[1].From.String())
	assert.Equal(t, "3", rules[1].To.String())
	assert.True(t, rules[1].Recursive)

	rule, ok := r.Lookup(ModeNormal, "a")
	require.True(t, ok)
	assert.Equal(t, "3", rule.To.String())
}

func TestAddMappingErrors(t *testing.T) {
	r := NewResolver()
	require.ErrorIs(t, r.AddMapping(ModeNormal, "", "x", false), ErrEmptyMapping)
	require.ErrorIs(t, r.AddMapping(Mode(99), "a", "x", false), ErrUnknownMode)
	require.Error(t, r.AddMapping(ModeNormal, "a\xff", "x", false))
}

func TestRemoveAndClear(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeNormal, "ab", "X", false)
	mustAdd(t, r, ModeNormal, "abc", "Y", false)

	assert.True(t, r.RemoveMapping(ModeNormal, "ab"))
	assert.False(t, r.RemoveMapping(ModeNormal, "ab"))

	_, ok := r.Lookup(ModeNormal, "ab")
	assert.False(t, ok)
	rule, ok := r.Lookup(ModeNormal, "abc")
	require.True(t, ok)
	assert.Equal(t, "Y", rule.To.String())

	r.Clear(ModeNormal)
	assert.Equal(t, 0, r.Len(ModeNormal))
	assert.Empty(t, r.Rules(ModeNormal))
}

func TestIsPrefix(t *testing.T) {
	r := NewResolver()
	mustAdd(t, r, ModeInsert, "jk", "<Esc>", false)

	assert.True(t, r.IsPrefix(ModeInsert, key.MustParseSequence("j")))
	assert.False(t, r.IsPrefix(ModeInsert, key.MustParseSequence("jk")), "complete match is not a strict prefix")
	assert.False(t, r.IsPrefix(ModeInsert, key.MustParseSequence("x")))
	assert.False(t, r.IsPrefix(ModeNormal, key.MustParseSequence("j")))
}

func TestIsPrefixEmptyInput(t *testing.T) {
	r := NewResolver()
	assert.False(t, r.IsPrefix(ModeInsert, nil), "no rules")

	mustAdd(t, r, ModeInsert, "jk", "<Esc>", false)
	assert.True(t, r.IsPrefix(ModeInsert, nil))
	assert.True(t, r.IsPrefix(ModeInsert, key.NewSequence()))
	_, ok := r.Lookup(ModeInsert, "")
	assert.False(t, ok)
}

func TestSetMaxDepth(t *testing.T) {
	r := NewResolver()
	assert.Equal(t, DefaultMaxDepth, r.MaxDepth())
	r.SetMaxDepth(5)
	assert.Equal(t, 5, r.MaxDepth())
	r.SetMaxDepth(0)
	assert.Equal(t, 5, r.MaxDepth())
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("i")
	require.NoError(t, err)
	assert.Equal(t, ModeInsert, got)

	_, err = ParseMode("bogus")
	require.ErrorIs(t, err, ErrUnknownMode)
}

// TestPropertyUnmappedInputIsIdentity checks that resolving input built
// only from keys that start no rule returns the input unchanged.
func TestPropertyUnmappedInputIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewResolver()
		mapped := []rune("abc")
		for i := rapid.IntRange(0, 6).Draw(t, "rules"); i > 0; i-- {
			from := string(rapid.SliceOfN(rapid.SampledFrom(mapped), 1, 3).Draw(t, "from"))
			to := string(rapid.SliceOfN(rapid.SampledFrom([]rune("abcxyz")), 0, 4).Draw(t, "to"))
			if err := r.AddMapping(ModeNormal, from, to, rapid.Bool().Draw(t, "recursive")); err != nil {
				t.Fatalf("AddMapping: %v", err)
			}
		}

		input := string(rapid.SliceOfN(rapid.SampledFrom([]rune("xyz <")), 0, 12).Draw(t, "input"))
		in := key.MustParseSequence(input)
		out, err := r.Resolve(ModeNormal, in)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if !out.Equals(in) {
			t.Fatalf("Resolve(%q) = %q", in, out)
		}
	})
}

// TestPropertyNonRecursiveOutputVerbatim checks that with only
// non-recursive rules each match is replaced exactly once.
func TestPropertyNonRecursiveOutputVerbatim(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewResolver()
		to := string(rapid.SliceOfN(rapid.SampledFrom([]rune("ab")), 1, 4).Draw(t, "to"))
		if err := r.AddMapping(ModeNormal, "a", to, false); err != nil {
			t.Fatalf("AddMapping: %v", err)
		}
		if err := r.AddMapping(ModeNormal, "b", "a", false); err != nil {
			t.Fatalf("AddMapping: %v", err)
		}

		input := rapid.SliceOfN(rapid.SampledFrom([]rune("abx")), 0, 10).Draw(t, "input")
		var want []rune
		for _, c := range input {
			switch c {
			case 'a':
				want = append(want, []rune(to)...)
			case 'b':
				want = append(want, 'a')
			default:
				want = append(want, c)
			}
		}

		out, err := r.ResolveString(ModeNormal, string(input))
		if err != nil {
			t.Fatalf("ResolveString: %v", err)
		}
		if out != string(want) {
			t.Fatalf("ResolveString(%q) = %q, want %q", string(input), out, string(want))
		}
	})
}
