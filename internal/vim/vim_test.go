package vim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config/loader"
	"github.com/dshills/vimcore/internal/config/settings"
	"github.com/dshills/vimcore/internal/engine/tracking"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/vim/change"
	"github.com/dshills/vimcore/internal/vim/mark"
	"github.com/dshills/vimcore/internal/vim/register"
)

type fakeEvaluator struct {
	got    []string
	result string
	err    error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, expr string) (string, error) {
	f.got = append(f.got, expr)
	return f.result, f.err
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) Get() (string, error) { return c.text, nil }
func (c *fakeClipboard) Set(text string) error {
	c.text = text
	return nil
}

func newTestVim(t *testing.T, opts ...Option) *Vim {
	t.Helper()
	v := New(opts...)
	t.Cleanup(v.Close)
	return v
}

func newTestBuffer(t *testing.T, v *Vim, name, text string) *Buffer {
	t.Helper()
	b, err := v.NewBuffer(name, text)
	require.NoError(t, err)
	return b
}

func TestBuffersShareGlobalState(t *testing.T) {
	v := newTestVim(t)
	a := newTestBuffer(t, v, "a.txt", "alpha")
	b := newTestBuffer(t, v, "b.txt", "beta")

	require.NoError(t, a.Settings().Set(settings.ShiftWidth, 2))
	swA, _ := a.Settings().Int(settings.ShiftWidth)
	swB, _ := b.Settings().Int(settings.ShiftWidth)
	assert.Equal(t, 2, swA)
	assert.Equal(t, 8, swB)

	require.NoError(t, v.Settings.Set(settings.TabStop, 4))
	tsB, _ := b.Settings().Int(settings.TabStop)
	assert.Equal(t, 4, tsB)

	require.NoError(t, a.Yank('x', "shared", register.Characterwise))
	assert.Equal(t, "shared", v.Registers.Get(mustName(t, 'x')).Text)

	assert.Equal(t, []*Buffer{a, b}, v.Buffers())
	got, ok := v.Buffer(b.ID())
	require.True(t, ok)
	assert.Same(t, b, got)
}

func mustName(t *testing.T, c rune) register.Name {
	t.Helper()
	n, ok := register.NameOf(c)
	require.True(t, ok)
	return n
}

func TestChangeTrackingThroughBuffer(t *testing.T) {
	v := newTestVim(t)
	b := newTestBuffer(t, v, "f", "hello")

	require.NoError(t, b.BeginChange(change.Insert, 5, 5))
	require.NoError(t, b.AddChangeKeys("A"))
	require.NoError(t, b.Insert(5, "!"))
	require.NoError(t, b.Insert(6, "?"))
	require.NoError(t, b.AddChangeKeys("!?<Esc>"))
	rec, err := b.CommitChange()
	require.NoError(t, err)

	assert.Equal(t, "hello!?", b.Text())
	assert.Equal(t, "!?", rec.Text)
	assert.Equal(t, "A!?<Esc>", rec.Keys.String())
	assert.Equal(t, "!?", v.Registers.Get(register.LastInserted).Text)
	assert.Equal(t, change.Idle, b.ChangeState())

	// An edit outside a change is not recorded.
	require.NoError(t, b.Insert(0, ">"))
	last, ok := b.LastChange()
	require.True(t, ok)
	assert.Equal(t, "!?", last.Text)

	require.NoError(t, b.BeginChange(change.Replace, 0, 1))
	_, err = b.Replace(0, 1, "<")
	require.NoError(t, err)
	assert.True(t, b.CancelChange())
	last, _ = b.LastChange()
	assert.Equal(t, "!?", last.Text)
}

func TestLastChangeMark(t *testing.T) {
	v := newTestVim(t)
	b := newTestBuffer(t, v, "f", "0123456789")

	_, ok, err := b.Mark('.')
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Insert(4, "xx"))
	off, ok, err := b.Mark('.')
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tracking.ByteOffset(4), off)

	_, err = b.Delete(8, 10)
	require.NoError(t, err)
	off, _, _ = b.Mark('.')
	assert.Equal(t, tracking.ByteOffset(8), off)

	require.NoError(t, b.Insert(0, "---"))
	off, _, _ = b.Mark('.')
	assert.Equal(t, tracking.ByteOffset(0), off)
}

func TestMarksFollowEdits(t *testing.T) {
	v := newTestVim(t)
	b := newTestBuffer(t, v, "f", "one two three")

	require.NoError(t, b.SetMark('a', 8))
	require.ErrorIs(t, b.SetMark('!', 0), mark.ErrInvalidMark)
	require.Error(t, b.SetMark('b', 100))

	_, err := b.Delete(0, 4)
	require.NoError(t, err)
	off, ok, err := b.Mark('a')
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "three", b.Text()[off:])

	assert.True(t, b.ClearMark('a'))
	assert.False(t, b.ClearMark('a'))
}

func TestCloseReleasesPositions(t *testing.T) {
	v := New()
	b := newTestBuffer(t, v, "f", "some text")
	log := b.Document().Log()

	require.NoError(t, b.SetMark('a', 2))
	require.NoError(t, b.BeginChange(change.Insert, 0, 0))
	require.NoError(t, b.Insert(0, "x"))
	_, err := b.CommitChange()
	require.NoError(t, err)
	require.NoError(t, b.BeginChange(change.Delete, 0, 1))
	assert.Positive(t, log.Live())

	v.SetCurrent(b)
	v.Close()
	assert.Equal(t, 0, log.Live())
	assert.Empty(t, v.Buffers())
	assert.Nil(t, v.Current())

	require.ErrorIs(t, b.Insert(0, "y"), ErrBufferClosed)
	_, err = b.Delete(0, 1)
	require.ErrorIs(t, err, ErrBufferClosed)
	_, err = b.Replace(0, 1, "z")
	require.ErrorIs(t, err, ErrBufferClosed)
	require.ErrorIs(t, b.SetMark('a', 0), ErrBufferClosed)
	require.ErrorIs(t, b.BeginChange(change.Insert, 0, 0), ErrBufferClosed)
	b.Close()
}

func TestResolveKeysFollowsMaxMapDepth(t *testing.T) {
	v := newTestVim(t)
	b := newTestBuffer(t, v, "f", "")

	require.NoError(t, v.Keymap.AddMapping(keymap.ModeNormal, "a", "b", true))
	require.NoError(t, v.Keymap.AddMapping(keymap.ModeNormal, "b", "a", true))
	require.NoError(t, v.Keymap.AddMapping(keymap.ModeInsert, "jj", "<Esc>", false))

	out, err := b.ResolveKeys(keymap.ModeInsert, "xjj")
	require.NoError(t, err)
	assert.Equal(t, "x<Esc>", out)

	_, err = b.ResolveKeys(keymap.ModeNormal, "a")
	require.ErrorIs(t, err, keymap.ErrMappingCycle)

	require.NoError(t, v.Settings.Set("mmd", 5))
	assert.Equal(t, 5, v.Keymap.MaxDepth())
	require.NoError(t, settings.Apply(v.Settings, "mmd&"))
	assert.Equal(t, keymap.DefaultMaxDepth, v.Keymap.MaxDepth())
}

func TestDefaultRegisterFollowsClipboardOption(t *testing.T) {
	cb := &fakeClipboard{}
	v := newTestVim(t, WithClipboard(cb))
	b := newTestBuffer(t, v, "f", "")

	assert.Equal(t, register.Unnamed, v.DefaultRegister())
	require.NoError(t, b.Yank(0, "plain", register.Linewise))
	assert.Equal(t, "plain", v.Registers.Get(register.LastYank).Text)

	require.NoError(t, settings.Apply(v.Settings, "cb=unnamedplus"))
	assert.Equal(t, register.Clipboard, v.DefaultRegister())
	require.NoError(t, b.Yank(0, "to clipboard", register.Characterwise))
	assert.Equal(t, "to clipboard", cb.text)

	require.NoError(t, settings.Apply(v.Settings, "cb=unnamed"))
	assert.Equal(t, register.Selection, v.DefaultRegister())

	require.ErrorIs(t, b.Yank('!', "x", register.Characterwise), register.ErrInvalidName)
}

func TestSetCurrentFileNames(t *testing.T) {
	v := newTestVim(t)
	a := newTestBuffer(t, v, "a.go", "")
	b := newTestBuffer(t, v, "b.go", "")

	v.SetCurrent(a)
	v.SetCurrent(b)
	assert.Same(t, b, v.Current())
	assert.Equal(t, "b.go", v.Registers.Get(register.FileName).Text)
	assert.Equal(t, "a.go", v.Registers.Get(register.AlternateFile).Text)
}

func TestSetCurrentNil(t *testing.T) {
	v := newTestVim(t)
	a := newTestBuffer(t, v, "a.go", "")

	require.NotPanics(t, func() { v.SetCurrent(nil) })
	assert.Nil(t, v.Current())
	assert.Empty(t, v.Registers.Get(register.FileName).Text)

	v.SetCurrent(a)
	v.SetCurrent(nil)
	assert.Nil(t, v.Current())
	assert.Empty(t, v.Registers.Get(register.FileName).Text)
	assert.Equal(t, "a.go", v.Registers.Get(register.AlternateFile).Text)
}

func TestEvaluateExpression(t *testing.T) {
	t.Run("lua", func(t *testing.T) {
		v := newTestVim(t)
		require.NoError(t, v.Registers.Set(mustName(t, 'a'), "word", register.Characterwise))
		require.NoError(t, v.Settings.Set(settings.ShiftWidth, 3))

		got, err := v.EvaluateExpression(context.Background(), "reg('a') .. opt('sw') * 2")
		require.NoError(t, err)
		assert.Equal(t, "word6", got)
		assert.Equal(t, "reg('a') .. opt('sw') * 2", v.Registers.Get(register.Expression).Text)
	})

	t.Run("fake", func(t *testing.T) {
		fake := &fakeEvaluator{err: errors.New("nope")}
		v := newTestVim(t, WithEvaluator(fake))

		_, err := v.EvaluateExpression(context.Background(), "1+1")
		require.Error(t, err)
		assert.Equal(t, []string{"1+1"}, fake.got)

		fake.err, fake.result = nil, "2"
		got, err := v.EvaluateExpression(context.Background(), "1+1")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})
}

func TestLoadConfig(t *testing.T) {
	v := newTestVim(t)
	b := newTestBuffer(t, v, "f", "")

	f, err := loader.Parse(loader.FormatTOML, "cfg", []byte(`
[settings]
sw = 4

[[map]]
mode = "i"
from = "jk"
to = "<Esc>"
noremap = true
`))
	require.NoError(t, err)
	require.NoError(t, v.LoadConfig(f))

	sw, _ := b.Settings().Int(settings.ShiftWidth)
	assert.Equal(t, 4, sw)
	out, err := b.ResolveKeys(keymap.ModeInsert, "jk")
	require.NoError(t, err)
	assert.Equal(t, "<Esc>", out)

	require.NoError(t, v.ReloadConfig(&loader.File{}))
	sw, _ = b.Settings().Int(settings.ShiftWidth)
	assert.Equal(t, 8, sw)
	assert.Equal(t, 0, v.Keymap.Len(keymap.ModeInsert))
}
