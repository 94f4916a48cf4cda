package vim

import (
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/vimcore/internal/config/settings"
	"github.com/dshills/vimcore/internal/engine/buffer"
	"github.com/dshills/vimcore/internal/engine/tracking"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/vim/change"
	"github.com/dshills/vimcore/internal/vim/register"
)

// lastChangeMark is the mark kept on the most recent edit.
const lastChangeMark = '.'

// Buffer is one document and the per-document state around it.
type Buffer struct {
	vim   *Vim
	doc   *buffer.Document
	local *settings.Local

	mu     sync.Mutex
	closed bool
}

// ID returns the document identity.
func (b *Buffer) ID() tracking.DocumentID {
	return b.doc.ID()
}

// Name returns the document name.
func (b *Buffer) Name() string {
	return b.doc.Name()
}

// Document returns the underlying document.
func (b *Buffer) Document() *buffer.Document {
	return b.doc
}

// Settings returns the buffer's local settings.
func (b *Buffer) Settings() *settings.Local {
	return b.local
}

// Text returns the current content.
func (b *Buffer) Text() string {
	return b.doc.Text()
}

// Insert inserts text at offset. While a change is open the text is added
// to it.
func (b *Buffer) Insert(offset tracking.ByteOffset, text string) error {
	if err := b.check(); err != nil {
		return err
	}
	if _, err := b.doc.Insert(offset, text); err != nil {
		return err
	}
	return b.edited(offset, text)
}

// Delete removes [start, end) and returns the removed text.
func (b *Buffer) Delete(start, end tracking.ByteOffset) (string, error) {
	if err := b.check(); err != nil {
		return "", err
	}
	removed, err := b.doc.Delete(start, end)
	if err != nil {
		return "", err
	}
	return removed, b.edited(start, "")
}

// Replace substitutes text for [start, end) and returns the removed text.
// While a change is open the new text is added to it.
func (b *Buffer) Replace(start, end tracking.ByteOffset, text string) (string, error) {
	if err := b.check(); err != nil {
		return "", err
	}
	removed, err := b.doc.Replace(start, end, text)
	if err != nil {
		return "", err
	}
	return removed, b.edited(start, text)
}

// BeginChange opens a change of kind over [start, end) of the current
// version. An open change is discarded.
func (b *Buffer) BeginChange(kind change.Kind, start, end tracking.ByteOffset) error {
	if err := b.check(); err != nil {
		return err
	}
	return b.vim.Changes.Begin(b.doc.Log(), kind, start, end)
}

// AddChangeKeys records keys that belong to the open change.
func (b *Buffer) AddChangeKeys(keys string) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	return b.vim.Changes.AddKeys(b.ID(), seq)
}

// SetChangeCount sets the repeat count of the open change.
func (b *Buffer) SetChangeCount(n int) error {
	return b.vim.Changes.SetCount(b.ID(), n)
}

// CommitChange finishes the open change. The text of a committed insert
// becomes the content of the . register.
func (b *Buffer) CommitChange() (change.Record, error) {
	rec, err := b.vim.Changes.Commit(b.ID())
	if err != nil {
		return change.Record{}, err
	}
	if rec.Kind == change.Insert {
		b.vim.Registers.SetLastInserted(rec.Text)
	}
	return rec, nil
}

// CancelChange drops the open change and reports whether there was one.
func (b *Buffer) CancelChange() bool {
	return b.vim.Changes.Cancel(b.ID())
}

// LastChange returns the last committed change.
func (b *Buffer) LastChange() (change.Record, bool) {
	return b.vim.Changes.LastChange(b.ID())
}

// ChangeState returns whether a change is open.
func (b *Buffer) ChangeState() change.State {
	return b.vim.Changes.State(b.ID())
}

// SetMark places mark id at offset of the current version.
func (b *Buffer) SetMark(id rune, offset tracking.ByteOffset) error {
	if err := b.check(); err != nil {
		return err
	}
	pos, err := b.doc.TrackCurrent(offset)
	if err != nil {
		return err
	}
	if err := b.vim.Marks.Set(id, pos); err != nil {
		_ = pos.Release()
		return err
	}
	return nil
}

// Mark returns the current offset of mark id. The boolean is false when
// the mark is unset or its text was deleted.
func (b *Buffer) Mark(id rune) (tracking.ByteOffset, bool, error) {
	return b.vim.Marks.Offset(b.ID(), id, b.doc.Version())
}

// ClearMark removes mark id and reports whether it was set.
func (b *Buffer) ClearMark(id rune) bool {
	return b.vim.Marks.Clear(b.ID(), id)
}

// ResolveKeys applies the key mappings of mode to keys, both in Vim key
// notation.
func (b *Buffer) ResolveKeys(mode keymap.Mode, keys string) (string, error) {
	return b.vim.Keymap.ResolveString(mode, keys)
}

// Yank stores text in the register named by c, or in the default
// register when c is 0.
func (b *Buffer) Yank(c rune, text string, kind register.Kind) error {
	name := b.vim.DefaultRegister()
	if c != 0 {
		var ok bool
		if name, ok = register.NameOf(c); !ok {
			return register.ErrInvalidName
		}
	}
	if name == register.Unnamed {
		b.vim.Registers.SetYank(text, kind)
		return nil
	}
	return b.vim.Registers.Set(name, text, kind)
}

// Close drops the buffer's marks and changes and releases their positions.
// Closing twice is a no-op.
func (b *Buffer) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	n := b.vim.Marks.ClearDocument(b.ID())
	b.vim.Changes.Forget(b.ID())
	b.vim.forget(b)
	b.vim.logger.Debug("buffer closed",
		zap.String("document", string(b.ID())),
		zap.Int("marks", n))
}

func (b *Buffer) check() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}
	return nil
}

// edited feeds an edit at offset that inserted text to the open change
// and moves the . mark there.
func (b *Buffer) edited(offset tracking.ByteOffset, text string) error {
	if text != "" && b.vim.Changes.State(b.ID()) == change.Accumulating {
		if err := b.vim.Changes.Extend(b.ID(), text); err != nil {
			return err
		}
	}
	return b.SetMark(lastChangeMark, offset)
}
