package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/vimcore/internal/engine/tracking"
)

func TestNew(t *testing.T) {
	d := New("Hello, World!", WithName("greeting"), WithID("doc-1"))

	if d.Text() != "Hello, World!" {
		t.Errorf("expected text, got %q", d.Text())
	}
	if d.Len() != 13 {
		t.Errorf("expected length 13, got %d", d.Len())
	}
	if d.Version() != 0 {
		t.Errorf("expected version 0, got %d", d.Version())
	}
	if d.Name() != "greeting" {
		t.Errorf("expected name greeting, got %q", d.Name())
	}
	if d.ID() != "doc-1" {
		t.Errorf("expected id doc-1, got %q", d.ID())
	}
}

func TestNewAssignsDistinctIDs(t *testing.T) {
	a, b := New(""), New("")
	if a.ID() == b.ID() {
		t.Errorf("expected distinct ids, both %q", a.ID())
	}
}

func TestDocumentInsert(t *testing.T) {
	d := New("Hello World")

	v, err := d.Insert(5, ",")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if v != 1 {
		t.Errorf("expected version 1, got %d", v)
	}
	if d.Text() != "Hello, World" {
		t.Errorf("unexpected text %q", d.Text())
	}

	if _, err := d.Insert(100, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	v, err = d.Insert(0, "")
	if err != nil || v != 1 {
		t.Errorf("empty insert should be a no-op, got version %d err %v", v, err)
	}
}

func TestDocumentDelete(t *testing.T) {
	d := New("Hello, World")

	removed, err := d.Delete(5, 7)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed != ", " {
		t.Errorf("expected removed %q, got %q", ", ", removed)
	}
	if d.Text() != "HelloWorld" {
		t.Errorf("unexpected text %q", d.Text())
	}

	if _, err := d.Delete(3, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
	if _, err := d.Delete(0, 11); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestDocumentReplaceIsTwoVersions(t *testing.T) {
	d := New("the cat sat")

	removed, err := d.Replace(4, 7, "dog")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if removed != "cat" {
		t.Errorf("expected removed cat, got %q", removed)
	}
	if d.Text() != "the dog sat" {
		t.Errorf("unexpected text %q", d.Text())
	}
	if d.Version() != 2 {
		t.Errorf("expected version 2, got %d", d.Version())
	}

	if _, err := d.Replace(0, 0, "so "); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if d.Version() != 3 {
		t.Errorf("pure insert replace should add one version, got %d", d.Version())
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	d := New("abc")
	snap := d.Snapshot()

	if _, err := d.Insert(3, "def"); err != nil {
		t.Fatal(err)
	}
	if snap.Text() != "abc" || snap.Version() != 0 {
		t.Errorf("snapshot changed: %q@%d", snap.Text(), snap.Version())
	}
	if got := d.Snapshot(); got.Text() != "abcdef" || got.Version() != 1 {
		t.Errorf("unexpected current snapshot %q@%d", got.Text(), got.Version())
	}
}

func TestSnapshotPoints(t *testing.T) {
	snap := New("one\ntwo\nthree").Snapshot()

	if snap.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", snap.LineCount())
	}

	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{3, Point{0, 3}},
		{4, Point{1, 0}},
		{9, Point{2, 1}},
	}
	for _, tt := range tests {
		if got := snap.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("OffsetToPoint(%d) = %s, want %s", tt.offset, got, tt.point)
		}
		if got := snap.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("PointToOffset(%s) = %d, want %d", tt.point, got, tt.offset)
		}
	}

	if got := snap.PointToOffset(Point{Line: 0, Column: 99}); got != 3 {
		t.Errorf("expected column clamp to 3, got %d", got)
	}
	if got := snap.TextRange(4, 7); got != "two" {
		t.Errorf("TextRange = %q", got)
	}
}

func TestTrackedPositionFollowsText(t *testing.T) {
	d := New("alpha beta gamma")
	pos, err := d.TrackCurrent(11) // "gamma"
	if err != nil {
		t.Fatal(err)
	}

	edits := []func() error{
		func() error { _, err := d.Insert(0, ">> "); return err },
		func() error { _, err := d.Delete(3, 9); return err },          // drop "alpha "
		func() error { _, err := d.Replace(3, 7, "BETA"); return err }, // before gamma
	}
	for _, edit := range edits {
		if err := edit(); err != nil {
			t.Fatal(err)
		}
		off, ok, err := pos.Current()
		if err != nil || !ok {
			t.Fatalf("position lost: ok=%v err=%v", ok, err)
		}
		if !strings.HasPrefix(d.Text()[off:], "gamma") {
			t.Errorf("position %d points at %q", off, d.Text()[off:])
		}
	}
}

func TestTrackedPositionInsideReplaceIsGone(t *testing.T) {
	d := New("abcdef")
	pos, err := d.TrackCurrent(3)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Replace(2, 5, "XY"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := pos.Current(); ok {
		t.Error("expected position inside replaced text to be invalidated")
	}
}

func TestSubscribe(t *testing.T) {
	d := New("abc")
	var got []Change
	d.Subscribe(func(ch Change) { got = append(got, ch) })

	if _, err := d.Replace(0, 1, "xy"); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0].Edit.Kind != tracking.EditDelete || got[0].Text != "a" || got[0].Version != 1 {
		t.Errorf("unexpected first change %+v", got[0])
	}
	if got[1].Edit.Kind != tracking.EditInsert || got[1].Text != "xy" || got[1].Version != 2 {
		t.Errorf("unexpected second change %+v", got[1])
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb\n", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
	}
	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}
