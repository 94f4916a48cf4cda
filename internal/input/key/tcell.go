package key

import "github.com/gdamore/tcell/v2"

// FromTcell converts a terminal key event into an Event.
func FromTcell(ev *tcell.EventKey) Event {
	mods := fromTcellMod(ev.Modifiers())
	k := ev.Key()

	// tcell aliases several control keys to named keys (Ctrl-M is Enter,
	// Ctrl-I is Tab), so the named keys must be matched first.
	switch {
	case k == tcell.KeyRune:
		return NewRuneEvent(ev.Rune(), mods)
	case k == tcell.KeyEnter:
		return NewSpecialEvent(KeyEnter, mods)
	case k == tcell.KeyTab:
		return NewSpecialEvent(KeyTab, mods)
	case k == tcell.KeyBacktab:
		return NewSpecialEvent(KeyTab, mods.With(ModShift))
	case k == tcell.KeyBackspace, k == tcell.KeyBackspace2:
		return NewSpecialEvent(KeyBackspace, mods)
	case k == tcell.KeyEscape:
		return NewSpecialEvent(KeyEscape, mods)
	case k == tcell.KeyDelete:
		return NewSpecialEvent(KeyDelete, mods)
	case k == tcell.KeyInsert:
		return NewSpecialEvent(KeyInsert, mods)
	case k == tcell.KeyHome:
		return NewSpecialEvent(KeyHome, mods)
	case k == tcell.KeyEnd:
		return NewSpecialEvent(KeyEnd, mods)
	case k == tcell.KeyPgUp:
		return NewSpecialEvent(KeyPageUp, mods)
	case k == tcell.KeyPgDn:
		return NewSpecialEvent(KeyPageDown, mods)
	case k == tcell.KeyUp:
		return NewSpecialEvent(KeyUp, mods)
	case k == tcell.KeyDown:
		return NewSpecialEvent(KeyDown, mods)
	case k == tcell.KeyLeft:
		return NewSpecialEvent(KeyLeft, mods)
	case k == tcell.KeyRight:
		return NewSpecialEvent(KeyRight, mods)
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return NewSpecialEvent(KeyF1+Key(k-tcell.KeyF1), mods)
	case k == tcell.KeyCtrlSpace:
		return NewRuneEvent(' ', mods.With(ModCtrl))
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(ModCtrl))
	default:
		return Event{}
	}
}

// fromTcellMod converts tcell modifiers to our Modifier type.
func fromTcellMod(m tcell.ModMask) Modifier {
	var mods Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(ModMeta)
	}
	return mods
}
