// Package i18n rewrites menu labels through a fixed translation table.
package i18n

import (
	"strings"

	"fyne.io/fyne/v2"
)

// mnemonicMarker flags the keyboard accelerator letter in toolkit labels.
const mnemonicMarker = "&"

// StripMnemonic removes every mnemonic marker from label.
func StripMnemonic(label string) string {
	return strings.ReplaceAll(label, mnemonicMarker, "")
}

// Translate looks label up with markers stripped, then as written.
func Translate(label string) (string, bool) {
	if v, ok := menuLabels[StripMnemonic(label)]; ok {
		return v, true
	}
	if v, ok := menuLabels[label]; ok {
		return v, true
	}
	return label, false
}

// LocalizeMenu translates the labels of every item in m and in all nested
// submenus. A nil menu is ignored.
func LocalizeMenu(m *fyne.Menu) {
	if m == nil {
		return
	}
	LocalizeItems(m.Items)
}

// LocalizeItems translates items in place and recurses into child menus.
func LocalizeItems(items []*fyne.MenuItem) {
	for _, item := range items {
		if item == nil || item.IsSeparator {
			continue
		}
		item.Label, _ = Translate(item.Label)
		if item.ChildMenu != nil {
			item.ChildMenu.Label, _ = Translate(item.ChildMenu.Label)
			LocalizeMenu(item.ChildMenu)
		}
	}
}

// LocalizeMainMenu translates the window menu bar, menu titles included.
func LocalizeMainMenu(mm *fyne.MainMenu) {
	if mm == nil {
		return
	}
	for _, m := range mm.Items {
		if m == nil {
			continue
		}
		m.Label, _ = Translate(m.Label)
		LocalizeMenu(m)
	}
}
