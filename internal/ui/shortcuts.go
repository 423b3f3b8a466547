// Package ui  Shortcuts for keyboard actions
package ui

import (
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

func (a *App) buildKeyboardShortcuts() {
	// set main mod key to super on darwin hosts, else set it to ctrl
	modKey := fyne.KeyModifierControl
	if runtime.GOOS == "darwin" {
		modKey = fyne.KeyModifierSuper
	}

	// ctrl+q to quit application
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: modKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	// ctrl+f to focus the search entry
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyF,
		Modifier: modKey,
	}, func(_ fyne.Shortcut) {
		if a.UI.searchEntry != nil {
			a.UI.MainWin.Canvas().Focus(a.UI.searchEntry)
		}
	})

	a.UI.MainWin.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyF5:
			a.onGalleryChanged()
		case fyne.KeyEscape:
			// close dialogs with esc key
			if len(a.UI.MainWin.Canvas().Overlays().List()) > 0 {
				a.UI.MainWin.Canvas().Overlays().Top().Hide()
			}
		}
	})
}
