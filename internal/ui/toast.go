package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ToastDuration is how long a transient notification stays on screen.
const ToastDuration = 2 * time.Second

// ToastManager shows short-lived notification popups anchored to the bottom
// of a window. Only the newest toast is visible; showing a new one replaces
// the current popup immediately.
type ToastManager struct {
	mu     sync.Mutex
	win    fyne.Window
	popup  *widget.PopUp
	serial int
}

// NewToastManager creates a toast manager for the given window.
func NewToastManager(win fyne.Window) *ToastManager {
	return &ToastManager{win: win}
}

// Show displays message for ToastDuration. Safe to call from any goroutine.
func (tm *ToastManager) Show(message string) {
	fyne.Do(func() {
		tm.mu.Lock()
		if tm.popup != nil {
			tm.popup.Hide()
		}
		tm.serial++
		serial := tm.serial

		label := widget.NewLabel(message)
		bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
		popup := widget.NewPopUp(container.NewStack(bg, label), tm.win.Canvas())
		tm.popup = popup
		tm.mu.Unlock()

		canvasSize := tm.win.Canvas().Size()
		popupSize := popup.MinSize()
		popup.ShowAtPosition(fyne.NewPos(
			(canvasSize.Width-popupSize.Width)/2,
			canvasSize.Height-popupSize.Height-40,
		))

		time.AfterFunc(ToastDuration, func() {
			fyne.Do(func() {
				tm.mu.Lock()
				defer tm.mu.Unlock()
				if tm.serial == serial && tm.popup != nil {
					tm.popup.Hide()
					tm.popup = nil
				}
			})
		})
	})
}
