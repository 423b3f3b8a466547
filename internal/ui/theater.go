package ui

import (
	"fmt"

	"mugen/internal/gallery"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// hoverableImage displays an image and reports pointer movement over it, so
// the slideshow can wake its controls.
type hoverableImage struct {
	widget.BaseWidget
	image   *canvas.Image
	onHover func()
}

var _ desktop.Hoverable = (*hoverableImage)(nil)

func newHoverableImage(onHover func()) *hoverableImage {
	hi := &hoverableImage{
		image:   &canvas.Image{FillMode: canvas.ImageFillContain},
		onHover: onHover,
	}
	hi.ExtendBaseWidget(hi)
	return hi
}

func (h *hoverableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(h.image)
}

func (h *hoverableImage) SetResource(res fyne.Resource) {
	h.image.Resource = res
	canvas.Refresh(h.image)
}

func (h *hoverableImage) MouseIn(_ *desktop.MouseEvent) {
	if h.onHover != nil {
		h.onHover()
	}
}

func (h *hoverableImage) MouseMoved(_ *desktop.MouseEvent) {
	if h.onHover != nil {
		h.onHover()
	}
}

func (h *hoverableImage) MouseOut() {}

// openTheater starts the slideshow over the currently visible records.
func (a *App) openTheater() {
	a.openTheaterSequence(a.visibleWallpapers(), 0)
}

// openTheaterAt starts the slideshow positioned on the given wallpaper.
func (a *App) openTheaterAt(id string) {
	sequence := a.visibleWallpapers()
	start := 0
	for i, w := range sequence {
		if w.ID == id {
			start = i
			break
		}
	}
	a.openTheaterSequence(sequence, start)
}

func (a *App) openTheaterSequence(sequence []gallery.Wallpaper, start int) {
	if !a.theater.Open(sequence, start) {
		// Nothing to present; an empty slideshow never opens.
		return
	}

	win := a.app.NewWindow("放映")

	img := newHoverableImage(func() {
		a.theater.PointerMoved()
	})

	counterLabel := widget.NewLabel("")
	titleLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	prevBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), a.theater.Prev)
	nextBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), a.theater.Next)
	playBtn := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), a.theater.ToggleAutoplay)
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), a.theater.Close)

	controls := container.NewVBox(
		titleLabel,
		container.NewHBox(
			layout.NewSpacer(),
			prevBtn, playBtn, nextBtn, closeBtn,
			counterLabel,
			layout.NewSpacer(),
		),
	)

	// refresh mirrors the controller state into the window; it runs on the
	// Fyne thread via the onChange hook below.
	refresh := func() {
		current, ok := a.theater.Current()
		if !ok {
			win.Close()
			return
		}
		img.SetResource(a.images.GetImage(current, func(res fyne.Resource) {
			img.SetResource(res)
		}))
		titleLabel.SetText(fmt.Sprintf("%s — %s", current.Title, current.Author))
		counterLabel.SetText(fmt.Sprintf("%d / %d", a.theater.Index()+1, a.theater.Len()))
		if a.theater.AutoplayEnabled() {
			playBtn.SetIcon(theme.MediaPauseIcon())
		} else {
			playBtn.SetIcon(theme.MediaPlayIcon())
		}
		if a.theater.ControlsVisible() {
			controls.Show()
		} else {
			controls.Hide()
		}
	}

	a.theater.SetOnChange(func() {
		fyne.Do(refresh)
	})

	win.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeyRight:
			a.theater.Next()
		case fyne.KeyLeft:
			a.theater.Prev()
		case fyne.KeySpace, fyne.KeyP:
			a.theater.ToggleAutoplay()
		case fyne.KeyEscape:
			a.theater.Close()
		}
	})

	win.SetContent(container.NewBorder(nil, controls, nil, nil, img))
	win.SetFullScreen(true)
	win.SetOnClosed(func() {
		a.theater.SetOnChange(nil)
		a.theater.Close()
	})
	refresh()
	win.Show()
}
