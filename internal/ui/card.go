package ui

import (
	"fmt"
	"strings"

	"mugen/internal/gallery"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Tappable Image Custom Widget ---

// tappableImage is a custom widget that displays an image and handles tap events.
type tappableImage struct {
	widget.BaseWidget
	image    *canvas.Image
	onTapped func()
}

// newTappableImage creates a new tappableImage widget.
func newTappableImage(res fyne.Resource, onTapped func()) *tappableImage {
	ti := &tappableImage{
		image:    canvas.NewImageFromResource(res),
		onTapped: onTapped,
	}
	ti.image.FillMode = canvas.ImageFillContain
	ti.ExtendBaseWidget(ti)
	return ti
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

// Tapped is called when the widget is tapped.
func (t *tappableImage) Tapped(_ *fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped()
	}
}

// SetResource updates the image resource and refreshes.
func (t *tappableImage) SetResource(res fyne.Resource) {
	t.image.Resource = res
	canvas.Refresh(t.image)
}

// SetMinSize sets the minimum size of the tappable image.
func (t *tappableImage) SetMinSize(size fyne.Size) {
	t.image.SetMinSize(size)
}

// buildWallpaperCard assembles one grid cell: thumbnail, title/author line
// and a favorite toggle.
func (a *App) buildWallpaperCard(w gallery.Wallpaper) fyne.CanvasObject {
	img := newTappableImage(nil, func() { a.showDetail(w.ID) })
	img.SetMinSize(fyne.NewSize(ThumbnailWidth, ThumbnailHeight))
	img.SetResource(a.images.GetThumbnail(w, func(res fyne.Resource) {
		img.SetResource(res)
	}))

	favIcon := theme.RadioButtonIcon()
	if w.IsFavorite {
		favIcon = theme.RadioButtonCheckedIcon()
	}
	favBtn := widget.NewButtonWithIcon("", favIcon, func() {
		a.toggleFavorite(w.ID)
	})
	favBtn.Importance = widget.LowImportance

	title := widget.NewLabelWithStyle(w.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	title.Truncation = fyne.TextTruncateEllipsis
	byline := widget.NewLabel(fmt.Sprintf("%s · %s", w.Author, strings.Join(w.Tags, " ")))
	byline.Truncation = fyne.TextTruncateEllipsis

	footer := container.NewBorder(nil, nil, nil, favBtn,
		container.NewVBox(title, byline),
	)
	return container.NewBorder(nil, footer, nil, nil, img)
}
