package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"mugen/internal/gallery"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// showDetail opens the detail window for a wallpaper, records the visit and
// pushes it onto the navigation trail.
func (a *App) showDetail(id string) {
	a.openDetail(id, false)
}

func (a *App) openDetail(id string, fromHistory bool) {
	w, ok := a.store.Get(id)
	if !ok {
		return
	}

	// Every open counts as a view, including repeat visits.
	a.store.RecordView(id)
	if !fromHistory {
		a.trail.Push(id)
	}
	a.detailID = id
	w, _ = a.store.Get(id)

	win := a.app.NewWindow(w.Title)

	img := newTappableImage(nil, func() {
		a.openTheaterAt(id)
	})
	img.SetMinSize(fyne.NewSize(840, 520))
	img.SetResource(a.images.GetImage(w, func(res fyne.Resource) {
		img.SetResource(res)
	}))

	info := widget.NewRichTextFromMarkdown(detailMarkdown(w))

	refresh := func() {
		current, ok := a.store.Get(id)
		if !ok {
			win.Close()
			return
		}
		info.ParseMarkdown(detailMarkdown(current))
		img.SetResource(a.images.GetImage(current, func(res fyne.Resource) {
			img.SetResource(res)
		}))
		a.onGalleryChanged()
	}

	favBtn := widget.NewButtonWithIcon("收藏", theme.ConfirmIcon(), func() {
		a.toggleFavorite(id)
		refresh()
	})

	rotateBtn := widget.NewButtonWithIcon("旋转", theme.ViewRefreshIcon(), func() {
		current, ok := a.store.Get(id)
		if !ok {
			return
		}
		a.store.SetRotation(id, current.NextRotation())
		refresh()
	})

	exportBtn := widget.NewButtonWithIcon("归档", theme.DownloadIcon(), func() {
		a.exportWallpaper(win, id)
	})

	deleteBtn := widget.NewButtonWithIcon("删除", theme.DeleteIcon(), func() {
		dialog.ShowConfirm("删除壁纸", "确定要删除这张壁纸吗？\n此操作无法撤销。", func(confirmed bool) {
			if !confirmed {
				return
			}
			a.store.DeleteRecord(id)
			a.trail.Remove(id)
			a.images.Invalidate(id)
			a.onGalleryChanged()
			win.Close()
		}, win)
	})

	theaterBtn := widget.NewButtonWithIcon("放映", theme.MediaPlayIcon(), func() {
		a.openTheaterAt(id)
	})

	// Focal point controls: percentages across the image, persisted as the
	// crop anchor.
	xSlider := widget.NewSlider(0, 100)
	ySlider := widget.NewSlider(0, 100)
	xSlider.Value = w.FocalPoint.X
	ySlider.Value = w.FocalPoint.Y
	onFocalChanged := func(float64) {
		a.store.SetFocalPoint(id, gallery.FocalPoint{X: xSlider.Value, Y: ySlider.Value})
	}
	xSlider.OnChangeEnded = onFocalChanged
	ySlider.OnChangeEnded = onFocalChanged
	focalBox := widget.NewForm(
		widget.NewFormItem("焦点 X", xSlider),
		widget.NewFormItem("焦点 Y", ySlider),
	)

	a.UI.backBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if prev, ok := a.trail.Back(); ok {
			win.Close()
			a.openDetail(prev, true)
		}
	})
	a.UI.forwardBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		if next, ok := a.trail.Forward(); ok {
			win.Close()
			a.openDetail(next, true)
		}
	})

	buttons := container.NewHBox(
		a.UI.backBtn, a.UI.forwardBtn,
		widget.NewSeparator(),
		favBtn, rotateBtn, exportBtn, theaterBtn, deleteBtn,
	)

	side := container.NewVBox(info, focalBox)
	win.SetContent(container.NewBorder(buttons, nil, nil, side, img))
	win.Resize(fyne.NewSize(1100, 640))
	win.SetOnClosed(func() {
		if a.detailID == id {
			a.detailID = ""
		}
		a.onGalleryChanged()
	})
	win.Show()
}

func detailMarkdown(w gallery.Wallpaper) string {
	fav := "否"
	if w.IsFavorite {
		fav = "是"
	}
	return fmt.Sprintf(`## %s

**作者:** %s

**标签:** %s

**收藏:** %s

**旋转:** %d°

**浏览:** %d 次
`, w.Title, w.Author, strings.Join(w.Tags, ", "), fav, w.Rotation, w.Views)
}

// exportWallpaper asks for a destination and archives the image bytes there.
func (a *App) exportWallpaper(parent fyne.Window, id string) {
	w, ok := a.store.Get(id)
	if !ok {
		return
	}
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		dest := writer.URI().Path()
		writer.Close()
		go func() {
			if err := a.exporter.Save(context.Background(), w.URL, dest); err != nil {
				a.toasts.Show(err.Error())
				return
			}
			a.toasts.Show("作品已归档至本地")
		}()
	}, parent)
	saveDialog.SetFileName(sanitizeFileName(w.Title) + ".png")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	saveDialog.Show()
}

func sanitizeFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) {
			return '_'
		}
		return r
	}, name)
	if cleaned == "" {
		cleaned = "wallpaper"
	}
	return filepath.Base(cleaned)
}
