// Package ui  Setup for the Mugen Gallery Application
package ui

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"mugen/internal/auth"
	"mugen/internal/export"
	"mugen/internal/gallery"
	"mugen/internal/generate"
	"mugen/internal/history"
	"mugen/internal/storage"
	"mugen/internal/theater"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	// DefaultHistorySize is the number of detail-view visits kept for
	// back/forward navigation.
	DefaultHistorySize = 50
)

var (
	dbPathFlag           = flag.String("dbpath", "", "Directory holding the gallery database")
	autoplayIntervalFlag = flag.Float64("interval", theater.DefaultAutoplayInterval.Seconds(), "Seconds between automatic slideshow transitions")
	controlsTimeoutFlag  = flag.Float64("controls-timeout", theater.DefaultControlsTimeout.Seconds(), "Seconds until the slideshow controls hide")
	historySizeFlag      = flag.Int("history-size", DefaultHistorySize, "Detail-view navigation history capacity")
)

// UI holds the widgets the App updates after it is built.
type UI struct {
	MainWin fyne.Window

	searchEntry *widget.Entry
	tagChecks   *widget.CheckGroup
	grid        *fyne.Container
	tabs        *container.AppTabs

	statusLabel *widget.Label

	backBtn    *widget.Button
	forwardBtn *widget.Button
}

// App represents the whole application with all its windows, widgets and functions
type App struct {
	app fyne.App
	UI  UI

	store     *gallery.Store
	boltStore *storage.BoltStore
	view      gallery.View

	trail               *history.Trail
	isNavigatingHistory bool

	theater  *theater.Controller
	exporter *export.Exporter
	images   *ImageCache
	toasts   *ToastManager

	detailID string // id shown in the open detail dialog, "" when none
}

func appLogger(message string) {
	log.Printf("[mugen] %s", message)
}

// visibleWallpapers returns the records matching the active view.
func (a *App) visibleWallpapers() []gallery.Wallpaper {
	return a.store.Visible(a.view)
}

// updateStatusBar updates the text of the status bar.
func (a *App) updateStatusBar() {
	if a.UI.statusLabel == nil {
		return
	}
	visible := len(a.visibleWallpapers())
	total := a.store.Len()
	statusText := fmt.Sprintf("%d / %d 张壁纸", visible, total)
	if a.view.Collection == gallery.CollectionFavorites {
		statusText += " | 我的收藏"
	}
	if a.view.Query != "" {
		statusText += fmt.Sprintf(" | 搜索: %s", a.view.Query)
	}
	if len(a.view.SelectedTags) > 0 {
		statusText += fmt.Sprintf(" | 标签: %d", len(a.view.SelectedTags))
	}
	a.UI.statusLabel.SetText(statusText)
}

// onGalleryChanged refreshes everything derived from the store: the browse
// grid, the tag filter options and the status bar.
func (a *App) onGalleryChanged() {
	a.refreshGrid()
	a.refreshTagOptions()
	a.updateStatusBar()
}

// CreateApplication builds the application and runs its main window.
func CreateApplication() {
	flag.Parse()

	a := app.NewWithID("io.github.mugen-gallery")

	currentTheme := a.Settings().Theme()
	a.Settings().SetTheme(NewCompactTheme(currentTheme))

	ui := &App{app: a}

	boltStore, err := storage.Open(*dbPathFlag, appLogger)
	if err != nil {
		log.Fatalf("Failed to open gallery database: %v", err)
	}
	ui.boltStore = boltStore
	ui.store = gallery.NewStore(boltStore, appLogger)

	ui.view = gallery.View{Collection: gallery.CollectionAll}
	ui.trail = history.NewTrail(*historySizeFlag)
	ui.exporter = export.NewExporter()
	ui.images = NewImageCache(ui.exporter, appLogger)
	ui.theater = theater.NewController(nil,
		time.Duration(*autoplayIntervalFlag*float64(time.Second)),
		time.Duration(*controlsTimeoutFlag*float64(time.Second)))

	ui.UI.MainWin = a.NewWindow("Mugen Gallery")
	ui.UI.MainWin.SetCloseIntercept(func() {
		log.Println("Closing gallery database...")
		if err := ui.boltStore.Close(); err != nil {
			log.Printf("Error closing gallery database: %v", err)
		}
		ui.UI.MainWin.Close()
	})

	ui.UI.MainWin.SetContent(ui.buildMainUI())
	ui.toasts = NewToastManager(ui.UI.MainWin)
	ui.buildKeyboardShortcuts()

	ui.onGalleryChanged()

	ui.UI.MainWin.Resize(fyne.NewSize(1200, 800))
	ui.UI.MainWin.CenterOnScreen()
	ui.UI.MainWin.ShowAndRun()
}

// geminiClient resolves the API key and opens a generation client, or
// explains what is missing.
func (a *App) geminiClient(ctx context.Context) (*generate.Client, error) {
	key, source := auth.GetKey(true)
	if key == "" {
		return nil, fmt.Errorf("未找到 Gemini API Key，请先在设置中保存")
	}
	appLogger("Using Gemini API key from " + source)
	return generate.NewClient(ctx, key)
}
