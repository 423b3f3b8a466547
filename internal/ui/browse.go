package ui

import (
	"mugen/internal/gallery"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// refreshGrid rebuilds the wallpaper grid from the active view.
func (a *App) refreshGrid() {
	if a.UI.grid == nil {
		return
	}
	a.UI.grid.RemoveAll()
	for _, w := range a.visibleWallpapers() {
		a.UI.grid.Add(a.buildWallpaperCard(w))
	}
	a.UI.grid.Refresh()
}

// refreshTagOptions re-reads the tag union from the store, keeping any
// still-valid selections.
func (a *App) refreshTagOptions() {
	if a.UI.tagChecks == nil {
		return
	}
	tags := a.store.AllTags()
	known := make(map[string]bool, len(tags))
	for _, tag := range tags {
		known[tag] = true
	}
	var selected []string
	for _, tag := range a.UI.tagChecks.Selected {
		if known[tag] {
			selected = append(selected, tag)
		}
	}
	a.UI.tagChecks.Options = tags
	a.UI.tagChecks.Selected = selected
	a.UI.tagChecks.Refresh()
}

func (a *App) toggleFavorite(id string) {
	w, ok := a.store.Get(id)
	if !ok {
		return
	}
	a.store.ToggleFavorite(id)
	if w.IsFavorite {
		a.toasts.Show("链路已切断")
	} else {
		a.toasts.Show("灵魂同步完成")
	}
	a.onGalleryChanged()
}

func (a *App) buildToolbar() *widget.Toolbar {
	return widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), a.showUploadDialog),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), a.showGenerateDialog),
		widget.NewToolbarAction(theme.MediaPlayIcon(), a.openTheater),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), a.showAPIKeyDialog),
		widget.NewToolbarAction(theme.HelpIcon(), a.showAbout),
	)
}

func (a *App) buildStatusBar() *fyne.Container {
	a.UI.statusLabel = widget.NewLabel("")
	return container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(a.UI.statusLabel, layout.NewSpacer()),
	)
}

// buildFilterPanel assembles the search entry and tag checkboxes on the left.
func (a *App) buildFilterPanel() fyne.CanvasObject {
	a.UI.searchEntry = widget.NewEntry()
	a.UI.searchEntry.SetPlaceHolder("搜索标题、作者或标签…")
	a.UI.searchEntry.OnChanged = func(text string) {
		a.view.Query = text
		a.refreshGrid()
		a.updateStatusBar()
	}

	a.UI.tagChecks = widget.NewCheckGroup(nil, func(selected []string) {
		a.view.SelectedTags = selected
		a.refreshGrid()
		a.updateStatusBar()
	})

	clearBtn := widget.NewButton("清除筛选", func() {
		a.UI.searchEntry.SetText("")
		a.UI.tagChecks.SetSelected(nil)
	})

	return container.NewBorder(
		container.NewVBox(a.UI.searchEntry, widget.NewSeparator()),
		clearBtn,
		nil, nil,
		container.NewVScroll(a.UI.tagChecks),
	)
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()

	toolbar := a.buildToolbar()
	status := a.buildStatusBar()
	filters := a.buildFilterPanel()

	a.UI.grid = container.NewGridWrap(fyne.NewSize(ThumbnailWidth+8, ThumbnailHeight+88))
	gridScroll := container.NewVScroll(a.UI.grid)

	a.UI.tabs = container.NewAppTabs(
		container.NewTabItem("发现", gridScroll),
		container.NewTabItem("我的收藏", widget.NewLabel("")),
	)
	// One grid serves both tabs; switching tabs only changes the view's
	// collection and re-homes the scroll container.
	a.UI.tabs.OnSelected = func(item *container.TabItem) {
		if item.Text == "我的收藏" {
			a.view.Collection = gallery.CollectionFavorites
		} else {
			a.view.Collection = gallery.CollectionAll
		}
		item.Content = gridScroll
		a.refreshGrid()
		a.updateStatusBar()
		a.UI.tabs.Refresh()
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("文件",
			fyne.NewMenuItem("导入文件夹…", a.showUploadDialog),
			fyne.NewMenuItem("AI 生成壁纸…", a.showGenerateDialog),
		),
		fyne.NewMenu("查看",
			fyne.NewMenuItem("开始放映", a.openTheater),
		),
		fyne.NewMenu("帮助",
			fyne.NewMenuItem("关于", a.showAbout),
		),
	)
	a.UI.MainWin.SetMainMenu(mainMenu)

	return container.NewBorder(
		toolbar, // Top
		status,  // Bottom
		filters, // Left
		nil,     // Right
		a.UI.tabs,
	)
}
