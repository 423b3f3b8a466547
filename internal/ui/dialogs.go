package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mugen/internal/auth"
	"mugen/internal/gallery"
	"mugen/internal/generate"
	"mugen/internal/intake"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// showUploadDialog imports every image in a chosen folder into the gallery.
func (a *App) showUploadDialog() {
	authorEntry := widget.NewEntry()
	authorEntry.SetText(intake.DefaultAuthor)
	tagsEntry := widget.NewEntry()
	tagsEntry.SetPlaceHolder("标签，逗号分隔（留空则为 " + gallery.DefaultTag + "）")

	dialog.ShowForm("导入文件夹", "选择文件夹", "取消", []*widget.FormItem{
		widget.NewFormItem("作者", authorEntry),
		widget.NewFormItem("标签", tagsEntry),
	}, func(confirm bool) {
		if !confirm {
			return
		}
		author := authorEntry.Text
		var tags []string
		if trimmed := strings.TrimSpace(tagsEntry.Text); trimmed != "" {
			for _, tag := range strings.Split(trimmed, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					tags = append(tags, tag)
				}
			}
		}

		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			go func() {
				items, err := intake.ScanDirectory(uri.Path(), author, tags)
				if err != nil {
					a.toasts.Show("导入失败: " + err.Error())
					return
				}
				created := a.store.UpsertBatch(items)
				a.toasts.Show(fmt.Sprintf("已导入 %d 张壁纸", len(created)))
				fyne.Do(a.onGalleryChanged)
			}()
		}, a.UI.MainWin)
	}, a.UI.MainWin)
}

// showGenerateDialog asks for a theme prompt and produces a new wallpaper
// with the image model.
func (a *App) showGenerateDialog() {
	promptEntry := widget.NewMultiLineEntry()
	promptEntry.SetPlaceHolder("描述想要的画面，例如：暮色中的浮空岛屿")
	promptEntry.SetMinRowsVisible(3)

	ratioSelect := widget.NewSelect(generate.AspectRatios, nil)
	ratioSelect.SetSelected("1:1")

	dialog.ShowForm("AI 生成壁纸", "生成", "取消", []*widget.FormItem{
		widget.NewFormItem("主题", promptEntry),
		widget.NewFormItem("画幅", ratioSelect),
	}, func(confirm bool) {
		if !confirm {
			return
		}
		prompt := strings.TrimSpace(promptEntry.Text)
		if prompt == "" {
			return
		}
		ratio := ratioSelect.Selected

		progress := dialog.NewCustomWithoutButtons("生成中",
			container.NewVBox(widget.NewLabel("正在绘制，请稍候…"), widget.NewProgressBarInfinite()),
			a.UI.MainWin)
		progress.Show()

		go func() {
			defer fyne.Do(progress.Hide)

			ctx := context.Background()
			client, err := a.geminiClient(ctx)
			if err != nil {
				a.toasts.Show(err.Error())
				return
			}
			defer client.Close()

			url, err := client.Generate(ctx, generate.Request{Prompt: prompt, AspectRatio: ratio})
			if err != nil {
				var genErr *generate.Error
				if errors.As(err, &genErr) {
					a.toasts.Show(genErr.Message)
				} else {
					a.toasts.Show(generate.DefaultFailureMessage)
				}
				return
			}

			created := a.store.UpsertBatch([]gallery.UploadItem{{
				Title:  prompt,
				Author: "AI 绘梦师",
				URL:    url,
				Tags:   []string{"AI生成"},
			}})
			if len(created) > 0 {
				a.toasts.Show("生成完成: " + created[0].Title)
			}
			fyne.Do(a.onGalleryChanged)
		}()
	}, a.UI.MainWin)
}

// showAPIKeyDialog manages the stored Gemini API key.
func (a *App) showAPIKeyDialog() {
	keyEntry := widget.NewPasswordEntry()
	keyEntry.SetPlaceHolder("Gemini API Key")

	status := "未保存 API Key"
	if auth.HasStoredKey() {
		status = "已在系统钥匙串中保存 API Key"
	}
	statusLabel := widget.NewLabel(status)

	deleteBtn := widget.NewButton("删除已保存的 Key", func() {
		if err := auth.DeleteKey(); err != nil {
			a.toasts.Show("删除失败: " + err.Error())
			return
		}
		statusLabel.SetText("未保存 API Key")
		a.toasts.Show("API Key 已删除")
	})

	dialog.ShowForm("API Key 设置", "保存", "关闭", []*widget.FormItem{
		widget.NewFormItem("", statusLabel),
		widget.NewFormItem("Key", keyEntry),
		widget.NewFormItem("", deleteBtn),
	}, func(confirm bool) {
		if !confirm || strings.TrimSpace(keyEntry.Text) == "" {
			return
		}
		if err := auth.SaveKey(keyEntry.Text); err != nil {
			a.toasts.Show("保存失败: " + err.Error())
			return
		}
		a.toasts.Show("API Key 已保存")
	}, a.UI.MainWin)
}

func (a *App) showAbout() {
	dialog.ShowCustom("关于", "确定", container.NewVBox(
		widget.NewLabel("Mugen Gallery — 本地壁纸画廊与放映室。"),
		widget.NewLabel("v1.0 | License: MIT"),
	), a.UI.MainWin)
}
