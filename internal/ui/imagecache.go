package ui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	// Register the decoders for the formats wallpapers arrive in.
	_ "image/gif"
	_ "image/jpeg"

	"mugen/internal/export"
	"mugen/internal/gallery"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const (
	// ThumbnailWidth is the width of the grid thumbnails.
	ThumbnailWidth = 280
	// ThumbnailHeight is the height of the grid thumbnails.
	ThumbnailHeight = 180
)

// ImageCache fetches wallpaper images (remote, data: or file: URLs), applies
// the record's rotation and caches the results as Fyne resources.
type ImageCache struct {
	cache      map[string]fyne.Resource
	thumbs     map[string]fyne.Resource
	cacheMutex sync.RWMutex
	exporter   *export.Exporter
	logger     gallery.LoggerFunc
}

// NewImageCache creates an image cache backed by the given fetcher.
func NewImageCache(exporter *export.Exporter, logger gallery.LoggerFunc) *ImageCache {
	return &ImageCache{
		cache:    make(map[string]fyne.Resource),
		thumbs:   make(map[string]fyne.Resource),
		exporter: exporter,
		logger:   logger,
	}
}

// imageToBytes is a helper to convert image.Image to []byte for Fyne resources.
func imageToBytes(img image.Image) []byte {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// rotateQuarter rotates img clockwise by the given number of 90-degree
// steps.
func rotateQuarter(img image.Image, degrees int) image.Image {
	steps := ((degrees/90)%4 + 4) % 4
	for ; steps > 0; steps-- {
		b := img.Bounds()
		rotated := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				rotated.Set(b.Max.Y-1-y, x-b.Min.X, img.At(x, y))
			}
		}
		img = rotated
	}
	return img
}

func cacheKey(w gallery.Wallpaper) string {
	return fmt.Sprintf("%s#%d", w.ID, w.Rotation)
}

func (ic *ImageCache) fetchDecoded(w gallery.Wallpaper) (image.Image, error) {
	data, err := ic.exporter.Fetch(context.Background(), w.URL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return rotateQuarter(img, w.Rotation), nil
}

// GetImage retrieves or loads the full image for a wallpaper. It returns a
// placeholder immediately and calls onComplete on the Fyne thread once the
// real resource is available.
func (ic *ImageCache) GetImage(w gallery.Wallpaper, onComplete func(fyne.Resource)) fyne.Resource {
	key := cacheKey(w)
	ic.cacheMutex.RLock()
	if res, ok := ic.cache[key]; ok {
		ic.cacheMutex.RUnlock()
		return res
	}
	ic.cacheMutex.RUnlock()

	go func() {
		img, err := ic.fetchDecoded(w)
		if err != nil {
			ic.logger("Image load error for " + w.Title + ": " + err.Error())
			return
		}
		imgBytes := imageToBytes(img)
		if imgBytes == nil {
			return
		}
		res := fyne.NewStaticResource(key, imgBytes)

		ic.cacheMutex.Lock()
		ic.cache[key] = res
		ic.cacheMutex.Unlock()

		fyne.Do(func() {
			onComplete(res)
		})
	}()

	return theme.FileImageIcon()
}

// GetThumbnail is like GetImage but serves a grid-sized rendition.
func (ic *ImageCache) GetThumbnail(w gallery.Wallpaper, onComplete func(fyne.Resource)) fyne.Resource {
	key := cacheKey(w)
	ic.cacheMutex.RLock()
	if res, ok := ic.thumbs[key]; ok {
		ic.cacheMutex.RUnlock()
		return res
	}
	ic.cacheMutex.RUnlock()

	go func() {
		img, err := ic.fetchDecoded(w)
		if err != nil {
			ic.logger("Thumbnail error for " + w.Title + ": " + err.Error())
			return
		}
		thumbImg := resize.Thumbnail(ThumbnailWidth, ThumbnailHeight, img, resize.Lanczos3)
		thumbBytes := imageToBytes(thumbImg)
		if thumbBytes == nil {
			return
		}
		res := fyne.NewStaticResource("thumb-"+key, thumbBytes)

		ic.cacheMutex.Lock()
		ic.thumbs[key] = res
		ic.cacheMutex.Unlock()

		fyne.Do(func() {
			onComplete(res)
		})
	}()

	return theme.FileImageIcon()
}

// Invalidate drops any cached renditions for the given wallpaper id, for
// example after it is deleted or its rotation changes.
func (ic *ImageCache) Invalidate(id string) {
	ic.cacheMutex.Lock()
	defer ic.cacheMutex.Unlock()
	for _, degrees := range []int{0, 90, 180, 270} {
		key := fmt.Sprintf("%s#%d", id, degrees)
		delete(ic.cache, key)
		delete(ic.thumbs, key)
	}
}
