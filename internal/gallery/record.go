// Package gallery owns the wallpaper collection: the record model, the
// mutable store behind a persistence port, and the filter logic that
// produces the visible sequence consumed by every view.
package gallery

// DefaultTag is applied to uploads that arrive without any tags.
const DefaultTag = "未分类"

// Rotation steps allowed on a wallpaper, in degrees.
const (
	RotationStep = 90
	fullTurn     = 360
)

// FocalPoint is the percentage-based crop anchor used when a wallpaper is
// shown in a cropped container. Both coordinates are kept within [0,100].
type FocalPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DefaultFocalPoint centers the crop anchor.
func DefaultFocalPoint() FocalPoint {
	return FocalPoint{X: 50, Y: 50}
}

// Clamp returns the focal point with both coordinates forced into [0,100].
func (fp FocalPoint) Clamp() FocalPoint {
	return FocalPoint{X: clampPercent(fp.X), Y: clampPercent(fp.Y)}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Wallpaper is one gallery entry. The ID is unique across the store and
// stable for the record's lifetime; URL is immutable after creation.
type Wallpaper struct {
	ID         string     `json:"id"`
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Tags       []string   `json:"tags"`
	IsFavorite bool       `json:"isFavorite"`
	Rotation   int        `json:"rotation"`
	FocalPoint FocalPoint `json:"focalPoint"`
	Views      int        `json:"views"`
}

// NextRotation returns the rotation after one +90 degree step.
func (w Wallpaper) NextRotation() int {
	return (w.Rotation + RotationStep) % fullTurn
}

// HasTag reports whether the wallpaper carries the given tag (exact match,
// tags are case-sensitive as stored).
func (w Wallpaper) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ValidRotation reports whether degrees is one of the four allowed values.
func ValidRotation(degrees int) bool {
	return degrees == 0 || degrees == 90 || degrees == 180 || degrees == 270
}

// UploadItem is the intake contract for batch uploads: the upload UI and the
// CLI produce these and pass them verbatim to Store.UpsertBatch.
type UploadItem struct {
	Title  string
	Author string
	URL    string
	Tags   []string
}
