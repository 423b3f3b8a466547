package gallery

// SeedCollection returns the built-in fallback collection used when nothing
// has been persisted yet or the persisted blob cannot be decoded. Per-record
// defaults (favorite, rotation, focal point, views) are the zero values the
// rest of the store assumes, except the focal point which is centered.
func SeedCollection() []Wallpaper {
	seeds := []Wallpaper{
		{ID: "1", URL: "https://picsum.photos/id/10/1200/800", Title: "星海巡航", Author: "梦境绘师", Tags: []string{"科幻", "赛博朋克"}},
		{ID: "2", URL: "https://picsum.photos/id/20/1200/800", Title: "樱花祭", Author: "花开半夏", Tags: []string{"唯美", "古风"}},
		{ID: "3", URL: "https://picsum.photos/id/30/1200/800", Title: "霓虹街头", Author: "光影捕手", Tags: []string{"都市", "夜晚"}},
		{ID: "4", URL: "https://picsum.photos/id/40/1200/800", Title: "云端彼岸", Author: "追风少年", Tags: []string{"天空", "治愈"}},
		{ID: "5", URL: "https://picsum.photos/id/50/1200/800", Title: "深海歌姬", Author: "汐音", Tags: []string{"海洋", "奇幻"}},
		{ID: "6", URL: "https://picsum.photos/id/60/1200/800", Title: "森林秘境", Author: "林间客", Tags: []string{"自然", "冒险"}},
	}
	for i := range seeds {
		seeds[i].FocalPoint = DefaultFocalPoint()
	}
	return seeds
}
