package recommendation

import (
	"strings"
	"unicode/utf16"
)

const imageSuffix = "&auto=format&fit=crop"

// FallbackImages is the ordered stock photo set used when a recipe has no
// usable image.
var FallbackImages = []string{
	"https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=2080" + imageSuffix,
	"https://images.unsplash.com/photo-1512621776951-a57141f2eefd?q=80&w=2070" + imageSuffix,
	"https://images.unsplash.com/photo-1490645935967-10de6ba17061?q=80&w=2053" + imageSuffix,
	"https://images.unsplash.com/photo-1467003909585-2f8a72700288?q=80&w=2032" + imageSuffix,
	"https://images.unsplash.com/photo-1498837167922-ddd27525d352?q=80&w=2070" + imageSuffix,
	"https://images.unsplash.com/photo-1473093226795-af9932fe5856?q=80&w=2094" + imageSuffix,
	"https://images.unsplash.com/photo-1476224203421-9ac39bcb3327?q=80&w=2070" + imageSuffix,
	"https://images.unsplash.com/photo-1540189549336-e6e99c3679fe?q=80&w=2070" + imageSuffix,
}

var placeholderMarkers = []string{"gk-shareGraphic.png", "placeholder"}

// FallbackImage picks a stock image for title. The same title always maps
// to the same image.
func FallbackImage(title string) string {
	if title == "" {
		title = "Recipe"
	}

	// Rolling hash over UTF-16 code units; the shift wraps at 32 bits.
	var hash int64
	for _, c := range utf16.Encode([]rune(title)) {
		hash = int64(c) + (int64(int32(hash)<<5) - hash)
	}
	if hash < 0 {
		hash = -hash
	}
	return FallbackImages[hash%int64(len(FallbackImages))]
}

// NeedsFallback reports whether url is blank or a known placeholder.
func NeedsFallback(url string) bool {
	if strings.TrimSpace(url) == "" {
		return true
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(url, m) {
			return true
		}
	}
	return false
}

func resolveImage(url, title string) string {
	if NeedsFallback(url) {
		return FallbackImage(title)
	}
	return url
}
