package transform

import (
	"strings"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// imageExtensions are suffixes treated as directly embeddable images.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// imageHosts serve raw images without an extension in the URL.
var imageHosts = []string{"i.redd.it", "i.imgur.com"}

// videoHosts serve raw video streams.
var videoHosts = []string{"v.redd.it"}

// placeholderThumbnails are upstream sentinel values, not URLs.
var placeholderThumbnails = map[string]bool{
	"self":    true,
	"default": true,
	"nsfw":    true,
	"spoiler": true,
	"image":   true,
}

// ExtractMedia pulls media attachments out of a raw item. Gallery items
// contribute one image per gallery entry; other items contribute at
// most one attachment. All URLs are normalized with NormalizeURL.
func ExtractMedia(item *domain.RawContentItem) []domain.Media {
	if len(item.GalleryURLs) > 0 {
		media := make([]domain.Media, 0, len(item.GalleryURLs))
		for _, u := range item.GalleryURLs {
			u = NormalizeURL(u)
			if u == "" {
				continue
			}
			media = append(media, domain.Media{Type: domain.MediaImage, URL: u})
		}
		return media
	}

	target := NormalizeURL(item.MediaURL)
	if target == "" {
		return nil
	}

	switch {
	case item.IsVideo || matchesHost(target, videoHosts):
		return []domain.Media{{Type: domain.MediaVideo, URL: target, ThumbnailURL: NormalizeURL(item.Thumbnail)}}
	case isImageURL(target):
		return []domain.Media{{Type: domain.MediaImage, URL: target}}
	default:
		// External link posts keep their destination as an attachment.
		return []domain.Media{{Type: domain.MediaLink, URL: target}}
	}
}

// NormalizeURL unescapes the HTML entities upstream APIs embed in media
// URLs and trims whitespace.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.ReplaceAll(u, "&amp;", "&")
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return ""
	}
	return u
}

// classifyContent derives the post's content type from its attachments.
// Video outranks image, and anything else with an attachment is a link
// post. No attachments means a plain text post.
func classifyContent(media []domain.Media) domain.ContentType {
	hasImage := false
	for _, m := range media {
		switch m.Type {
		case domain.MediaVideo:
			return domain.ContentVideo
		case domain.MediaImage:
			hasImage = true
		}
	}
	if hasImage {
		return domain.ContentImage
	}
	if len(media) > 0 {
		return domain.ContentLink
	}
	return domain.ContentText
}

// chooseThumbnail picks the feed preview image: the upstream preview
// wins, then the first extracted image, then nothing.
func chooseThumbnail(item *domain.RawContentItem, media []domain.Media) string {
	if thumb := NormalizeURL(item.Thumbnail); thumb != "" && !placeholderThumbnails[item.Thumbnail] {
		return thumb
	}
	for _, m := range media {
		if m.Type == domain.MediaImage {
			return m.URL
		}
		if m.ThumbnailURL != "" {
			return m.ThumbnailURL
		}
	}
	return ""
}

// isImageURL reports whether the URL points at a raw image.
func isImageURL(u string) bool {
	lowered := strings.ToLower(u)
	if i := strings.IndexAny(lowered, "?#"); i >= 0 {
		lowered = lowered[:i]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return matchesHost(u, imageHosts)
}

// matchesHost reports whether the URL's host is one of hosts.
func matchesHost(u string, hosts []string) bool {
	rest := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	host := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		host = rest[:i]
	}
	for _, h := range hosts {
		if strings.EqualFold(host, h) {
			return true
		}
	}
	return false
}
