package reddit

import (
	"time"

	"github.com/MdHasib01/commserver/internal/core/domain"
)

// Platform is the platform key this scraper registers under.
const Platform = "reddit"

// listing is the Reddit API envelope wrapping paginated results.
type listing struct {
	Kind string      `json:"kind"`
	Data listingData `json:"data"`
}

type listingData struct {
	After    string  `json:"after"`
	Children []thing `json:"children"`
}

// thing is one element of a listing: kind "t3" for posts, "t1" for
// comments, "more" for collapsed comment stubs.
type thing struct {
	Kind string    `json:"kind"`
	Data thingData `json:"data"`
}

// thingData is the union of post and comment fields we consume.
type thingData struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	SelfText      string  `json:"selftext"`
	Body          string  `json:"body"`
	Author        string  `json:"author"`
	Subreddit     string  `json:"subreddit"`
	Permalink     string  `json:"permalink"`
	URL           string  `json:"url"`
	CreatedUTC    float64 `json:"created_utc"`
	Score         int     `json:"score"`
	Ups           int     `json:"ups"`
	UpvoteRatio   float64 `json:"upvote_ratio"`
	NumComments   int     `json:"num_comments"`
	Stickied      bool    `json:"stickied"`
	LinkFlairText string  `json:"link_flair_text"`
	Thumbnail     string  `json:"thumbnail"`
	IsSelf        bool    `json:"is_self"`
	IsVideo       bool    `json:"is_video"`
	IsGallery     bool    `json:"is_gallery"`

	GalleryData struct {
		Items []struct {
			MediaID string `json:"media_id"`
		} `json:"items"`
	} `json:"gallery_data"`

	MediaMetadata map[string]struct {
		Source struct {
			URL string `json:"u"`
			GIF string `json:"gif"`
		} `json:"s"`
	} `json:"media_metadata"`

	Preview struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

// toRawItem converts a post thing to the platform-neutral form.
func (d *thingData) toRawItem(channel string) domain.RawContentItem {
	sourceURL := d.URL
	if d.Permalink != "" {
		sourceURL = "https://www.reddit.com" + d.Permalink
	}

	// Self posts carry their own permalink in the url field; only link,
	// image and video posts have a distinct media target.
	mediaURL := ""
	if !d.IsSelf && d.URL != sourceURL {
		mediaURL = d.URL
	}

	thumbnail := d.Thumbnail
	if len(d.Preview.Images) > 0 && d.Preview.Images[0].Source.URL != "" {
		thumbnail = d.Preview.Images[0].Source.URL
	}

	return domain.RawContentItem{
		Platform:    Platform,
		OriginalID:  d.ID,
		Channel:     channel,
		Title:       d.Title,
		Body:        d.SelfText,
		URL:         sourceURL,
		Author:      d.Author,
		CreatedAt:   time.Unix(int64(d.CreatedUTC), 0).UTC(),
		Score:       d.Score,
		Ups:         d.Ups,
		UpvoteRatio: d.UpvoteRatio,
		NumComments: d.NumComments,
		Stickied:    d.Stickied,
		Flair:       d.LinkFlairText,
		Thumbnail:   thumbnail,
		MediaURL:    mediaURL,
		GalleryURLs: d.galleryURLs(),
		IsVideo:     d.IsVideo,
	}
}

// galleryURLs resolves gallery entries to image URLs in display order.
func (d *thingData) galleryURLs() []string {
	if !d.IsGallery || len(d.GalleryData.Items) == 0 {
		return nil
	}
	var urls []string
	for _, item := range d.GalleryData.Items {
		meta, ok := d.MediaMetadata[item.MediaID]
		if !ok {
			continue
		}
		u := meta.Source.URL
		if u == "" {
			u = meta.Source.GIF
		}
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// toRawComment converts a comment thing to the platform-neutral form.
func (d *thingData) toRawComment() domain.RawComment {
	return domain.RawComment{
		OriginalID: d.ID,
		Author:     d.Author,
		Body:       d.Body,
		Score:      d.Score,
		CreatedAt:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
	}
}
