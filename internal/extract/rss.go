package extract

import (
	"strings"

	"github.com/mmcdole/gofeed/rss"
)

// RSS разбирает документ полноценным RSS-парсером gofeed.
// Документ, который парсер не принимает, считается лентой без элементов.
type RSS struct{}

func (RSS) Entries(doc string) []Entry {
	parser := rss.Parser{}
	feed, err := parser.Parse(strings.NewReader(doc))
	if err != nil || feed == nil {
		return []Entry{}
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		entries = append(entries, rssEntry{item: it})
	}
	return entries
}

type rssEntry struct {
	item *rss.Item
}

func (e rssEntry) Field(tag string) string {
	switch strings.ToLower(tag) {
	case "title":
		return strings.TrimSpace(e.item.Title)
	case "link":
		return strings.TrimSpace(e.item.Link)
	case "pubdate":
		return strings.TrimSpace(e.item.PubDate)
	case "description":
		return strings.TrimSpace(e.item.Description)
	case "source":
		if e.item.Source == nil {
			return ""
		}
		return strings.TrimSpace(e.item.Source.Title)
	case "guid":
		if e.item.GUID == nil {
			return ""
		}
		return strings.TrimSpace(e.item.GUID.Value)
	default:
		return ""
	}
}
