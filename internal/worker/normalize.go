package worker

import (
	"time"

	"news_builder/internal/extract"
	"news_builder/internal/models"
)

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Смещения североамериканских поясов, которые встречаются в pubDate по имени.
// time.Parse для незнакомой аббревиатуры ставит нулевое смещение.
var zoneOffsets = map[string]int{
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

// ParseTimestamp переводит дату публикации в миллисекунды Unix.
// Нераспознанная дата даёт 0.
func ParseTimestamp(pubDate string) int64 {
	if pubDate == "" {
		return 0
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, pubDate); err == nil {
			return withKnownZone(t).UnixMilli()
		}
	}
	return 0
}

// Normalize собирает NewsItem из элемента ленты. Элемент без заголовка, ссылки
// или с нераспознанной датой отклоняется (ok == false).
func Normalize(e extract.Entry, category, defaultSource string) (models.NewsItem, bool) {
	title := e.Field("title")
	link := e.Field("link")
	pubDate := e.Field("pubDate")
	source := e.Field("source")
	if source == "" {
		source = defaultSource
	}

	ts := ParseTimestamp(pubDate)
	if title == "" || link == "" || ts <= 0 {
		return models.NewsItem{}, false
	}

	return models.NewsItem{
		PublishedItem: models.PublishedItem{
			Category: category,
			Title:    title,
			Link:     link,
			Source:   source,
			PubDate:  pubDate,
		},
		TS: ts,
	}, true
}

func withKnownZone(t time.Time) time.Time {
	name, _ := t.Zone()
	offset, ok := zoneOffsets[name]
	if !ok {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, offset))
}
