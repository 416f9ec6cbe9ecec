package worker

import (
	"context"

	"news_builder/internal/extract"
	"news_builder/internal/fetcher"
	"news_builder/internal/logger"
	"news_builder/internal/models"
)

// Fetcher загружает текст ленты с запасным путём через зеркало.
type Fetcher interface {
	FetchWithFallback(ctx context.Context, url string) (fetcher.Document, error)
}

// Recorder получает счётчики по каждой обработанной ленте.
type Recorder interface {
	ObserveFeed(category, via string, found, kept int)
	ObserveFetchError(category string)
}

// FeedResult — нормализованные новости одной ленты.
type FeedResult struct {
	Items []models.NewsItem
	Via   string
	Found int
}

type Worker struct {
	fetcher       Fetcher
	extractor     extract.Extractor
	defaultSource string
	recorder      Recorder
}

func NewWorker(f Fetcher, ex extract.Extractor, defaultSource string, rec Recorder) *Worker {
	return &Worker{fetcher: f, extractor: ex, defaultSource: defaultSource, recorder: rec}
}

// HandleFeed загружает одну ленту и превращает её элементы в новости.
// Ошибка загрузки возвращается как есть; неполные элементы молча пропускаются.
func (w *Worker) HandleFeed(ctx context.Context, feed models.FeedSource) (FeedResult, error) {
	log := logger.ForFeed(feed.Category, feed.URL)

	doc, err := w.fetcher.FetchWithFallback(ctx, feed.URL)
	if err != nil {
		log.Debugf("Fetch failed: %v", err)
		if w.recorder != nil {
			w.recorder.ObserveFetchError(feed.Category)
		}
		return FeedResult{}, err
	}

	entries := w.extractor.Entries(doc.Text)
	log.WithFields(map[string]interface{}{
		"via":         doc.Via,
		"items_count": len(entries),
	}).Infof("Feed %q via %s -> items found: %d", feed.Category, doc.Via, len(entries))

	items := make([]models.NewsItem, 0, len(entries))
	for _, e := range entries {
		item, ok := Normalize(e, feed.Category, w.defaultSource)
		if !ok {
			log.WithField("title", e.Field("title")).Debug("Skipping incomplete item")
			continue
		}
		items = append(items, item)
	}

	if w.recorder != nil {
		w.recorder.ObserveFeed(feed.Category, doc.Via, len(entries), len(items))
	}
	return FeedResult{Items: items, Via: doc.Via, Found: len(entries)}, nil
}
