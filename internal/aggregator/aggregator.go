package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"news_builder/internal/logger"
	"news_builder/internal/models"
	"news_builder/internal/worker"
)

// FeedHandler превращает одну ленту в список нормализованных новостей.
type FeedHandler interface {
	HandleFeed(ctx context.Context, feed models.FeedSource) (worker.FeedResult, error)
}

// Options — окно актуальности и предельное число новостей в выдаче.
type Options struct {
	Window   time.Duration
	MaxItems int
}

type Aggregator struct {
	handler FeedHandler
	opts    Options
}

func New(h FeedHandler, opts Options) *Aggregator {
	return &Aggregator{handler: h, opts: opts}
}

// Run обходит ленты по очереди и собирает итоговую выдачу на момент now.
// Ошибка любой ленты прерывает весь запуск.
func (a *Aggregator) Run(ctx context.Context, feeds []models.FeedSource, now time.Time) (*models.AggregateResult, error) {
	var all []models.NewsItem
	for _, feed := range feeds {
		res, err := a.handler.HandleFeed(ctx, feed)
		if err != nil {
			return nil, fmt.Errorf("feed %q: %w", feed.Category, err)
		}
		all = append(all, res.Items...)
	}

	selected := Select(all, now, a.opts.Window, a.opts.MaxItems)
	logger.Log.WithFields(map[string]interface{}{
		"collected": len(all),
		"selected":  len(selected),
	}).Debug("Aggregation finished")

	items := make([]models.PublishedItem, 0, len(selected))
	for _, it := range selected {
		items = append(items, it.PublishedItem)
	}

	return &models.AggregateResult{
		UpdatedAt:   now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		HoursWindow: int(a.opts.Window / time.Hour),
		Items:       items,
	}, nil
}

// Select отбрасывает новости старше window, сортирует остальные от новых к старым,
// убирает повторы по ссылке (остаётся самая свежая) и оставляет не больше maxItems.
func Select(items []models.NewsItem, now time.Time, window time.Duration, maxItems int) []models.NewsItem {
	if maxItems <= 0 {
		return []models.NewsItem{}
	}
	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()

	fresh := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		if nowMs-it.TS > windowMs {
			continue
		}
		fresh = append(fresh, it)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].TS > fresh[j].TS
	})

	seen := make(map[string]struct{}, len(fresh))
	uniq := make([]models.NewsItem, 0, min(maxItems, len(fresh)))
	for _, it := range fresh {
		if len(uniq) >= maxItems {
			break
		}
		if _, ok := seen[it.Link]; ok {
			continue
		}
		seen[it.Link] = struct{}{}
		uniq = append(uniq, it)
	}
	return uniq
}
