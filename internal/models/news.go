package models

// FeedSource описывает одну настроенную RSS-ленту: метку категории и готовый URL запроса.
type FeedSource struct {
	Category string `json:"category"`
	URL      string `json:"url"`
}

// PublishedItem — публичная форма новости, попадающая в итоговый JSON.
// Порядок полей задаёт порядок ключей в выходном документе.
type PublishedItem struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Source   string `json:"source"`
	PubDate  string `json:"pubDate"`
}

// NewsItem — нормализованная новость вместе с вычисленной меткой времени.
// TS (миллисекунды Unix) нужен только для фильтрации и сортировки и в вывод не попадает.
type NewsItem struct {
	PublishedItem
	TS int64 `json:"-"`
}

// AggregateResult — итог одного запуска.
type AggregateResult struct {
	UpdatedAt   string          `json:"updatedAt"`
	HoursWindow int             `json:"hoursWindow"`
	Items       []PublishedItem `json:"items"`
}
