package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"news_builder/internal/extract"
	"news_builder/internal/logger"

	"golang.org/x/time/rate"
)

const (
	ViaDirect = "direct"
	ViaMirror = "jina"

	excerptLen = 200
)

// FetchError возвращается, когда лента или зеркало ответили неуспешным статусом.
type FetchError struct {
	Status int
	URL    string
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed %d for %s\n%s", e.Status, e.URL, e.Body)
}

// Document — полученный текст ленты и способ, которым он был получен.
type Document struct {
	Text string
	Via  string
}

// Options задаёт параметры исходящих запросов.
type Options struct {
	UserAgent  string
	Accept     string
	MirrorBase string
	Timeout    time.Duration
	// Interval — минимальная пауза между запросами; ноль снимает ограничение.
	Interval time.Duration
}

// Client загружает ленты напрямую и через текстовое зеркало.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	extractor extract.Extractor
	opts      Options
}

// NewClient создаёт Client. extractor используется, чтобы решить, нужен ли запрос через зеркало.
func NewClient(opts Options, extractor extract.Extractor) *Client {
	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}
	return &Client{
		client:    &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		extractor: extractor,
		opts:      opts,
	}
}

// Fetch выполняет GET по url и возвращает тело ответа как текст.
// Редиректы выполняются клиентом; статус вне 2xx превращается в *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", c.opts.Accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	text := string(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Status: resp.StatusCode, URL: url, Body: excerpt(text, excerptLen)}
	}
	return text, nil
}

// FetchWithFallback загружает ленту напрямую, а если в ответе нет ни одного элемента,
// делает ровно одну повторную попытку через зеркало.
func (c *Client) FetchWithFallback(ctx context.Context, url string) (Document, error) {
	direct, err := c.Fetch(ctx, url)
	if err != nil {
		return Document{}, err
	}
	if len(c.extractor.Entries(direct)) > 0 {
		return Document{Text: direct, Via: ViaDirect}, nil
	}

	mirrored := MirrorURL(c.opts.MirrorBase, url)
	logger.Log.WithFields(map[string]interface{}{
		"url":    url,
		"mirror": mirrored,
	}).Debug("Direct response has no items, retrying through mirror")

	text, err := c.Fetch(ctx, mirrored)
	if err != nil {
		return Document{}, err
	}
	return Document{Text: text, Via: ViaMirror}, nil
}

// MirrorURL переписывает схему и хост url так, чтобы запрос шёл через зеркало base.
func MirrorURL(base, url string) string {
	scheme := "http://"
	if strings.HasPrefix(url, "https://") {
		scheme = "https://"
	}
	return base + "http://" + strings.Replace(url, scheme, "", 1)
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
