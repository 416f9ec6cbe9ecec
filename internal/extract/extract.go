// Package extract достаёт элементы и отдельные поля из текста RSS-ленты.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Entry — один элемент ленты, из которого можно прочитать поле по имени тега.
type Entry interface {
	Field(tag string) string
}

// Extractor разбивает документ ленты на элементы.
// Реализации никогда не возвращают ошибку: битый документ даёт пустой список.
type Extractor interface {
	Entries(doc string) []Entry
}

// New возвращает экстрактор по имени: "pattern" или "rss".
func New(name string) (Extractor, error) {
	switch name {
	case "", "pattern":
		return Pattern{}, nil
	case "rss":
		return RSS{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q", name)
	}
}

var itemRe = regexp.MustCompile(`(?i)<item>([\s\S]*?)</item>`)

// Field возвращает содержимое первого тега tag в text без обёртки CDATA и пробелов по краям.
// Если тега нет, возвращается пустая строка.
func Field(text, tag string) string {
	q := regexp.QuoteMeta(tag)
	re, err := regexp.Compile(`(?i)<` + q + `[^>]*>([\s\S]*?)</` + q + `>`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return stripCDATA(m[1])
}

// ItemBlocks возвращает содержимое всех блоков <item>…</item> в порядке появления.
func ItemBlocks(doc string) []string {
	matches := itemRe.FindAllStringSubmatch(doc, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}

func stripCDATA(s string) string {
	s = strings.Replace(s, "<![CDATA[", "", 1)
	s = strings.Replace(s, "]]>", "", 1)
	return strings.TrimSpace(s)
}

// Block — сырой текст одного элемента ленты.
type Block string

func (b Block) Field(tag string) string {
	return Field(string(b), tag)
}

// Pattern — терпимый к ошибкам разметки экстрактор на регулярных выражениях.
type Pattern struct{}

func (Pattern) Entries(doc string) []Entry {
	blocks := ItemBlocks(doc)
	entries := make([]Entry, 0, len(blocks))
	for _, b := range blocks {
		entries = append(entries, Block(b))
	}
	return entries
}
