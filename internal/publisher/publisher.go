package publisher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"news_builder/internal/models"

	"github.com/google/renameio"
)

// ErrEmptyResult означает, что после фильтрации не осталось ни одной новости.
var ErrEmptyResult = errors.New("news document has no items (items = 0), check feeds and queries")

// Publisher записывает итоговый документ по пути path.
type Publisher struct {
	path string
}

func New(path string) *Publisher {
	return &Publisher{path: path}
}

func (p *Publisher) Path() string {
	return p.path
}

// Encode сериализует результат в JSON с отступом в два пробела.
func Encode(res *models.AggregateResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Publish проверяет результат и атомарно заменяет файл. Пустая выдача не пишется:
// прежний документ остаётся на месте, а вызывающий получает ErrEmptyResult.
func (p *Publisher) Publish(res *models.AggregateResult) error {
	if res == nil || len(res.Items) == 0 {
		return ErrEmptyResult
	}

	data, err := Encode(res)
	if err != nil {
		return fmt.Errorf("encode news document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := renameio.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}
