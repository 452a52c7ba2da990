package models

import "fmt"

// NewsItem представляет новость клуба. Флаг IsMain помечает новость,
// которую сайт показывает в главном блоке; клиент следит, чтобы такая была одна.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	IsMain      bool   `json:"isMain"`
}

func (n *NewsItem) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("news title is required")
	}
	return nil
}
