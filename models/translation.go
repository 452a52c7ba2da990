package models

import "fmt"

// Translation представляет строку интерфейса сайта на трех языках.
// Key — символическое имя строки, по нему клиент подставляет текст.
type Translation struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	AZ  string `json:"az"`
	EN  string `json:"en"`
	RU  string `json:"ru"`
}

func (t *Translation) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("translation key is required")
	}
	return nil
}
