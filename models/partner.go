package models

import "fmt"

// Partner представляет партнера/спонсора клуба (логотип со ссылкой).
type Partner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Image string `json:"image"`
}

func (p *Partner) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("partner name is required")
	}
	return nil
}
