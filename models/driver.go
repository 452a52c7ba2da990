package models

import "fmt"

// Driver представляет пилота клуба в таблице рейтинга.
type Driver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Points   int    `json:"points"`
	Car      string `json:"car"`
	Image    string `json:"image"`
	Team     string `json:"team"`
}

// Зачетные категории чемпионата. Свободные строки не принимаем,
// иначе таблица рейтинга на сайте разъезжается на фантомные классы.
var DriverCategories = map[string]bool{
	"UTV":  true,
	"ATV":  true,
	"MOTO": true,
	"4x4":  true,
}

func (d *Driver) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("driver name is required")
	}
	if d.Category != "" && !DriverCategories[d.Category] {
		return fmt.Errorf("unknown driver category %q", d.Category)
	}
	if d.Points < 0 {
		return fmt.Errorf("driver points must not be negative")
	}
	return nil
}
