package models

import "fmt"

// GalleryPhoto — одна фотография внутри раздела галереи.
type GalleryPhoto struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// GalleryVideo — видеоролик раздела. VideoId — нормализованный идентификатор
// для встраиваемого плеера, URL — исходная ссылка.
type GalleryVideo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoID  string `json:"videoId"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
}

// GallerySection представляет раздел галереи (одно мероприятие) с упорядоченными
// списками фото и видео.
type GallerySection struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Date   string         `json:"date"`
	Photos []GalleryPhoto `json:"photos"`
	Videos []GalleryVideo `json:"videos"`
}

func (g *GallerySection) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("gallery section title is required")
	}
	return nil
}
