package data

import (
	"fmt"

	json "github.com/goccy/go-json"

	"offroad_server_go/models"
)

// Entity описывает одну зарегистрированную коллекцию: имя в URL, файл хранилища
// и проверку формы записи перед сохранением.
type Entity struct {
	Name     string
	File     string
	Validate func(models.Record) error
}

// entities — фиксированный список коллекций сайта. Новые сущности добавляются
// только здесь; произвольные имена из URL хранилище не создает.
var entities = map[string]Entity{
	"drivers":      {Name: "drivers", File: "drivers.json", Validate: validateAs(func() models.Validator { return &models.Driver{} })},
	"news":         {Name: "news", File: "news.json", Validate: validateAs(func() models.Validator { return &models.NewsItem{} })},
	"events":       {Name: "events", File: "events.json", Validate: validateAs(func() models.Validator { return &models.EventItem{} })},
	"gallery":      {Name: "gallery", File: "gallery.json", Validate: validateAs(func() models.Validator { return &models.GallerySection{} })},
	"partners":     {Name: "partners", File: "partners.json", Validate: validateAs(func() models.Validator { return &models.Partner{} })},
	"translations": {Name: "translations", File: "translations.json", Validate: validateAs(func() models.Validator { return &models.Translation{} })},
	"content":      {Name: "content", File: "content.json", Validate: validateAs(func() models.Validator { return &models.ContentBlock{} })},
}

// GetEntity возвращает описание коллекции по имени из URL.
func GetEntity(name string) (Entity, bool) {
	e, ok := entities[name]
	return e, ok
}

// EntityNames возвращает имена всех зарегистрированных коллекций.
func EntityNames() []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	return names
}

// validateAs сверяет запись с типизированной моделью: прогоняет map через
// JSON в структуру (ловит поля не того типа) и вызывает Validate модели.
// Лишние поля не запрещаем — записи исторически несут произвольные довески.
func validateAs(proto func() models.Validator) func(models.Record) error {
	return func(rec models.Record) error {
		raw, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		v := proto()
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		return nil
	}
}
