package data

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"offroad_server_go/models"
)

// ErrInvalidRecord помечает ошибки формы записи — клиенту уходит 400, а не 500.
var ErrInvalidRecord = errors.New("invalid record")

// ListRecords возвращает все записи коллекции в порядке вставки.
func ListRecords(e Entity) []models.Record {
	return ReadCollection(e.File)
}

// UpsertRecord сохраняет запись коллекции. Если id записи совпадает с уже
// существующей — поля накладываются поверх старой записи (неуказанные поля
// сохраняются). Иначе запись получает новый id и добавляется в конец.
// Возвращает сохраненную запись и признак создания.
func UpsertRecord(e Entity, payload models.Record) (models.Record, bool, error) {
	// nil-map сюда приходит из JSON-значения null; писать в нее нельзя.
	if payload == nil {
		return nil, false, fmt.Errorf("%w: record must be a JSON object", ErrInvalidRecord)
	}

	unlock := Lock(e.File)
	defer unlock()

	records := ReadCollection(e.File)

	id, _ := payload["id"].(string)
	if id != "" {
		for i, rec := range records {
			if recID, _ := rec["id"].(string); recID == id {
				// Обновление: накладываем присланные поля поверх существующих.
				merged := models.Record{}
				for k, v := range rec {
					merged[k] = v
				}
				for k, v := range payload {
					merged[k] = v
				}
				if err := e.Validate(merged); err != nil {
					return nil, false, err
				}
				records[i] = merged
				if err := WriteCollection(e.File, records); err != nil {
					return nil, false, err
				}
				return merged, false, nil
			}
		}
	}

	// Создание: id — текущее время в миллисекундах строкой. Под блокировкой
	// файла сдвигаем значение вперед, пока не найдем свободное, чтобы быстрые
	// последовательные создания не выдали одинаковый id.
	payload["id"] = nextID(records)
	if err := e.Validate(payload); err != nil {
		return nil, false, err
	}
	records = append(records, payload)
	if err := WriteCollection(e.File, records); err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// DeleteRecord удаляет запись по id и перезаписывает коллекцию.
// Отсутствие записи ошибкой не считается: повторное удаление идемпотентно.
func DeleteRecord(e Entity, id string) error {
	unlock := Lock(e.File)
	defer unlock()

	records := ReadCollection(e.File)
	filtered := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if recID, _ := rec["id"].(string); recID != id {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == len(records) {
		return nil
	}
	return WriteCollection(e.File, filtered)
}

func nextID(records []models.Record) string {
	existing := make(map[string]bool, len(records))
	for _, rec := range records {
		if id, ok := rec["id"].(string); ok {
			existing[id] = true
		}
	}

	candidate := time.Now().UnixMilli()
	for existing[strconv.FormatInt(candidate, 10)] {
		candidate++
	}
	return strconv.FormatInt(candidate, 10)
}
