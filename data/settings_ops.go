package data

import "offroad_server_go/models"

const settingsFile = "settings.json"

// GetSettings возвращает единственный объект настроек сайта (или пустой объект).
func GetSettings() models.Record {
	return ReadObject(settingsFile)
}

// SetSettings полностью заменяет объект настроек присланным. Это именно замена,
// не слияние: клиент обязан присылать объект целиком, поля, которых нет в
// запросе, из настроек пропадают.
func SetSettings(settings models.Record) error {
	unlock := Lock(settingsFile)
	defer unlock()

	if settings == nil {
		settings = models.Record{}
	}
	return WriteJSON(settingsFile, settings)
}
