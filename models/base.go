package models

// Record — универсальная запись коллекции. Админка присылает произвольный JSON,
// поэтому записи храним как map, а форму сверяем через типизированные модели при записи.
type Record = map[string]interface{}

// Validator реализуют типизированные модели сущностей для проверки записи на границе API.
type Validator interface {
	Validate() error
}
