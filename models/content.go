package models

// ContentBlock представляет произвольный блок контента страницы (раздел "О клубе",
// правила, контакты). Форма свободная, обязательных полей нет — блоки разных страниц
// несут разные наборы полей, сервер их не интерпретирует.
type ContentBlock struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Image   string `json:"image"`
}

func (c *ContentBlock) Validate() error {
	return nil
}
