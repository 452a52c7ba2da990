package models

// ContactRequest — сообщение с формы обратной связи сайта.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// TranslateRequest — запрос на машинный перевод текста для админки.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"targetLang"`
}

// TranslateResponse — ответ прокси перевода.
type TranslateResponse struct {
	Translation string `json:"translation"`
}
