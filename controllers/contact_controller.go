package controllers

import (
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"

	json "github.com/goccy/go-json"

	"offroad_server_go/data"
	"offroad_server_go/models"
)

// smtpSend вынесен в переменную, чтобы тесты подменяли отправку.
var smtpSend = smtp.SendMail

// stripHeaderBreaks вырезает переводы строки из значения, идущего в письмо.
func stripHeaderBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// ContactHandler пересылает сообщение с формы обратной связи на почту клуба.
// Реквизиты SMTP лежат в настройках сайта; если они не заполнены — 500.
// Пример URL: POST /api/contact
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "Name, email and message are required")
		return
	}

	settings := data.GetSettings()
	host, _ := settings["smtpHost"].(string)
	port, _ := settings["smtpPort"].(string)
	user, _ := settings["smtpUser"].(string)
	pass, _ := settings["smtpPass"].(string)
	to, _ := settings["contactEmail"].(string)

	if host == "" || to == "" {
		respondError(w, http.StatusInternalServerError, "SMTP is not configured")
		return
	}
	if port == "" {
		port = "587"
	}

	// Поля формы попадают в заголовки письма, перевод строки в них — это
	// инъекция произвольных заголовков (лишний Bcc и т.п.). Вырезаем.
	subject := stripHeaderBreaks(req.Subject)
	if subject == "" {
		subject = "Сообщение с сайта клуба"
	}
	name := stripHeaderBreaks(req.Name)
	email := stripHeaderBreaks(req.Email)
	phone := stripHeaderBreaks(req.Phone)

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\nИмя: %s\nEmail: %s\nТелефон: %s\n\n%s\r\n",
		user, to, subject, name, email, phone, req.Message,
	)

	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}
	if err := smtpSend(host+":"+port, auth, user, []string{to}, []byte(body)); err != nil {
		log.Printf("ContactHandler: ошибка отправки письма: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to send message: "+err.Error())
		return
	}

	log.Printf("Сообщение с формы обратной связи от %s переслано на %s", req.Email, to)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
