// Package i18n provides internationalization support for the cargo service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale. Unknown locales and keys
// missing from a locale fall back to DefaultLocale; an unknown key is
// returned as is.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether the translator has messages for locale.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first supported language of the Accept-Language header,
// ignoring region subtags and quality weights. Without one it returns
// DefaultLocale.
func GetLocale(c *gin.Context) string {
	t := GetTranslator()
	for _, tag := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang, _, _ := strings.Cut(strings.TrimSpace(tag), ";")
		lang, _, _ = strings.Cut(lang, "-")
		lang = strings.ToLower(lang)
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "The container changed while placing, please retry",
			"error.timeout":              "The request timed out",
			"error.service_unavailable":  "Storage is temporarily unavailable",
			"error.file_required":        "A file is required",
			"error.unsupported_format":   "Unsupported file format, use CSV or XLSX",
			"error.invalid_date":         "Invalid date, expected YYYY-MM-DD",
		},
		"pt": {
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "O contêiner mudou durante a alocação, tente novamente",
			"error.timeout":              "A requisição expirou",
			"error.service_unavailable":  "Armazenamento temporariamente indisponível",
			"error.file_required":        "Um arquivo é obrigatório",
			"error.unsupported_format":   "Formato de arquivo não suportado, use CSV ou XLSX",
			"error.invalid_date":         "Data inválida, esperado AAAA-MM-DD",
		},
		"nl": {
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Ongeldige aanvraag body",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.not_found":            "Niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":             "De container is tijdens het plaatsen gewijzigd, probeer het opnieuw",
			"error.timeout":              "Het verzoek is verlopen",
			"error.service_unavailable":  "Opslag is tijdelijk niet beschikbaar",
			"error.file_required":        "Een bestand is vereist",
			"error.unsupported_format":   "Niet ondersteund bestandsformaat, gebruik CSV of XLSX",
			"error.invalid_date":         "Ongeldige datum, verwacht JJJJ-MM-DD",
		},
	}
}
