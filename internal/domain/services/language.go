package services

import (
	"regexp"
	"strings"

	"phishguard-lab/internal/domain/models"
)

// AlertType keys the personalized alert catalogs
type AlertType string

const (
	AlertBankScam         AlertType = "bank_scam"
	AlertPaymentFraud     AlertType = "payment_fraud"
	AlertCredentialHarvest AlertType = "credential_harvest"
	AlertInsuranceScam    AlertType = "insurance_scam"
	AlertSubscriptionScam AlertType = "subscription_scam"
	AlertFinancialAidScam AlertType = "financial_aid_scam"
	AlertWireFraud        AlertType = "wire_fraud"
	AlertBillingFraud     AlertType = "billing_fraud"
	AlertPatientData      AlertType = "patient_data"
	AlertInvoiceScam      AlertType = "invoice_scam"
	AlertTuitionFraud     AlertType = "tuition_fraud"
	AlertGeneric          AlertType = "generic"
)

// LanguageBundle holds per-language keyword lists and alert text
type LanguageBundle struct {
	UrgencyWords []string
	MoneyWords   []string
	Greetings    []string
	Alerts       map[AlertType]string
}

var languageBundles = map[models.Language]LanguageBundle{
	models.LanguageEnglish: {
		UrgencyWords: []string{"urgent", "immediately", "act now", "limited time", "expires soon"},
		MoneyWords:   []string{"payment", "invoice", "refund", "prize", "lottery"},
		Greetings:    []string{"dear", "hello", "hi", "greetings"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "This looks like a bank scam. Never share your OTP with anyone.",
			AlertPaymentFraud:      "Suspicious payment request detected. Verify the sender before proceeding.",
			AlertCredentialHarvest: "This message is trying to steal your login credentials. Do not click any links.",
			AlertGeneric:           "This message appears to be phishing. Do not share personal information.",
		},
	},
	models.LanguageSpanish: {
		UrgencyWords: []string{"urgente", "inmediatamente", "actúa ahora", "tiempo limitado", "expira pronto"},
		MoneyWords:   []string{"pago", "factura", "reembolso", "premio", "lotería"},
		Greetings:    []string{"querido", "hola", "saludos", "estimado"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "Esto parece un fraude bancario. Nunca compartas tu OTP con nadie.",
			AlertPaymentFraud:      "Solicitud de pago sospechosa detectada. Verifica el remitente antes de proceder.",
			AlertCredentialHarvest: "Este mensaje está tratando de robar tus credenciales. No hagas clic en ningún enlace.",
			AlertGeneric:           "Este mensaje parece ser phishing. No compartas información personal.",
		},
	},
	models.LanguageFrench: {
		UrgencyWords: []string{"immédiatement", "agissez maintenant", "temps limité", "expire bientôt", "urgentement"},
		MoneyWords:   []string{"paiement", "facture", "remboursement", "prix", "loterie"},
		Greetings:    []string{"cher", "bonjour", "salut", "salutations"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "Cela ressemble à une arnaque bancaire. Ne partagez jamais votre OTP.",
			AlertPaymentFraud:      "Demande de paiement suspecte détectée. Vérifiez l'expéditeur avant de continuer.",
			AlertCredentialHarvest: "Ce message tente de voler vos identifiants. Ne cliquez sur aucun lien.",
			AlertGeneric:           "Ce message semble être du phishing. Ne partagez pas d'informations personnelles.",
		},
	},
	models.LanguageHindi: {
		UrgencyWords: []string{"तत्काल", "जरूरी", "समाप्त", "निलंबित"},
		MoneyWords:   []string{"भुगतान", "चालान", "वापसी", "स्थानांतरण", "जमा"},
		Greetings:    []string{"प्रिय", "नमस्ते", "सलाम", "आदरणीय"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "यह बैंक घोटाला लगता है। कभी भी अपना OTP किसी के साथ साझा न करें।",
			AlertPaymentFraud:      "संदिग्ध भुगतान अनुरोध का पता चला। आगे बढ़ने से पहले प्रेषक को सत्यापित करें।",
			AlertCredentialHarvest: "यह संदेश आपके लॉगिन क्रेडेंशियल चुराने की कोशिश कर रहा है। किसी लिंक पर क्लिक न करें।",
			AlertGeneric:           "यह संदेश फ़िशिंग हो सकता है, कृपया अपनी जानकारी साझा न करें।",
		},
	},
	models.LanguageGerman: {
		UrgencyWords: []string{"dringend", "sofort", "handeln sie jetzt", "begrenzte zeit", "läuft bald ab"},
		MoneyWords:   []string{"zahlung", "rechnung", "rückerstattung", "preis", "lotterie"},
		Greetings:    []string{"lieber", "hallo", "hi", "grüße"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "Das sieht nach einem Bankbetrug aus. Teilen Sie niemals Ihr OTP.",
			AlertPaymentFraud:      "Verdächtige Zahlungsanfrage erkannt. Überprüfen Sie den Absender.",
			AlertCredentialHarvest: "Diese Nachricht versucht, Ihre Anmeldedaten zu stehlen. Klicken Sie auf keine Links.",
			AlertGeneric:           "Diese Nachricht scheint Phishing zu sein. Teilen Sie keine persönlichen Informationen.",
		},
	},
	models.LanguageRussian: {
		UrgencyWords: []string{"срочно", "немедленно", "действуйте сейчас", "ограниченное время", "истекает скоро"},
		MoneyWords:   []string{"платеж", "счет", "возврат", "цена", "лотерея"},
		Greetings:    []string{"дорогой", "привет", "здравствуйте"},
		Alerts: map[AlertType]string{
			AlertBankScam:          "Это похоже на банковское мошенничество. Никогда не делитесь своим OTP.",
			AlertPaymentFraud:      "Обнаружен подозрительный запрос на оплату. Проверьте отправителя.",
			AlertCredentialHarvest: "Это сообщение пытается украсть ваши учетные данные. Не нажимайте на ссылки.",
			AlertGeneric:           "Это сообщение кажется фишингом. Не делитесь личной информацией.",
		},
	},
}

// detectionOrder keeps keyword-score tie-breaking stable across calls
var detectionOrder = []models.Language{
	models.LanguageEnglish, models.LanguageSpanish, models.LanguageFrench,
	models.LanguageHindi, models.LanguageGerman, models.LanguageRussian,
}

// BundleForLanguage returns the pattern bundle for a language, falling
// back to English for unrecognized values.
func BundleForLanguage(lang models.Language) LanguageBundle {
	if b, ok := languageBundles[lang]; ok {
		return b
	}
	return languageBundles[models.LanguageEnglish]
}

var (
	devanagariRegex     = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
	spanishCharsRegex   = regexp.MustCompile(`(?i)[ñáéíóúü]`)
	frenchCharsRegex    = regexp.MustCompile(`(?i)[àâäéèêëïîôöùûüÿç]`)
	germanCharsRegex    = regexp.MustCompile(`(?i)[äöüß]`)
	whitespaceSplitRegex = regexp.MustCompile(`\s+`)
)

// DetectLanguage identifies the message language. Distinctive character
// classes give a deterministic fast path; otherwise each language's
// keyword lists are tallied (urgency 3, money 2, greeting 1) and a
// non-English result needs a margin of at least 3 over English so short
// English text with an incidental foreign stopword stays English.
func DetectLanguage(text string) models.Language {
	if devanagariRegex.MatchString(text) {
		return models.LanguageHindi
	}
	if spanishCharsRegex.MatchString(text) {
		return models.LanguageSpanish
	}
	if frenchCharsRegex.MatchString(text) {
		return models.LanguageFrench
	}
	if germanCharsRegex.MatchString(text) {
		return models.LanguageGerman
	}

	words := whitespaceSplitRegex.Split(strings.ToLower(text), -1)
	scores := make(map[models.Language]int, len(detectionOrder))

	for _, lang := range detectionOrder {
		bundle := languageBundles[lang]
		score := 0
		for _, word := range words {
			if containsWord(bundle.UrgencyWords, word) {
				score += 3
			}
			if containsWord(bundle.MoneyWords, word) {
				score += 2
			}
			if containsWord(bundle.Greetings, word) {
				score += 1
			}
		}
		scores[lang] = score
	}

	detected := models.LanguageEnglish
	for _, lang := range detectionOrder {
		if scores[lang] > scores[detected] {
			detected = lang
		}
	}

	englishScore := scores[models.LanguageEnglish]
	maxScore := scores[detected]
	if englishScore >= 2 || maxScore-englishScore < 3 {
		return models.LanguageEnglish
	}
	if maxScore > 0 {
		return detected
	}
	return models.LanguageEnglish
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if w == word {
			return true
		}
	}
	return false
}
