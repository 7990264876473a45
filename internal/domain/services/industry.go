package services

import "phishguard-lab/internal/domain/models"

// IndustryBundle holds industry-specific keyword lists and alert text
type IndustryBundle struct {
	UrgencyWords []string
	MoneyWords   []string
	Brands       []string
	Alerts       map[AlertType]string
}

var industryBundles = map[models.Industry]IndustryBundle{
	models.IndustryBanking: {
		UrgencyWords: []string{"account suspended", "fraudulent activity", "verify immediately", "security breach"},
		MoneyWords:   []string{"wire transfer", "account balance", "transaction failed", "payment declined"},
		Brands:       []string{"chase", "bankofamerica", "wellsfargo", "citibank", "visa", "mastercard"},
		Alerts: map[AlertType]string{
			AlertBankScam:  "This looks like a bank scam targeting financial professionals. Never share OTP or account details.",
			AlertWireFraud: "Potential wire transfer fraud. Confirm all payment instructions through verified channels.",
			AlertGeneric:   "Financial phishing attempt detected. Contact IT security if you received this at work.",
		},
	},
	models.IndustryHealthcare: {
		UrgencyWords: []string{"medical emergency", "prescription ready", "insurance claim", "appointment confirmation"},
		MoneyWords:   []string{"copay", "deductible", "medical bill", "insurance payment"},
		Brands:       []string{"medicare", "medicaid", "bluecross", "aetna", "cigna"},
		Alerts: map[AlertType]string{
			AlertInsuranceScam: "Suspicious insurance claim request. Verify patient information through official channels.",
			AlertBillingFraud:  "Potential billing fraud detected. Contact billing department before processing.",
			AlertPatientData:   "This may be attempting to steal patient data. Report to HIPAA compliance officer.",
			AlertGeneric:       "Healthcare phishing attempt. Protect patient information and report to IT security.",
		},
	},
	models.IndustryTech: {
		UrgencyWords: []string{"security update", "account compromised", "data breach", "system maintenance"},
		MoneyWords:   []string{"subscription renewal", "license expired", "cloud storage", "software update"},
		Brands:       []string{"microsoft", "google", "apple", "amazon", "adobe", "salesforce"},
		Alerts: map[AlertType]string{
			AlertCredentialHarvest: "This appears to be targeting tech professionals. Never enter credentials on suspicious sites.",
			AlertSubscriptionScam:  "Suspicious subscription renewal. Verify through official company portals only.",
			AlertGeneric:           "Tech phishing attempt detected. Report to IT security team immediately.",
		},
	},
	models.IndustryEducation: {
		UrgencyWords: []string{"grade posted", "tuition due", "financial aid", "scholarship opportunity"},
		MoneyWords:   []string{"tuition payment", "student loan", "financial aid", "scholarship"},
		Brands:       []string{"fafsa", "studentloans", "collegeboard", "university"},
		Alerts: map[AlertType]string{
			AlertFinancialAidScam: "Suspicious financial aid request. Verify through official university channels.",
			AlertTuitionFraud:     "Potential tuition payment fraud. Contact financial aid office directly.",
			AlertGeneric:          "Educational phishing attempt. Protect student data and report to IT services.",
		},
	},
	models.IndustryGeneral: {
		UrgencyWords: []string{"urgent", "immediately", "act now", "limited time"},
		MoneyWords:   []string{"payment", "invoice", "refund", "prize"},
		Brands:       []string{"paypal", "amazon", "netflix", "spotify"},
		Alerts: map[AlertType]string{
			AlertInvoiceScam:       "Suspicious invoice detected. Verify with the sender before paying.",
			AlertCredentialHarvest: "This appears to be a credential harvesting attempt. Do not enter your login details.",
			AlertGeneric:           "This message shows signs of phishing. Exercise caution.",
		},
	},
}

// BundleForIndustry returns the pattern bundle for an industry, falling
// back to the general bundle for unrecognized values.
func BundleForIndustry(industry models.Industry) IndustryBundle {
	if b, ok := industryBundles[industry]; ok {
		return b
	}
	return industryBundles[models.IndustryGeneral]
}
