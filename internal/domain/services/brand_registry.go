package services

import "strings"

// BrandRegistry holds the reference data used by link analysis, brand
// variation detection, and homograph analysis: well-known legitimate
// domains, per-brand typo registries, short lookalike keywords, official
// site URLs, and the suspicious TLD set.
type BrandRegistry struct {
	legitimateDomains []string
	brandOrder        []string
	variations        map[string][]string
	keywords          []string
	officialSites     map[string]string
	suspiciousTLDs    map[string]bool
}

// NewBrandRegistry creates a registry populated with the default brand data
func NewBrandRegistry() *BrandRegistry {
	r := &BrandRegistry{}
	r.initDomains()
	r.initVariations()
	r.initOfficialSites()
	r.initTLDs()
	return r
}

func (r *BrandRegistry) initDomains() {
	r.legitimateDomains = []string{
		"paypal.com", "microsoft.com", "google.com", "apple.com", "amazon.com",
		"netflix.com", "facebook.com", "twitter.com", "instagram.com", "linkedin.com",
		"github.com", "stackoverflow.com", "reddit.com", "youtube.com", "wikipedia.org",
		"ebay.com", "shopify.com", "stripe.com", "square.com", "dropbox.com",
		"adobe.com", "salesforce.com", "zoom.us", "slack.com", "discord.com",
		"bankofamerica.com", "wellsfargo.com", "chase.com", "citibank.com",
		"visa.com", "mastercard.com", "americanexpress.com", "discover.com",
	}

	// Short keywords matched against hosts with edit distance <= 2
	r.keywords = []string{
		"microsoft1", "google1", "apple0", "paypal-1", "amazon01",
		"bank", "netflix2", "netmirror", "bitcoin",
	}
}

func (r *BrandRegistry) initVariations() {
	// Stable iteration order so repeated scoring of the same text yields
	// identical variation lists.
	r.brandOrder = []string{
		"paypal", "microsoft", "google", "apple", "amazon",
		"facebook", "twitter", "instagram", "linkedin", "github",
		"netflix", "youtube", "ebay", "shopify", "stripe",
		"dropbox", "adobe", "zoom", "slack", "discord",
	}
	r.variations = map[string][]string{
		"paypal":    {"paypel", "paypall", "paypa1", "paypal1", "paypal-1", "paypa1.com", "paypel.com", "paypall.com"},
		"microsoft": {"microsoft1", "microsft", "microsof", "microsoft-1", "microsft.com", "microsof.com"},
		"google":    {"google1", "goog1e", "goog1e.com", "google-1", "g00gle", "g00gle.com"},
		"apple":     {"apple0", "app1e", "app1e.com", "apple-1"},
		"amazon":    {"amazon01", "amaz0n", "amaz0n.com", "amazon-1"},
		"facebook":  {"faceb00k", "faceb00k.com", "facebook-1"},
		"twitter":   {"tw1tter", "tw1tter.com", "twitter-1"},
		"instagram": {"instagr4m", "instagr4m.com", "instagram-1"},
		"linkedin":  {"linked1n", "linked1n.com", "linkedin-1"},
		"github":    {"g1thub", "g1thub.com", "github-1"},
		"netflix":   {"netflix2", "netf1ix", "netf1ix.com", "netflix-1"},
		"youtube":   {"y0utube", "y0utube.com", "youtube-1"},
		"ebay":      {"eb4y", "eb4y.com", "ebay-1"},
		"shopify":   {"sh0pify", "sh0pify.com", "shopify-1"},
		"stripe":    {"str1pe", "str1pe.com", "stripe-1"},
		"dropbox":   {"dr0pbox", "dr0pbox.com", "dropbox-1"},
		"adobe":     {"ad0be", "ad0be.com", "adobe-1"},
		"zoom":      {"z00m", "z00m.us", "zoom-1"},
		"slack":     {"sl4ck", "sl4ck.com", "slack-1"},
		"discord":   {"d1scord", "d1scord.com", "discord-1"},
	}
}

func (r *BrandRegistry) initOfficialSites() {
	r.officialSites = map[string]string{
		"paypal":          "https://www.paypal.com",
		"microsoft":       "https://www.microsoft.com",
		"google":          "https://www.google.com",
		"apple":           "https://www.apple.com",
		"amazon":          "https://www.amazon.com",
		"facebook":        "https://www.facebook.com",
		"twitter":         "https://www.twitter.com",
		"instagram":       "https://www.instagram.com",
		"linkedin":        "https://www.linkedin.com",
		"github":          "https://www.github.com",
		"netflix":         "https://www.netflix.com",
		"youtube":         "https://www.youtube.com",
		"ebay":            "https://www.ebay.com",
		"shopify":         "https://www.shopify.com",
		"stripe":          "https://www.stripe.com",
		"dropbox":         "https://www.dropbox.com",
		"adobe":           "https://www.adobe.com",
		"zoom":            "https://www.zoom.us",
		"slack":           "https://www.slack.com",
		"discord":         "https://www.discord.com",
		"bankofamerica":   "https://www.bankofamerica.com",
		"wellsfargo":      "https://www.wellsfargo.com",
		"chase":           "https://www.chase.com",
		"citibank":        "https://www.citibank.com",
		"visa":            "https://www.visa.com",
		"mastercard":      "https://www.mastercard.com",
		"americanexpress": "https://www.americanexpress.com",
		"discover":        "https://www.discover.com",
	}
}

func (r *BrandRegistry) initTLDs() {
	r.suspiciousTLDs = map[string]bool{
		"zip": true, "mov": true, "gq": true, "tk": true, "ml": true,
		"cf": true, "ga": true, "top": true, "virus": true, "malware": true,
		"ly": true,
	}
}

// LegitimateDomains returns the well-known domain list
func (r *BrandRegistry) LegitimateDomains() []string {
	return r.legitimateDomains
}

// Variations returns the brand to known-typo registry
func (r *BrandRegistry) Variations() map[string][]string {
	return r.variations
}

// Keywords returns the short lookalike keyword list
func (r *BrandRegistry) Keywords() []string {
	return r.keywords
}

// SuspiciousTLDs returns the suspicious TLD set as a sorted-free map
func (r *BrandRegistry) SuspiciousTLDs() []string {
	tlds := make([]string, 0, len(r.suspiciousTLDs))
	for t := range r.suspiciousTLDs {
		tlds = append(tlds, t)
	}
	return tlds
}

// IsSuspiciousTLD reports whether tld is in the suspicious set
func (r *BrandRegistry) IsSuspiciousTLD(tld string) bool {
	return r.suspiciousTLDs[strings.ToLower(tld)]
}

// OfficialWebsite returns the official site URL for a brand, or ""
func (r *BrandRegistry) OfficialWebsite(brand string) string {
	return r.officialSites[strings.ToLower(brand)]
}

// KnownTypoBrands returns brands whose typo registry contains the host
// or the host with its TLD stripped.
func (r *BrandRegistry) KnownTypoBrands(host, hostNoTLD string) []string {
	var brands []string
	for _, brand := range r.brandOrder {
		for _, v := range r.variations[brand] {
			if v == host || v == hostNoTLD {
				brands = append(brands, brand)
				break
			}
		}
	}
	return brands
}

// LookalikeKeywords returns keywords within edit distance 2 of the host
// (www prefix stripped), excluding exact matches.
func (r *BrandRegistry) LookalikeKeywords(host string) []string {
	bare := strings.TrimPrefix(host, "www.")
	var hits []string
	for _, kw := range r.keywords {
		d := EditDistance(bare, kw)
		if d > 0 && d <= 2 {
			hits = append(hits, kw)
		}
	}
	return hits
}
