package legal

import (
	"time"
)

// Audience values of Section.Audience.
const (
	AudienceClient = "client"
	AudienceAll    = "all"
)

// Section is one legal document shown to clients.
type Section struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Content  string    `json:"content"`
	Audience string    `json:"audience"`
	Version  string    `json:"version"`
	Updated  time.Time `json:"updated"`
}

// TermsOfSaleID is the document a client accepts on the payment step.
const TermsOfSaleID = "terms-of-sale"

var published = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

// Sections returns every published document.
func Sections() []Section {
	return []Section{
		{
			ID:       TermsOfSaleID,
			Title:    "Terms of Sale",
			Summary:  "What a reservation commits you to and how the deposit works.",
			Content:  termsOfSale,
			Audience: AudienceClient,
			Version:  "v1.2",
			Updated:  published,
		},
		{
			ID:       "privacy",
			Title:    "Privacy Policy",
			Summary:  "Which personal data Rotharc keeps and for how long.",
			Content:  privacyPolicy,
			Audience: AudienceAll,
			Version:  "v1.0",
			Updated:  published,
		},
		{
			ID:       "installation",
			Title:    "Installation & Cancellation",
			Summary:  "Preparing for your installation appointment.",
			Content:  installationPolicy,
			Audience: AudienceClient,
			Version:  "v1.0",
			Updated:  published,
		},
	}
}

// Find returns the section with the given id.
func Find(id string) (Section, bool) {
	for _, s := range Sections() {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

const termsOfSale = `1. A reservation holds an installation slot at a Rotharc certified centre.
2. A deposit of 30% of the enhancement price is collected when the reservation is made.
3. The balance is due on the day of the installation.
4. Pending reservations may be cancelled from your account until they are confirmed.
5. Prices are in euros, taxes included.`

const privacyPolicy = `1. We keep your name, contact details and postal address to organise installations.
2. Avatars are stored with our image host and removed when you replace or delete them.
3. Deleting your account removes your reservations, testimonials and booking drafts.`

const installationPolicy = `1. Installations take place on weekdays between 09:00 and 17:00.
2. Arrive fifteen minutes before your slot with a valid ID.
3. Contact us at least 48 hours ahead to move a confirmed appointment.`
