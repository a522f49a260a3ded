// pkg/model/columns.go
package model

// Column names for marketing customer records. The cleaning pipeline and the
// schema validator share this vocabulary but never call each other.
const (
	ColFullName     = "full_name"
	ColEmailAddress = "email_address"
	ColAge          = "age"
	ColGender       = "gender"
	ColPhoneNumber  = "phone_number"
	ColLocation     = "location"
	ColCountry      = "country"
	ColDateJoined   = "date_joined"
	ColLeadSource   = "lead_source"
	ColUTMCampaign  = "utm_campaign"
	ColUTMMedium    = "utm_medium"
	ColNotes        = "notes"
	ColIsSubscribed = "is_subscribed"
)

// Bounds for a plausible customer age, inclusive
const (
	AgeMin = 0
	AgeMax = 120
)
