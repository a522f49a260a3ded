// pkg/schema/customer.go
package schema

import (
	"github.com/marketops/customer-quality/pkg/model"
)

// DateJoinedPattern is the fixed textual pattern for the signup date
const DateJoinedPattern = `^\d{4}-\d{2}-\d{2}$`

// CustomerSchema declares the expected shape of a marketing customer table
func CustomerSchema() Schema {
	return Schema{
		Columns: []Column{
			{Name: model.ColFullName, Type: TypeText, Nullable: true},
			{Name: model.ColEmailAddress, Type: TypeText, Nullable: true, Unique: true, Checks: []Check{Contains("@")}},
			{Name: model.ColAge, Type: TypeInteger, Nullable: true, Checks: []Check{InRange(model.AgeMin, model.AgeMax)}},
			{Name: model.ColGender, Type: TypeText, Nullable: true, Checks: []Check{OneOf("M", "F", "Other")}},
			{Name: model.ColPhoneNumber, Type: TypeText, Nullable: true},
			{Name: model.ColLocation, Type: TypeText},
			{Name: model.ColCountry, Type: TypeText},
			{Name: model.ColDateJoined, Type: TypeDate, Checks: []Check{Matches(DateJoinedPattern)}},
			{Name: model.ColLeadSource, Type: TypeText, Nullable: true},
			{Name: model.ColUTMCampaign, Type: TypeText, Nullable: true},
			{Name: model.ColUTMMedium, Type: TypeText, Nullable: true},
			{Name: model.ColNotes, Type: TypeText, Nullable: true},
			{Name: model.ColIsSubscribed, Type: TypeText},
		},
	}
}
