package models

// SectionRef carries the identity of a form section and the application it
// belongs to. Every section type embeds it.
type SectionRef struct {
	ID            string `gorm:"column:id;primaryKey;type:varchar(36)" bson:"_id" json:"_id"`
	ApplicationID string `gorm:"column:application_id;type:varchar(36);not null;index" bson:"applicationId" json:"applicationId"`
}

// Ref returns the embedded reference so stores can read and assign ids.
func (r *SectionRef) Ref() *SectionRef {
	return r
}

// Section is implemented by every record type that hangs off an Application.
type Section interface {
	// TableName names the table or collection holding the section.
	TableName() string
	Ref() *SectionRef
	// Sanitize replaces enum values outside their allow-list with the field
	// default and reports whether anything changed.
	Sanitize() bool
}

// EmptySections returns one zero value of every section type, in form order.
func EmptySections() []Section {
	return []Section{
		&AdministrativeDetails{},
		&Investigator{},
		&Participant{},
		&BenefitsRisks{},
		&Payment{},
		&Storage{},
		&Checklist{},
	}
}

// AllModels lists every persisted type, root first.
func AllModels() []any {
	out := []any{&Application{}}
	for _, s := range EmptySections() {
		out = append(out, s)
	}
	return out
}
