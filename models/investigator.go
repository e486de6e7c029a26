package models

// Investigator is section 2 of the form.
type Investigator struct {
	SectionRef `bson:",inline"`

	Name          string `gorm:"column:name" bson:"name" json:"name" validate:"required"`
	Designation   string `gorm:"column:designation" bson:"designation" json:"designation" validate:"required"`
	Department    string `gorm:"column:department" bson:"department" json:"department" validate:"required"`
	Address       string `gorm:"column:address" bson:"address" json:"address" validate:"required"`
	Contact       string `gorm:"column:contact" bson:"contact" json:"contact" validate:"required"`
	Qualification string `gorm:"column:qualification" bson:"qualification" json:"qualification" validate:"required"`
}

// TableName implements gorm's tablename interface.
func (Investigator) TableName() string {
	return "investigators"
}

// Sanitize is a no-op: the section has no enum fields.
func (*Investigator) Sanitize() bool { return false }
