package models

import "gorm.io/datatypes"

// ChecklistItem is one line of the enclosure checklist.
type ChecklistItem struct {
	Name        string `bson:"name" json:"name"`
	Status      string `bson:"status" json:"status"`
	EnclosureNo string `bson:"enclosureNo" json:"enclosureNo"`
	Remarks     string `bson:"remarks" json:"remarks"`
}

// Checklist is section 7 of the form. Items keep their submitted order and
// are always written as a whole.
type Checklist struct {
	SectionRef `bson:",inline"`

	Items datatypes.JSONSlice[ChecklistItem] `gorm:"column:items" bson:"items" json:"items"`
}

// TableName implements gorm's tablename interface.
func (Checklist) TableName() string {
	return "checklists"
}

// Sanitize resets item statuses outside Yes/No/NA to NA.
func (c *Checklist) Sanitize() bool {
	changed := false
	for i := range c.Items {
		changed = sanitizeField(&c.Items[i].Status, YesNoNA, AnswerNA) || changed
	}
	return changed
}
