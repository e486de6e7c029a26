package models

// Storage is section 6 of the form (storage and confidentiality).
type Storage struct {
	SectionRef `bson:",inline"`

	DocumentControl   string `gorm:"column:document_control;type:varchar(3);default:No" bson:"documentControl" json:"documentControl"`
	DrugDeviceControl string `gorm:"column:drug_device_control;type:varchar(3);default:No" bson:"drugDeviceControl" json:"drugDeviceControl"`
}

// TableName implements gorm's tablename interface.
func (Storage) TableName() string {
	return "storages"
}

// Sanitize resets answers outside Yes/No to No.
func (s *Storage) Sanitize() bool {
	changed := sanitizeField(&s.DocumentControl, YesNo, AnswerNo)
	return sanitizeField(&s.DrugDeviceControl, YesNo, AnswerNo) || changed
}
