package models

// Participant types.
const (
	ParticipantHealthyVolunteer = "Healthy volunteer"
	ParticipantPatient          = "Patient"
	ParticipantVulnerable       = "Vulnerable person"
	ParticipantOthers           = "Others"
)

// Participant is section 3 of the form.
type Participant struct {
	SectionRef `bson:",inline"`

	ParticipantType         string `gorm:"column:participant_type" bson:"participantType" json:"participantType" validate:"required,oneof='Healthy volunteer' Patient 'Vulnerable person' Others"`
	VulnerableJustification string `gorm:"column:vulnerable_justification;type:text" bson:"vulnerableJustification" json:"vulnerableJustification,omitempty"`
	Safeguards              string `gorm:"column:safeguards;type:text" bson:"safeguards" json:"safeguards,omitempty"`
	ReimbursementDetails    string `gorm:"column:reimbursement_details;type:text" bson:"reimbursementDetails" json:"reimbursementDetails,omitempty"`
}

// TableName implements gorm's tablename interface.
func (Participant) TableName() string {
	return "participants"
}

// Sanitize is a no-op: participantType is validated, not defaulted.
func (*Participant) Sanitize() bool { return false }
