package models

// Review types.
const (
	ReviewExpedited     = "Expedited Review"
	ReviewFullCommittee = "Full Committee Review"
)

// AdministrativeDetails is section 1 of the form.
type AdministrativeDetails struct {
	SectionRef `bson:",inline"`

	PrincipalInvestigatorName string `gorm:"column:principal_investigator_name" bson:"principalInvestigatorName" json:"principalInvestigatorName" validate:"required"`
	Department                string `gorm:"column:department" bson:"department" json:"department" validate:"required"`
	SubmissionDate            string `gorm:"column:submission_date" bson:"submissionDate" json:"submissionDate" validate:"required"`
	ReviewType                string `gorm:"column:review_type" bson:"reviewType" json:"reviewType" validate:"required,oneof='Expedited Review' 'Full Committee Review'"`
	StudyTitle                string `gorm:"column:study_title" bson:"studyTitle" json:"studyTitle" validate:"required"`
	ProtocolNumber            string `gorm:"column:protocol_number" bson:"protocolNumber" json:"protocolNumber" validate:"required"`
	VersionNumber             string `gorm:"column:version_number" bson:"versionNumber" json:"versionNumber" validate:"required"`
	ProtocolDate              string `gorm:"column:protocol_date" bson:"protocolDate" json:"protocolDate" validate:"required"`
}

// TableName implements gorm's tablename interface.
func (AdministrativeDetails) TableName() string {
	return "administrative_details"
}

// Sanitize is a no-op: the section has no defaulted enum fields.
func (*AdministrativeDetails) Sanitize() bool { return false }
