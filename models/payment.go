package models

import "clinical-trials-api/utils"

// Answer values shared by the yes/no questions of the form.
const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
	AnswerNA  = "NA"
)

var (
	// YesNoNA is the allow-list for tri-state answers; NA is the default.
	YesNoNA = []string{AnswerYes, AnswerNo, AnswerNA}
	// YesNo is the allow-list for binary answers; No is the default.
	YesNo = []string{AnswerYes, AnswerNo}
)

// Payment is section 5 of the form (payment and compensation).
type Payment struct {
	SectionRef `bson:",inline"`

	InjuryTreatment     string `gorm:"column:injury_treatment;type:varchar(3);default:NA" bson:"injuryTreatment" json:"injuryTreatment"`
	SaeCompensation     string `gorm:"column:sae_compensation;type:varchar(3);default:NA" bson:"saeCompensation" json:"saeCompensation"`
	RegulatoryApprovals string `gorm:"column:regulatory_approvals;type:varchar(3);default:NA" bson:"regulatoryApprovals" json:"regulatoryApprovals"`
}

// TableName implements gorm's tablename interface.
func (Payment) TableName() string {
	return "payments"
}

// Sanitize resets answers outside Yes/No/NA to NA.
func (p *Payment) Sanitize() bool {
	changed := false
	for _, field := range []*string{&p.InjuryTreatment, &p.SaeCompensation, &p.RegulatoryApprovals} {
		changed = sanitizeField(field, YesNoNA, AnswerNA) || changed
	}
	return changed
}

func sanitizeField(field *string, allowed []string, fallback string) bool {
	v := utils.Sanitize(*field, allowed, fallback)
	if v == *field {
		return false
	}
	*field = v
	return true
}
