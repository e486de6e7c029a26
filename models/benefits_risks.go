package models

// Benefit kinds.
const (
	BenefitDirect   = "Direct"
	BenefitIndirect = "Indirect"
)

// BenefitsRisks is section 4 of the form. Benefit fields are optional but
// must be Direct or Indirect when set.
type BenefitsRisks struct {
	SectionRef `bson:",inline"`

	AnticipatedRisks   string `gorm:"column:anticipated_risks;type:text" bson:"anticipatedRisks" json:"anticipatedRisks,omitempty"`
	RiskManagement     string `gorm:"column:risk_management;type:text" bson:"riskManagement" json:"riskManagement,omitempty"`
	ParticipantBenefit string `gorm:"column:participant_benefit" bson:"participantBenefit" json:"participantBenefit,omitempty" validate:"omitempty,oneof=Direct Indirect"`
	SocietalBenefits   string `gorm:"column:societal_benefits" bson:"societalBenefits" json:"societalBenefits,omitempty" validate:"omitempty,oneof=Direct Indirect"`
	ScientificBenefits string `gorm:"column:scientific_benefits" bson:"scientificBenefits" json:"scientificBenefits,omitempty" validate:"omitempty,oneof=Direct Indirect"`
	// Key spelling matches what the form client submits.
	AdvertisementBenefits string `gorm:"column:advertisement_benefits;type:text" bson:"advertisementBenfits" json:"advertisementBenfits,omitempty"`
}

// TableName implements gorm's tablename interface.
func (BenefitsRisks) TableName() string {
	return "benefits_risks"
}

// Sanitize is a no-op: benefit kinds are validated, not defaulted.
func (*BenefitsRisks) Sanitize() bool { return false }
