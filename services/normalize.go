package services

import (
	"context"
	"fmt"

	"clinical-trials-api/models"

	"go.uber.org/zap"
)

// NormalizeEnums rewrites stored sections whose enum fields hold values
// outside their allow-list, e.g. rows written before sanitization existed.
// It returns the number of sections rewritten.
func (s *ApplicationService) NormalizeEnums(ctx context.Context) (int, error) {
	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for _, rec := range records {
		var sections []models.Section
		if rec.PaymentCompensation != nil {
			sections = append(sections, rec.PaymentCompensation)
		}
		if rec.StorageConfidentiality != nil {
			sections = append(sections, rec.StorageConfidentiality)
		}
		if rec.Checklist != nil {
			sections = append(sections, rec.Checklist)
		}

		for _, section := range sections {
			if !section.Sanitize() {
				continue
			}
			if err := s.store.UpsertSection(ctx, section, models.UpdateKeys(section, nil)); err != nil {
				return fixed, fmt.Errorf("failed to normalize %s for %s: %w", section.TableName(), rec.Application.ID, err)
			}
			fixed++
			s.log.Info("section normalized",
				zap.String("section", section.TableName()),
				zap.String("application_id", rec.Application.ID),
			)
		}
	}
	return fixed, nil
}
