package store_test

import (
	"context"
	"testing"

	"clinical-trials-api/models"
	"clinical-trials-api/store/storetest"
)

func TestGormStoreContract(t *testing.T) {
	runContract(t, storetest.NewSQLite(t))
}

func TestGormStoreUpsertKeepsOneRowPerApplication(t *testing.T) {
	st := storetest.NewSQLite(t)
	ctx := context.Background()

	app, err := st.CreateApplication(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, control := range []string{models.AnswerYes, models.AnswerNo, models.AnswerYes} {
		section := &models.Storage{
			SectionRef:        models.SectionRef{ApplicationID: app.ID},
			DocumentControl:   control,
			DrugDeviceControl: models.AnswerNo,
		}
		if err := st.UpsertSection(ctx, section, nil); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	var count int64
	if err := st.DB().Model(&models.Storage{}).Where("application_id = ?", app.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single storage row, got %d", count)
	}
}

func TestGormStoreFailsAfterClose(t *testing.T) {
	st := storetest.NewSQLite(t)
	ctx := context.Background()
	if err := st.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := st.CreateApplication(ctx); err == nil {
		t.Fatalf("expected error from closed store")
	}
	if err := st.Ping(ctx); err == nil {
		t.Fatalf("expected ping to fail on closed store")
	}
}
