package store_test

import (
	"context"
	"errors"
	"testing"

	"clinical-trials-api/models"
	"clinical-trials-api/store"
)

// runContract exercises behaviour every Store backend must share.
func runContract(t *testing.T, st store.Store) {
	ctx := context.Background()

	t.Run("applications are listed in creation order", func(t *testing.T) {
		before, err := st.ListApplications(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		first, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		second, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if first.ID == "" || first.ID == second.ID {
			t.Fatalf("expected distinct generated ids, got %q and %q", first.ID, second.ID)
		}
		if first.Status != models.StatusSubmitted {
			t.Fatalf("unexpected initial status %q", first.Status)
		}

		apps, err := st.ListApplications(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(apps) != len(before)+2 {
			t.Fatalf("expected %d applications, got %d", len(before)+2, len(apps))
		}
		if apps[len(apps)-2].ID != first.ID || apps[len(apps)-1].ID != second.ID {
			t.Fatalf("applications out of creation order")
		}
	})

	t.Run("unknown application", func(t *testing.T) {
		if _, err := st.GetApplication(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound from get, got %v", err)
		}
		if err := st.TouchApplication(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound from touch, got %v", err)
		}
	})

	t.Run("touch bumps updatedAt", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := st.TouchApplication(ctx, app.ID); err != nil {
			t.Fatalf("touch: %v", err)
		}
		got, err := st.GetApplication(ctx, app.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.UpdatedAt.Before(got.CreatedAt) {
			t.Fatalf("updatedAt %v before createdAt %v", got.UpdatedAt, got.CreatedAt)
		}
		if got.Status != models.StatusSubmitted {
			t.Fatalf("touch changed status to %q", got.Status)
		}
	})

	t.Run("insert and find section", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		in := &models.Investigator{
			SectionRef:    models.SectionRef{ApplicationID: app.ID},
			Name:          "Dr. Rao",
			Designation:   "Professor",
			Department:    "Pharmacology",
			Address:       "Block C",
			Contact:       "555-0101",
			Qualification: "MD",
		}
		if err := st.InsertSection(ctx, in); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if in.ID == "" {
			t.Fatalf("expected generated section id")
		}

		var out models.Investigator
		if err := st.FindSection(ctx, app.ID, &out); err != nil {
			t.Fatalf("find: %v", err)
		}
		if out.ID != in.ID || out.ApplicationID != app.ID || out.Name != "Dr. Rao" || out.Qualification != "MD" {
			t.Fatalf("unexpected section: %+v", out)
		}

		var missing models.Payment
		if err := st.FindSection(ctx, app.ID, &missing); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for absent section, got %v", err)
		}
	})

	t.Run("upsert creates then replaces", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		first := &models.Checklist{
			SectionRef: models.SectionRef{ApplicationID: app.ID},
			Items: []models.ChecklistItem{
				{Name: "Protocol", Status: models.AnswerYes, EnclosureNo: "1"},
				{Name: "Consent form", Status: models.AnswerNo, EnclosureNo: "2"},
			},
		}
		if err := st.UpsertSection(ctx, first, nil); err != nil {
			t.Fatalf("upsert insert: %v", err)
		}
		if first.ID == "" {
			t.Fatalf("expected id after upsert insert")
		}

		second := &models.Checklist{
			SectionRef: models.SectionRef{ApplicationID: app.ID},
			Items: []models.ChecklistItem{
				{Name: "Investigator CV", Status: models.AnswerNA, Remarks: "pending"},
			},
		}
		if err := st.UpsertSection(ctx, second, nil); err != nil {
			t.Fatalf("upsert replace: %v", err)
		}
		if second.ID != first.ID {
			t.Fatalf("replace changed id from %q to %q", first.ID, second.ID)
		}

		var out models.Checklist
		if err := st.FindSection(ctx, app.ID, &out); err != nil {
			t.Fatalf("find: %v", err)
		}
		if len(out.Items) != 1 || out.Items[0].Name != "Investigator CV" || out.Items[0].Remarks != "pending" {
			t.Fatalf("items not replaced wholesale: %+v", out.Items)
		}
	})

	t.Run("upsert with keys writes only those fields", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		full := &models.Participant{
			SectionRef:              models.SectionRef{ApplicationID: app.ID},
			ParticipantType:         models.ParticipantPatient,
			VulnerableJustification: "none",
			Safeguards:              "independent monitor",
			ReimbursementDetails:    "travel costs",
		}
		if err := st.InsertSection(ctx, full); err != nil {
			t.Fatalf("insert: %v", err)
		}

		partial := &models.Participant{
			SectionRef: models.SectionRef{ApplicationID: app.ID},
			Safeguards: "data safety board",
		}
		if err := st.UpsertSection(ctx, partial, []string{"safeguards", "reimbursementDetails"}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		if partial.ID != full.ID {
			t.Fatalf("partial upsert changed id from %q to %q", full.ID, partial.ID)
		}

		var out models.Participant
		if err := st.FindSection(ctx, app.ID, &out); err != nil {
			t.Fatalf("find: %v", err)
		}
		want := *full
		want.Safeguards = "data safety board"
		want.ReimbursementDetails = ""
		if out != want {
			t.Fatalf("unexpected participant:\n got %+v\nwant %+v", out, want)
		}

		// a key set that names no field leaves the section as it was
		if err := st.UpsertSection(ctx, &models.Participant{SectionRef: models.SectionRef{ApplicationID: app.ID}}, []string{}); err != nil {
			t.Fatalf("empty upsert: %v", err)
		}
		var again models.Participant
		if err := st.FindSection(ctx, app.ID, &again); err != nil {
			t.Fatalf("find: %v", err)
		}
		if again != want {
			t.Fatalf("empty upsert changed the section: %+v", again)
		}
	})

	t.Run("upsert with keys creates a missing section", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		section := &models.BenefitsRisks{
			SectionRef:       models.SectionRef{ApplicationID: app.ID},
			AnticipatedRisks: "mild nausea",
		}
		if err := st.UpsertSection(ctx, section, []string{"anticipatedRisks"}); err != nil {
			t.Fatalf("upsert: %v", err)
		}
		var out models.BenefitsRisks
		if err := st.FindSection(ctx, app.ID, &out); err != nil {
			t.Fatalf("find: %v", err)
		}
		if out.ID == "" || out.ID != section.ID || out.AnticipatedRisks != "mild nausea" {
			t.Fatalf("unexpected section: %+v", out)
		}
	})

	t.Run("delete removes sections and root", func(t *testing.T) {
		app, err := st.CreateApplication(ctx)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		pay := &models.Payment{
			SectionRef:          models.SectionRef{ApplicationID: app.ID},
			InjuryTreatment:     models.AnswerYes,
			SaeCompensation:     models.AnswerNA,
			RegulatoryApprovals: models.AnswerNo,
		}
		if err := st.InsertSection(ctx, pay); err != nil {
			t.Fatalf("insert: %v", err)
		}
		for _, kind := range models.EmptySections() {
			if err := st.DeleteSection(ctx, app.ID, kind); err != nil {
				t.Fatalf("delete %s: %v", kind.TableName(), err)
			}
		}
		if err := st.DeleteApplication(ctx, app.ID); err != nil {
			t.Fatalf("delete application: %v", err)
		}
		if _, err := st.GetApplication(ctx, app.ID); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected deleted application to be gone, got %v", err)
		}
		var out models.Payment
		if err := st.FindSection(ctx, app.ID, &out); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected deleted section to be gone, got %v", err)
		}
	})

	t.Run("ping", func(t *testing.T) {
		if err := st.Ping(ctx); err != nil {
			t.Fatalf("ping: %v", err)
		}
	})
}
