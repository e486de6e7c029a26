package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clinical-trials-api/models"
	"clinical-trials-api/observability"
	"clinical-trials-api/store"
	"clinical-trials-api/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrApplicationNotFound is returned when the target application does not exist.
var ErrApplicationNotFound = errors.New("application not found")

// listConcurrency bounds how many applications are assembled at once.
const listConcurrency = 8

var tracer = otel.Tracer("clinical-trials-api/services")

// FormPayload is the composite form body. Any section may be omitted.
type FormPayload struct {
	AdministrativeDetails  *models.AdministrativeDetails `json:"administrativeDetails"`
	Investigators          *models.Investigator          `json:"investigators"`
	Participants           *models.Participant           `json:"participants"`
	BenefitsRisks          *models.BenefitsRisks         `json:"benefitsRisks"`
	PaymentCompensation    *models.Payment               `json:"paymentCompensation"`
	StorageConfidentiality *models.Storage               `json:"storageConfidentiality"`
	Checklist              *models.Checklist             `json:"checklist"`

	// sent holds the keys each section carried in the request body.
	sent map[models.Section][]string
}

// UnmarshalJSON decodes the form and records which keys every section
// carried, so an update only overwrites the fields the client sent.
func (p *FormPayload) UnmarshalJSON(data []byte) error {
	type form FormPayload
	var decoded form
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = FormPayload(decoded)
	p.sent = make(map[models.Section][]string)
	for key, section := range p.byKey() {
		body, ok := raw[key]
		if !ok {
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		p.sent[section] = keys
	}
	return nil
}

// byKey maps the composite keys to the sections present in the payload.
func (p *FormPayload) byKey() map[string]models.Section {
	out := make(map[string]models.Section)
	if p.AdministrativeDetails != nil {
		out["administrativeDetails"] = p.AdministrativeDetails
	}
	if p.Investigators != nil {
		out["investigators"] = p.Investigators
	}
	if p.Participants != nil {
		out["participants"] = p.Participants
	}
	if p.BenefitsRisks != nil {
		out["benefitsRisks"] = p.BenefitsRisks
	}
	if p.PaymentCompensation != nil {
		out["paymentCompensation"] = p.PaymentCompensation
	}
	if p.StorageConfidentiality != nil {
		out["storageConfidentiality"] = p.StorageConfidentiality
	}
	if p.Checklist != nil {
		out["checklist"] = p.Checklist
	}
	return out
}

// updateKeys names the fields an update of section writes. Sections built in
// code rather than decoded from a body write their non-zero fields.
func (p *FormPayload) updateKeys(section models.Section) []string {
	sent, ok := p.sent[section]
	if !ok {
		sent = models.NonZeroKeys(section)
	}
	return models.UpdateKeys(section, sent)
}

// Sections returns the sections present in the payload, in form order. A
// checklist counts as present only when it carries an items array.
func (p *FormPayload) Sections() []models.Section {
	if p == nil {
		return nil
	}
	var out []models.Section
	if p.AdministrativeDetails != nil {
		out = append(out, p.AdministrativeDetails)
	}
	if p.Investigators != nil {
		out = append(out, p.Investigators)
	}
	if p.Participants != nil {
		out = append(out, p.Participants)
	}
	if p.BenefitsRisks != nil {
		out = append(out, p.BenefitsRisks)
	}
	if p.PaymentCompensation != nil {
		out = append(out, p.PaymentCompensation)
	}
	if p.StorageConfidentiality != nil {
		out = append(out, p.StorageConfidentiality)
	}
	if p.Checklist != nil && p.Checklist.Items != nil {
		out = append(out, p.Checklist)
	}
	return out
}

// ApplicationRecord is an application joined with its sections. Sections
// that were never submitted are nil.
type ApplicationRecord struct {
	Application            *models.Application           `json:"application"`
	AdministrativeDetails  *models.AdministrativeDetails `json:"administrativeDetails"`
	Investigators          *models.Investigator          `json:"investigators"`
	Participants           *models.Participant           `json:"participants"`
	BenefitsRisks          *models.BenefitsRisks         `json:"benefitsRisks"`
	PaymentCompensation    *models.Payment               `json:"paymentCompensation"`
	StorageConfidentiality *models.Storage               `json:"storageConfidentiality"`
	Checklist              *models.Checklist             `json:"checklist"`
}

// ApplicationService stores and assembles an application together with its
// seven form sections. Writes are not transactional: a failure part way
// through leaves earlier writes in place.
type ApplicationService struct {
	store store.Store
	log   *zap.Logger
}

// NewApplicationService creates a new service instance.
func NewApplicationService(st store.Store, log *zap.Logger) *ApplicationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationService{store: st, log: log.Named("applications")}
}

// Create stores a new application and inserts every section present in the
// payload. The application always starts in the Submitted status.
func (s *ApplicationService) Create(ctx context.Context, payload *FormPayload) (app *models.Application, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Create")
	defer func() { s.finish(span, "create", err) }()

	app, err = s.store.CreateApplication(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	span.SetAttributes(attribute.String("application.id", app.ID))

	for _, section := range payload.Sections() {
		s.prepare(section, app.ID)
		if err := utils.ValidateStruct(section); err != nil {
			return app, fmt.Errorf("%s validation failed: %w", section.TableName(), err)
		}
		if err := s.store.InsertSection(ctx, section); err != nil {
			return app, fmt.Errorf("failed to save %s: %w", section.TableName(), err)
		}
	}

	s.log.Info("application created",
		zap.String("application_id", app.ID),
		zap.Int("sections", len(payload.Sections())),
	)
	return app, nil
}

// List returns every application with its sections, in store order.
func (s *ApplicationService) List(ctx context.Context) (records []ApplicationRecord, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.List")
	defer func() { s.finish(span, "list", err) }()

	apps, err := s.store.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	records = make([]ApplicationRecord, len(apps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listConcurrency)
	for i := range apps {
		i := i
		g.Go(func() error {
			rec, err := s.assemble(gctx, &apps[i])
			if err != nil {
				return err
			}
			records[i] = *rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns one application with its sections.
func (s *ApplicationService) Get(ctx context.Context, id string) (rec *ApplicationRecord, err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Get", trace.WithAttributes(attribute.String("application.id", id)))
	defer func() { s.finish(span, "get", err) }()

	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return s.assemble(ctx, app)
}

// Update upserts every section present in the payload. Sections left out of
// the payload are not touched. Within a present section only the fields the
// client sent are overwritten; checklist items are replaced as a whole.
func (s *ApplicationService) Update(ctx context.Context, id string, payload *FormPayload) (err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Update", trace.WithAttributes(attribute.String("application.id", id)))
	defer func() { s.finish(span, "update", err) }()

	if err := s.store.TouchApplication(ctx, id); err != nil {
		return notFound(err)
	}

	for _, section := range payload.Sections() {
		s.prepare(section, id)
		if err := s.store.UpsertSection(ctx, section, payload.updateKeys(section)); err != nil {
			return fmt.Errorf("failed to update %s: %w", section.TableName(), err)
		}
	}

	s.log.Info("application updated",
		zap.String("application_id", id),
		zap.Int("sections", len(payload.Sections())),
	)
	return nil
}

// Delete removes the seven sections of an application and then the
// application itself.
func (s *ApplicationService) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracer.Start(ctx, "ApplicationService.Delete", trace.WithAttributes(attribute.String("application.id", id)))
	defer func() { s.finish(span, "delete", err) }()

	if _, err := s.store.GetApplication(ctx, id); err != nil {
		return notFound(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range models.EmptySections() {
		kind := kind
		g.Go(func() error {
			if err := s.store.DeleteSection(gctx, id, kind); err != nil {
				return fmt.Errorf("failed to delete %s: %w", kind.TableName(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.store.DeleteApplication(ctx, id); err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	s.log.Info("application deleted", zap.String("application_id", id))
	return nil
}

// prepare sanitizes enum fields and links the section to applicationID. Any
// id the client sent along is dropped; the store assigns ids.
func (s *ApplicationService) prepare(section models.Section, applicationID string) {
	if section.Sanitize() {
		observability.RecordEnumFallback(section.TableName())
		s.log.Debug("enum value replaced with default",
			zap.String("section", section.TableName()),
			zap.String("application_id", applicationID),
		)
	}
	ref := section.Ref()
	ref.ID = ""
	ref.ApplicationID = applicationID
}

// assemble loads the seven sections of app concurrently.
func (s *ApplicationService) assemble(ctx context.Context, app *models.Application) (*ApplicationRecord, error) {
	rec := &ApplicationRecord{Application: app}
	id := app.ID

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rec.AdministrativeDetails, err = findSection[models.AdministrativeDetails](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Investigators, err = findSection[models.Investigator](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Participants, err = findSection[models.Participant](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.BenefitsRisks, err = findSection[models.BenefitsRisks](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.PaymentCompensation, err = findSection[models.Payment](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.StorageConfidentiality, err = findSection[models.Storage](gctx, s.store, id)
		return err
	})
	g.Go(func() (err error) {
		rec.Checklist, err = findSection[models.Checklist](gctx, s.store, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *ApplicationService) finish(span trace.Span, operation string, err error) {
	switch {
	case err == nil:
		observability.RecordOperation(operation, "ok")
	case errors.Is(err, ErrApplicationNotFound):
		observability.RecordOperation(operation, "not_found")
	default:
		observability.RecordOperation(operation, "error")
		span.RecordError(err)
		s.log.Error("application operation failed", zap.String("operation", operation), zap.Error(err))
	}
	span.End()
}

type sectionPtr[T any] interface {
	*T
	models.Section
}

// findSection returns nil, nil when the application has no section of type T.
func findSection[T any, P sectionPtr[T]](ctx context.Context, st store.Store, applicationID string) (*T, error) {
	var v T
	dst := P(&v)
	if err := st.FindSection(ctx, applicationID, dst); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", dst.TableName(), err)
	}
	return &v, nil
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return err
}
