// Package store persists applications and their form sections.
package store

import (
	"context"
	"errors"

	"clinical-trials-api/models"
)

// ErrNotFound is returned when no application or section matches.
var ErrNotFound = errors.New("record not found")

// Store is the document-style persistence layer behind the application
// service. Sections are addressed by the id of the application they belong
// to; at most one of each type exists per application.
type Store interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	CreateApplication(ctx context.Context) (*models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	// TouchApplication bumps updatedAt, failing with ErrNotFound for an
	// unknown id.
	TouchApplication(ctx context.Context, id string) error
	DeleteApplication(ctx context.Context, id string) error

	// InsertSection writes section as a new record and assigns its id.
	InsertSection(ctx context.Context, section models.Section) error
	// UpsertSection writes the fields named by keys (wire keys, see
	// models.FormKeys) onto the section stored for section.Ref().ApplicationID,
	// creating it when none exists. Fields not named keep their stored value.
	// A nil keys writes every field.
	UpsertSection(ctx context.Context, section models.Section, keys []string) error
	// FindSection loads the section of dst's type into dst.
	FindSection(ctx context.Context, applicationID string, dst models.Section) error
	// DeleteSection removes the section of kind's type. Missing sections are
	// not an error.
	DeleteSection(ctx context.Context, applicationID string, kind models.Section) error
}
