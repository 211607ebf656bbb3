package cds

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a CPG template does not exist.
var ErrNotFound = errors.New("cpg template not found")

type TemplateRepository interface {
	Create(ctx context.Context, t *CPGTemplate) error
	GetByTemplateID(ctx context.Context, templateID string) (*CPGTemplate, error)
	List(ctx context.Context, diseaseGroup string) ([]*CPGTemplate, error)
	Count(ctx context.Context) (int, error)
}
