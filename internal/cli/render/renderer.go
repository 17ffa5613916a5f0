package render

import (
	"github.com/trebuchet-org/l2deploy/internal/domain/models"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

type Renderer[T any] interface {
	Render(result T) error
}

var (
	_ Renderer[*models.Report]             = (*ReportRenderer)(nil)
	_ Renderer[*usecase.AddressListResult] = (*AddressesRenderer)(nil)
	_ Renderer[*usecase.StatusResult]      = (*StatusRenderer)(nil)
	_ Renderer[*usecase.PlanView]          = (*PlanRenderer)(nil)
)
