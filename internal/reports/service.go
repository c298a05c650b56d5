// Package reports wires the pure report pipeline to the order-line store
// and the VAT catalog, and shapes the result for the API layer.
package reports

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/internal/report"
	"github.com/ristorapos/backoffice-backend/internal/vat"
	"github.com/ristorapos/backoffice-backend/pkg/db/models"
	"github.com/ristorapos/backoffice-backend/pkg/enums"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
	"github.com/ristorapos/backoffice-backend/pkg/metrics"
)

const salesReportLabel = "sales"

// LineReader supplies the raw order lines for one business and date range.
type LineReader interface {
	ListForRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]models.OrderLine, error)
}

// Service exposes the reporting operations behind the sales screens.
type Service interface {
	SalesReport(ctx context.Context, input SalesReportInput) (*SalesReport, error)
	SalesExport(ctx context.Context, input SalesReportInput) ([]report.ExportRow, error)
}

// SalesReportInput captures the caller-owned report parameters. The UI owns
// presentation state only; everything the pipeline needs arrives here.
type SalesReportInput struct {
	BusinessID uuid.UUID        `json:"business_id" validate:"required"`
	Start      time.Time        `json:"start" validate:"required"`
	End        time.Time        `json:"end" validate:"required,gtefield=Start"`
	Sort       enums.ReportSort `json:"sort" validate:"omitempty,oneof=count_desc name_asc"`
	NameFilter string           `json:"name_filter"`
}

// SalesReport is the finished report plus the range it covers.
type SalesReport struct {
	Start   time.Time                 `json:"start"`
	End     time.Time                 `json:"end"`
	Rows    []report.ProductAggregate `json:"rows"`
	Summary report.Summary            `json:"summary"`
}

type service struct {
	lines        LineReader
	rates        vat.Lookup
	metrics      *metrics.ReportMetrics
	logg         *logger.Logger
	maxRangeDays int
}

// NewService builds the reporting service with its collaborators. Metrics
// and logger are optional.
func NewService(lines LineReader, rates vat.Lookup, reportMetrics *metrics.ReportMetrics, logg *logger.Logger, maxRangeDays int) (Service, error) {
	if lines == nil {
		return nil, fmt.Errorf("line reader required")
	}
	if rates == nil {
		return nil, fmt.Errorf("vat lookup required")
	}
	if maxRangeDays <= 0 {
		maxRangeDays = 366
	}
	return &service{
		lines:        lines,
		rates:        rates,
		metrics:      reportMetrics,
		logg:         logg,
		maxRangeDays: maxRangeDays,
	}, nil
}

func (s *service) SalesReport(ctx context.Context, input SalesReportInput) (*SalesReport, error) {
	built, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	return &SalesReport{
		Start:   input.Start,
		End:     input.End,
		Rows:    built.Rows,
		Summary: built.Summary,
	}, nil
}

func (s *service) SalesExport(ctx context.Context, input SalesReportInput) ([]report.ExportRow, error) {
	built, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	return report.Export(*built), nil
}

func (s *service) build(ctx context.Context, input SalesReportInput) (*report.Report, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.lines.ListForRange(ctx, input.BusinessID, input.Start, input.End)
	if err != nil {
		s.metrics.IncFailure(salesReportLabel)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order lines")
	}

	built := report.Build(s.toReportLines(ctx, input.BusinessID, raw), report.Options{
		Sort:       input.Sort,
		NameFilter: input.NameFilter,
	})

	s.metrics.ObserveDuration(salesReportLabel, time.Since(start))
	s.metrics.IncSuccess(salesReportLabel)

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"line_count": len(raw),
			"row_count":  len(built.Rows),
		}), "sales report built")
	}
	return &built, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// validate runs the struct tags first, then the one cross-config check the
// tags cannot express: the range cap comes from ReportConfig, not the input.
func (s *service) validate(input SalesReportInput) error {
	if err := validate.Struct(input); err != nil {
		return formatValidationErrors(err)
	}
	if int(input.End.Sub(input.Start).Hours()/24) > s.maxRangeDays {
		return pkgerrors.New(pkgerrors.CodeValidation, "date range too large").
			WithDetails(map[string]any{"max_days": s.maxRangeDays})
	}
	return nil
}

func formatValidationErrors(err error) *pkgerrors.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gtefield":
		return fmt.Sprintf("must not be before %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	}
	return "is invalid"
}

// toReportLines converts store records into normalized pipeline input. A
// line without an embedded rate gets one from the catalog lookup; discount
// lines never need a rate.
func (s *service) toReportLines(ctx context.Context, businessID uuid.UUID, raw []models.OrderLine) []report.Line {
	lines := make([]report.Line, 0, len(raw))
	for _, rec := range raw {
		line := report.Line{
			TableID:         rec.TableID,
			ProductName:     rec.ProductName,
			IsDiscount:      rec.IsDiscount,
			UnitPrice:       rec.UnitPrice,
			Quantity:        rec.Quantity,
			ModifierAmounts: rec.ModifierAmounts,
			Status:          rec.Status,
		}
		if rec.PaymentID != nil {
			line.PaymentID = *rec.PaymentID
		}
		if rec.VATRatePercent != nil {
			line.VATRatePercent = rec.VATRatePercent
		} else if !rec.IsDiscount {
			rate := s.rates.RateFor(ctx, businessID, rec.ProductName)
			line.VATRatePercent = &rate
		}
		lines = append(lines, line)
	}
	return lines
}
