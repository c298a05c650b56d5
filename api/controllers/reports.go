package controllers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ristorapos/backoffice-backend/api/responses"
	"github.com/ristorapos/backoffice-backend/api/validators"
	"github.com/ristorapos/backoffice-backend/internal/reports"
	pkgerrors "github.com/ristorapos/backoffice-backend/pkg/errors"
	"github.com/ristorapos/backoffice-backend/pkg/logger"
)

const nameFilterMaxLen = 120

var exportHeader = []string{"product", "sold_count", "vat_rate_percent", "gross_total", "net_total", "gift_count", "waste_count"}

func parseSalesReportInput(r *http.Request) (reports.SalesReportInput, error) {
	businessID, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		return reports.SalesReportInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid business id")
	}
	start, err := validators.ParseQueryDate(r, "start")
	if err != nil {
		return reports.SalesReportInput{}, err
	}
	end, err := validators.ParseQueryDate(r, "end")
	if err != nil {
		return reports.SalesReportInput{}, err
	}
	sort, err := validators.ParseQuerySort(r, "sort")
	if err != nil {
		return reports.SalesReportInput{}, err
	}
	return reports.SalesReportInput{
		BusinessID: businessID,
		Start:      start,
		End:        end,
		Sort:       sort,
		NameFilter: validators.ParseQueryString(r, "q", nameFilterMaxLen),
	}, nil
}

// SalesReport serves the aggregated sales report for one business and range.
func SalesReport(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input, err := parseSalesReportInput(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := service.SalesReport(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SalesReportExport streams the same report as a CSV download.
func SalesReportExport(service reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		input, err := parseSalesReportInput(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := service.SalesExport(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filename := fmt.Sprintf("sales_%s_%s.csv", input.Start.Format("2006-01-02"), input.End.Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		writer := csv.NewWriter(w)
		if err := writer.Write(exportHeader); err != nil {
			logWriteFailure(ctx, logg, err)
			return
		}
		for _, row := range rows {
			record := []string{
				row.ProductName,
				fmt.Sprintf("%d", row.SoldCount),
				row.VATRatePercent.String(),
				row.GrossTotal.StringFixed(2),
				row.NetTotal.StringFixed(2),
				fmt.Sprintf("%d", row.GiftCount),
				fmt.Sprintf("%d", row.WasteCount),
			}
			if err := writer.Write(record); err != nil {
				logWriteFailure(ctx, logg, err)
				return
			}
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			logWriteFailure(ctx, logg, err)
		}
	}
}

func logWriteFailure(ctx context.Context, logg *logger.Logger, err error) {
	if logg != nil {
		logg.Error(ctx, "csv write failed", err)
	}
}
