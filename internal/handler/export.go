// Package handler: export.go implements GET /trips/{tripID}/export.
// Returns a trip's daily entries as a flat table, oldest day first.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/handler/gen"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "date", "category", "currency", "expense", "notes",
}

// GetExport implements GET /trips/{tripID}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(ctx context.Context, req gen.GetExportRequestObject) (gen.GetExportResponseObject, error) {
	owner, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	format := gen.Json
	if req.Params.Format != nil {
		format = *req.Params.Format
	}
	if format != gen.Json && format != gen.Csv {
		return gen.GetExport422JSONResponse(requestBody(fmt.Sprintf("unsupported format %q", format))), nil
	}

	rows, err := s.export.Export(ctx, owner, req.TripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetExport404JSONResponse(notFoundBody("trip not found")), nil
		}
		return nil, err
	}

	if format == gen.Csv {
		return buildCSVResponse(req.TripID, rows), nil
	}
	return buildJSONResponse(rows), nil
}

// buildJSONResponse converts domain rows to the typed JSON response.
func buildJSONResponse(rows []domain.ExportRow) gen.GetExport200JSONResponse {
	out := make(gen.GetExport200JSONResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToGenRow(r))
	}
	return out
}

// buildCSVResponse encodes domain rows as CSV with a header line and wraps
// them in the streaming response type.
func buildCSVResponse(tripID uuid.UUID, rows []domain.ExportRow) gen.GetExport200TextcsvResponse {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()

	return gen.GetExport200TextcsvResponse{
		Body:          &buf,
		ContentLength: int64(buf.Len()),
		Headers: gen.GetExport200ResponseHeaders{
			ContentDisposition: fmt.Sprintf(`attachment; filename="trip-%s.csv"`, tripID),
		},
	}
}

// domainRowToGenRow maps a domain.ExportRow to the gen.ExportRow wire type.
// TripID is produced by the service from a parsed UUID, so it always parses.
func domainRowToGenRow(r domain.ExportRow) gen.ExportRow {
	tripID, _ := uuid.Parse(r.TripID)

	return gen.ExportRow{
		TripId:   tripID,
		TripName: r.TripName,
		Date:     openapi_types.Date{Time: r.Date},
		Category: string(r.Category),
		Currency: string(r.Currency),
		Expense:  r.Expense,
		Notes:    r.Notes,
	}
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Dates use the calendar form and amounts keep two decimals.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripName,
		r.Date.Format(openapi_types.DateFormat),
		string(r.Category),
		string(r.Currency),
		strconv.FormatFloat(r.Expense, 'f', 2, 64),
		r.Notes,
	}
}
