package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/nmwangi/dairyledger/internal/config"
	"github.com/nmwangi/dairyledger/internal/domain/models"
)

const rollupRange = "Rollups!A:J"

// Exporter appends computed period rollups to a Google Sheet so the manager
// can share reports outside the system. Export is a sink only; nothing is
// ever read back.
type Exporter interface {
	AppendRollups(ctx context.Context, rollups []models.PeriodRollup) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRollups appends one row per rollup to the export sheet.
func (e *GoogleSheetExporter) AppendRollups(ctx context.Context, rollups []models.PeriodRollup) error {
	if len(rollups) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(rollups))
	for _, r := range rollups {
		values = append(values, []interface{}{
			r.PeriodStart.Format(models.DateLayout),
			string(r.Granularity),
			r.MilkVolume,
			r.Revenue,
			r.FeedCost,
			r.HealthCost,
			r.AICost,
			r.SalaryCost,
			r.TotalCost,
			r.Profit,
		})
	}

	payload := &sheetsapi.ValueRange{Values: values}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, rollupRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rollups into range %s: %w", rollupRange, err)
	}

	e.logger.Debug("rollups appended to sheet", zap.Int("rows", len(values)))
	return nil
}
