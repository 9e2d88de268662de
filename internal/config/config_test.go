package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "MONGODB_URI", "MONGODB_DB_NAME", "MILK_PRICE_PER_LITRE",
		"REPORT_CRON_SCHEDULE", "TIMEZONE", "NOTIFY_WEBHOOK_URL",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_EXPORT_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "dairyledger", cfg.MongoDB.DBName)
	assert.Equal(t, 43.0, cfg.Pricing.MilkPricePerLitre)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.Equal(t, "Africa/Nairobi", cfg.Reporting.Timezone)
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("MILK_PRICE_PER_LITRE", "50.5")

	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50.5, cfg.Pricing.MilkPricePerLitre)
}

func TestLoad_RejectsBadPrice(t *testing.T) {
	clearEnv(t)
	t.Setenv("MILK_PRICE_PER_LITRE", "free")

	_, err := Load("testdata/nonexistent.env")
	assert.Error(t, err)
}

func TestValidate_SheetsMustBeConfiguredTogether(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("testdata/nonexistent.env")
	require.NoError(t, err)

	cfg.Sheets.SpreadsheetID = "sheet-id"
	assert.Error(t, cfg.Validate())

	cfg.Sheets.CredentialsPath = "/etc/creds.json"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.SheetsEnabled())
}
