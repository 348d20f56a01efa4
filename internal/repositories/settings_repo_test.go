package repositories

import (
	"context"
	"errors"
	"testing"

	"bima-invoice/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SettingsRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    SettingsRepository
	context context.Context
}

func (suite *SettingsRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewSettingsRepo(mock)
	suite.context = context.Background()
}

func (suite *SettingsRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSettingsRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsRepoTestSuite))
}

func settingsRow(s *models.AppSettings) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"vat_rate", "default_currency", "company_name", "company_address",
		"company_city", "company_country", "company_phone", "company_email",
		"invoice_notes", "bank_name", "bank_account", "mpesa_paybill",
		"mpesa_account", "logo_url",
	}).AddRow(
		s.VATRate, s.DefaultCurrency, s.CompanyName, s.CompanyAddress,
		s.CompanyCity, s.CompanyCountry, s.CompanyPhone, s.CompanyEmail,
		s.InvoiceNotes, s.BankName, s.BankAccount, s.MpesaPaybill,
		s.MpesaAccount, s.LogoURL,
	)
}

func (suite *SettingsRepoTestSuite) TestGet_LazySeedsDefaults() {
	defaults := models.DefaultSettings()

	suite.mock.ExpectQuery("SELECT (.+) FROM settings WHERE key =").
		WithArgs(models.SettingsKey).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec("INSERT INTO settings").
		WithArgs(models.SettingsKey, defaults.VATRate, defaults.DefaultCurrency,
			defaults.CompanyName, defaults.CompanyAddress, defaults.CompanyCity,
			defaults.CompanyCountry, defaults.CompanyPhone, defaults.CompanyEmail,
			defaults.InvoiceNotes, defaults.BankName, defaults.BankAccount,
			defaults.MpesaPaybill, defaults.MpesaAccount, defaults.LogoURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	got, err := suite.repo.Get(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), defaults, got)
	assert.Equal(suite.T(), float64(16), got.VATRate)
	assert.Equal(suite.T(), models.KSH, got.DefaultCurrency)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SettingsRepoTestSuite) TestGet_SecondReadDoesNotReseed() {
	stored := models.DefaultSettings()

	suite.mock.ExpectQuery("SELECT (.+) FROM settings WHERE key =").
		WithArgs(models.SettingsKey).
		WillReturnRows(settingsRow(stored))

	got, err := suite.repo.Get(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, got)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SettingsRepoTestSuite) TestGet_SeedFailureSurfaces() {
	suite.mock.ExpectQuery("SELECT (.+) FROM settings WHERE key =").
		WithArgs(models.SettingsKey).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectExec("INSERT INTO settings").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("quota exceeded"))

	got, err := suite.repo.Get(suite.context)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), got)
	assert.Contains(suite.T(), err.Error(), "seed default settings")
}

func (suite *SettingsRepoTestSuite) TestPut_AlwaysWritesFixedKey() {
	settings := models.DefaultSettings()
	settings.CompanyName = "Renamed Studio"

	suite.mock.ExpectExec("INSERT INTO settings").
		WithArgs(models.SettingsKey, settings.VATRate, settings.DefaultCurrency,
			settings.CompanyName, settings.CompanyAddress, settings.CompanyCity,
			settings.CompanyCountry, settings.CompanyPhone, settings.CompanyEmail,
			settings.InvoiceNotes, settings.BankName, settings.BankAccount,
			settings.MpesaPaybill, settings.MpesaAccount, settings.LogoURL).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Put(suite.context, settings)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
