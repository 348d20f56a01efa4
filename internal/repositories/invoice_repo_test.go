package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"bima-invoice/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InvoiceRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    InvoiceRepository
	context context.Context
}

func (suite *InvoiceRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewInvoiceRepo(mock)
	suite.context = context.Background()
}

func (suite *InvoiceRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestInvoiceRepoTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepoTestSuite))
}

func sampleInvoice() *models.Invoice {
	now := time.Now().Truncate(time.Second)
	return &models.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: "INV-0001",
		Date:          now,
		DueDate:       now.AddDate(0, 0, 30),
		Client: models.Client{
			Name:    "Acme Ltd",
			Email:   "billing@acme.test",
			Phone:   "+254700000000",
			Address: "Nairobi",
		},
		LineItems: []models.LineItem{
			{ID: uuid.New().String(), Description: "Banner print", Quantity: 2, UnitPrice: 1000, Discount: 10, VATEnabled: true},
		},
		Notes:         "Thank you for your business!",
		Currency:      models.KSH,
		VATRate:       16,
		Subtotal:      1800,
		TotalVAT:      288,
		GrandTotal:    2088,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func invoiceRow(inv *models.Invoice) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "invoice_number", "date", "due_date", "client", "line_items",
		"notes", "currency", "vat_rate", "subtotal", "total_vat", "grand_total",
		"payment_status", "payment_date", "created_at", "updated_at",
	}).AddRow(
		inv.ID, inv.InvoiceNumber, inv.Date, inv.DueDate, inv.Client, inv.LineItems,
		inv.Notes, inv.Currency, inv.VATRate, inv.Subtotal, inv.TotalVAT, inv.GrandTotal,
		inv.PaymentStatus, inv.PaymentDate, inv.CreatedAt, inv.UpdatedAt,
	)
}

func (suite *InvoiceRepoTestSuite) TestPut_Insert() {
	inv := sampleInvoice()

	suite.mock.ExpectExec("INSERT INTO invoices").
		WithArgs(inv.ID, inv.InvoiceNumber, inv.Date, inv.DueDate, inv.Client,
			inv.LineItems, inv.Notes, inv.Currency, inv.VATRate, inv.Subtotal,
			inv.TotalVAT, inv.GrandTotal, inv.PaymentStatus, inv.PaymentDate,
			inv.CreatedAt, inv.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Put(suite.context, inv)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InvoiceRepoTestSuite) TestPut_StorageError() {
	inv := sampleInvoice()

	suite.mock.ExpectExec("INSERT INTO invoices").
		WithArgs(inv.ID, inv.InvoiceNumber, inv.Date, inv.DueDate, inv.Client,
			inv.LineItems, inv.Notes, inv.Currency, inv.VATRate, inv.Subtotal,
			inv.TotalVAT, inv.GrandTotal, inv.PaymentStatus, inv.PaymentDate,
			inv.CreatedAt, inv.UpdatedAt).
		WillReturnError(errors.New("connection refused"))

	err := suite.repo.Put(suite.context, inv)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "put invoice")
}

func (suite *InvoiceRepoTestSuite) TestGetByID_RoundTrip() {
	inv := sampleInvoice()

	suite.mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id =").
		WithArgs(inv.ID).
		WillReturnRows(invoiceRow(inv))

	got, err := suite.repo.GetByID(suite.context, inv.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), inv, got)
}

func (suite *InvoiceRepoTestSuite) TestGetByID_Missing() {
	id := uuid.New()

	suite.mock.ExpectQuery("SELECT (.+) FROM invoices WHERE id =").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := suite.repo.GetByID(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), got)
}

func (suite *InvoiceRepoTestSuite) TestGetAll() {
	a := sampleInvoice()
	b := sampleInvoice()
	b.InvoiceNumber = "INV-0002"

	rows := invoiceRow(a).AddRow(
		b.ID, b.InvoiceNumber, b.Date, b.DueDate, b.Client, b.LineItems,
		b.Notes, b.Currency, b.VATRate, b.Subtotal, b.TotalVAT, b.GrandTotal,
		b.PaymentStatus, b.PaymentDate, b.CreatedAt, b.UpdatedAt,
	)

	suite.mock.ExpectQuery("SELECT (.+) FROM invoices").
		WillReturnRows(rows)

	got, err := suite.repo.GetAll(suite.context)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 2)
	assert.Equal(suite.T(), a, got[0])
	assert.Equal(suite.T(), b, got[1])
}

func (suite *InvoiceRepoTestSuite) TestDelete() {
	id := uuid.New()

	suite.mock.ExpectExec("DELETE FROM invoices WHERE id =").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, id)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *InvoiceRepoTestSuite) TestGetByNumber() {
	inv := sampleInvoice()

	suite.mock.ExpectQuery("SELECT (.+) FROM invoices WHERE invoice_number =").
		WithArgs(inv.InvoiceNumber).
		WillReturnRows(invoiceRow(inv))

	got, err := suite.repo.GetByNumber(suite.context, inv.InvoiceNumber)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), inv, got[0])
}

func (suite *InvoiceRepoTestSuite) TestGetByDateRange() {
	inv := sampleInvoice()
	from := inv.Date.AddDate(0, -1, 0)
	to := inv.Date.AddDate(0, 1, 0)

	suite.mock.ExpectQuery("SELECT (.+) FROM invoices WHERE date BETWEEN").
		WithArgs(from, to).
		WillReturnRows(invoiceRow(inv))

	got, err := suite.repo.GetByDateRange(suite.context, from, to)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
}
