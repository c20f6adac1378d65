// internal/domain/support/service_test.go
package support

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/email"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendSupportConfirmationEmail(ctx context.Context, data email.SupportConfirmationData) error {
	return m.Called(ctx, data).Error(0)
}

func newTestService(t *testing.T) (*Service, *mockMailer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Ticket{}))

	mailer := &mockMailer{}
	return NewService(db, &config.Config{}, mailer), mailer, db
}

func ticketRequest() *CreateTicketRequest {
	return &CreateTicketRequest{
		Name:    "Ada",
		Email:   "Ada@Example.com",
		Subject: "Order never arrived",
		Message: "It has been two weeks.",
	}
}

func TestCreateTicket(t *testing.T) {
	svc, mailer, db := newTestService(t)

	mailer.On("SendSupportConfirmationEmail", mock.Anything, mock.MatchedBy(func(d email.SupportConfirmationData) bool {
		return d.TicketNumber != "" && d.Subject == "Order never arrived"
	})).Return(nil)

	ticket, err := svc.CreateTicket(context.Background(), "user-1", ticketRequest())

	require.NoError(t, err)
	assert.Regexp(t, `^TKT-\d{8}-[0-9A-F]{8}$`, ticket.TicketNumber)
	assert.Equal(t, "ada@example.com", ticket.Email)
	assert.Equal(t, TicketStatusOpen, ticket.Status)
	assert.Equal(t, "user-1", ticket.UserID)

	var stored Ticket
	require.NoError(t, db.Where("ticket_number = ?", ticket.TicketNumber).First(&stored).Error)
	assert.Equal(t, ticket.Message, stored.Message)

	mailer.AssertExpectations(t)
}

func TestCreateTicketEmailFailureSkipsPersist(t *testing.T) {
	svc, mailer, db := newTestService(t)

	mailer.On("SendSupportConfirmationEmail", mock.Anything, mock.Anything).
		Return(errors.New("smtp unavailable"))

	ticket, err := svc.CreateTicket(context.Background(), "", ticketRequest())

	require.Error(t, err)
	assert.Nil(t, ticket)

	var count int64
	require.NoError(t, db.Model(&Ticket{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateTicketPersistFailureReportsError(t *testing.T) {
	svc, mailer, db := newTestService(t)

	mailer.On("SendSupportConfirmationEmail", mock.Anything, mock.Anything).Return(nil)

	// Force the write to fail after the email went out; a duplicate
	// confirmation on retry is acceptable, a lost ticket is not.
	require.NoError(t, db.Migrator().DropTable(&Ticket{}))

	ticket, err := svc.CreateTicket(context.Background(), "", ticketRequest())

	require.Error(t, err)
	assert.Nil(t, ticket)
	assert.ErrorContains(t, err, "failed to save ticket")
}

func TestCreateTicketBlankMessage(t *testing.T) {
	svc, mailer, _ := newTestService(t)

	req := ticketRequest()
	req.Message = "   "

	_, err := svc.CreateTicket(context.Background(), "", req)

	require.Error(t, err)
	mailer.AssertNotCalled(t, "SendSupportConfirmationEmail", mock.Anything, mock.Anything)
}

func TestListUserTickets(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	mailer.On("SendSupportConfirmationEmail", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreateTicket(context.Background(), "user-1", ticketRequest())
	require.NoError(t, err)
	_, err = svc.CreateTicket(context.Background(), "user-2", ticketRequest())
	require.NoError(t, err)

	tickets, err := svc.ListUserTickets(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "user-1", tickets[0].UserID)
}
