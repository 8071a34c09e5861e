package notify

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

type sentMessage struct {
	kind    string // mail, sms, whatsapp
	to      string
	subject string
	body    string
}

type mockGateway struct {
	m        sync.Mutex
	sent     []sentMessage
	mailErr  error
	smsErr   error
	whatsErr error
}

func (g *mockGateway) SendMail(to, subject, bodyHTML string) error {
	g.m.Lock()
	defer g.m.Unlock()
	if g.mailErr != nil {
		return g.mailErr
	}
	g.sent = append(g.sent, sentMessage{kind: "mail", to: to, subject: subject, body: bodyHTML})
	return nil
}

func (g *mockGateway) SendSMS(to, body string) error {
	g.m.Lock()
	defer g.m.Unlock()
	if g.smsErr != nil {
		return g.smsErr
	}
	g.sent = append(g.sent, sentMessage{kind: "sms", to: to, body: body})
	return nil
}

func (g *mockGateway) SendWhatsApp(to, body string) error {
	g.m.Lock()
	defer g.m.Unlock()
	if g.whatsErr != nil {
		return g.whatsErr
	}
	g.sent = append(g.sent, sentMessage{kind: "whatsapp", to: to, body: body})
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testOrder() domain.Order {
	return domain.Order{
		Items: []domain.OrderLine{
			{ID: 1, Name: "Laptop", Price: 1299.99},
			{ID: 2, Name: "Mouse", Price: 29.99},
		},
		Contact: domain.OrderContact{User: "bob", Email: "b@x.com", Phone: "+1555"},
	}
}

func TestOrderPlaced_SendsMailThenSMSThenWhatsApp(t *testing.T) {
	gw := &mockGateway{}
	sut := NewNotifier(gw, "ops@example.com", quietLogger())

	sut.OrderPlaced(testOrder())

	require.Len(t, gw.sent, 3)
	assert.Equal(t, "mail", gw.sent[0].kind)
	assert.Equal(t, "ops@example.com", gw.sent[0].to)
	assert.Equal(t, "sms", gw.sent[1].kind)
	assert.Equal(t, "+1555", gw.sent[1].to)
	assert.Equal(t, "whatsapp", gw.sent[2].kind)
	assert.Equal(t, "+1555", gw.sent[2].to)
}

func TestOrderPlaced_MailFailureShortCircuits(t *testing.T) {
	gw := &mockGateway{mailErr: fmt.Errorf("smtp down")}
	sut := NewNotifier(gw, "ops@example.com", quietLogger())

	sut.OrderPlaced(testOrder())

	assert.Empty(t, gw.sent, "sms and whatsapp must not go out when the mail send fails")
}

func TestOrderPlaced_SMSFailureSkipsWhatsAppOnly(t *testing.T) {
	gw := &mockGateway{smsErr: fmt.Errorf("twilio down")}
	sut := NewNotifier(gw, "ops@example.com", quietLogger())

	sut.OrderPlaced(testOrder())

	require.Len(t, gw.sent, 1)
	assert.Equal(t, "mail", gw.sent[0].kind)
}

func TestOrderPlaced_SummaryExcludesContact(t *testing.T) {
	gw := &mockGateway{}
	sut := NewNotifier(gw, "ops@example.com", quietLogger())

	sut.OrderPlaced(testOrder())

	require.Len(t, gw.sent, 3)
	mail := gw.sent[0]
	assert.Contains(t, mail.subject, "bob")
	assert.Contains(t, mail.body, "Laptop")
	assert.Contains(t, mail.body, "Mouse")
	assert.NotContains(t, mail.body, "+1555", "contact record is not an order line")

	whats := gw.sent[2]
	assert.Contains(t, whats.body, "Laptop")
	assert.Contains(t, whats.body, "b@x.com")
}

func TestUserRegistered_MailsOperator(t *testing.T) {
	gw := &mockGateway{}
	sut := NewNotifier(gw, "ops@example.com", quietLogger())

	err := sut.UserRegistered(&domain.User{Username: "alice@x.com", Name: "Alice"})
	require.NoError(t, err)

	require.Len(t, gw.sent, 1)
	assert.Equal(t, "ops@example.com", gw.sent[0].to)
	assert.Equal(t, "nuevo usuario registrado", gw.sent[0].subject)
	assert.Contains(t, gw.sent[0].body, "Alice")
	assert.Contains(t, gw.sent[0].body, "alice@x.com")
}

func TestOrderSummaryText_PreservesLineOrder(t *testing.T) {
	text := orderSummaryText(testOrder())
	require.NotEmpty(t, text)
	assert.Less(t, strings.Index(text, "Laptop"), strings.Index(text, "Mouse"))
}
