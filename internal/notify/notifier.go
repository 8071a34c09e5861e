package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

// Notifier drives the checkout and signup side effects through a
// Gateway. Sends are sequential; the first transport failure inside
// OrderPlaced short-circuits the remaining sends, is logged, and is
// swallowed.
type Notifier struct {
	gateway  Gateway
	operator string
	log      *logrus.Logger
}

func NewNotifier(gateway Gateway, operatorEmail string, log *logrus.Logger) *Notifier {
	return &Notifier{
		gateway:  gateway,
		operator: operatorEmail,
		log:      log,
	}
}

// UserRegistered mails the operator about a fresh signup.
func (n *Notifier) UserRegistered(user *domain.User) error {
	body := fmt.Sprintf("nuevo usuario\nnombre:%s\nemail: %s", user.Name, user.Username)
	return n.gateway.SendMail(n.operator, "nuevo usuario registrado", body)
}

// OrderPlaced sends the order summary by email to the operator, then
// an SMS and a WhatsApp message to the buyer, in that order.
func (n *Notifier) OrderPlaced(order domain.Order) {
	if err := n.sendAll(order); err != nil {
		n.log.Errorf("order notification failed: %v", err)
	}
}

func (n *Notifier) sendAll(order domain.Order) error {
	contact := order.Contact

	subject := fmt.Sprintf("nuevo pedido de %s , email %s ", contact.User, contact.Email)
	mailBody := fmt.Sprintf("lista de pedido:<br> %s", orderSummaryHTML(order))
	if err := n.gateway.SendMail(n.operator, subject, mailBody); err != nil {
		return err
	}

	if err := n.gateway.SendSMS(contact.Phone, "pedido recibido y en estado de procesamiento"); err != nil {
		return err
	}

	waBody := fmt.Sprintf("nuevo pedido de %s , email %s\n%s", contact.User, contact.Email, orderSummaryText(order))
	if err := n.gateway.SendWhatsApp(contact.Phone, waBody); err != nil {
		return err
	}

	return nil
}
