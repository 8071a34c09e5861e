package notify

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

const mailSender = "servidor de go"

// SMTPTwilioGateway sends mail over SMTP and SMS/WhatsApp through the
// Twilio REST API.
type SMTPTwilioGateway struct {
	dialer       *gomail.Dialer
	mailAccount  string
	twilio       *twilio.RestClient
	smsFrom      string
	whatsAppFrom string
}

type TransportConfig struct {
	SMTPHost     string
	SMTPPort     int
	MailAccount  string
	MailPassword string
	TwilioSID    string
	TwilioToken  string
	SMSFrom      string
	WhatsAppFrom string
}

func NewSMTPTwilioGateway(cfg TransportConfig) *SMTPTwilioGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioSID,
		Password: cfg.TwilioToken,
	})

	return &SMTPTwilioGateway{
		dialer:       gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.MailAccount, cfg.MailPassword),
		mailAccount:  cfg.MailAccount,
		twilio:       client,
		smsFrom:      cfg.SMSFrom,
		whatsAppFrom: cfg.WhatsAppFrom,
	}
}

func (g *SMTPTwilioGateway) SendMail(to, subject, bodyHTML string) error {
	if err := g.dialer.DialAndSend(g.buildMail(to, subject, bodyHTML)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func (g *SMTPTwilioGateway) buildMail(to, subject, bodyHTML string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", g.mailAccount, mailSender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", bodyHTML)
	return m
}

func (g *SMTPTwilioGateway) SendSMS(to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.smsFrom)
	params.SetBody(body)

	if _, err := g.twilio.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	return nil
}

func (g *SMTPTwilioGateway) SendWhatsApp(to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + g.whatsAppFrom)
	params.SetBody(body)

	if _, err := g.twilio.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send whatsapp: %w", err)
	}
	return nil
}
