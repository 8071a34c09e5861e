package notify

// Gateway is the outbound transport surface. One attempt per call, no
// retries; callers decide what a failure means.
type Gateway interface {
	SendMail(to, subject, bodyHTML string) error
	SendSMS(to, body string) error
	SendWhatsApp(to, body string) error
}
