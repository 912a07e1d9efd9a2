package email

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/nafsma/legis-tracker/app/config"
	"github.com/nafsma/legis-tracker/app/fedreg"
)

// Result describes the outcome of one delivery attempt. Delivery
// failures are reported to the caller, never treated as fatal.
type Result struct {
	Success    bool
	StatusCode int
	Message    string
}

// Client sends digests and alerts through SendGrid.
type Client struct {
	apiKey string
	cfg    config.EmailConfig
}

func NewClient(apiKey string, cfg config.EmailConfig) *Client {
	return &Client{apiKey: apiKey, cfg: cfg}
}

// SendDigest delivers the daily digest to all configured recipients as
// both plain text and HTML.
func (c *Client) SendDigest(digestMarkdown, date string) Result {
	subject := fmt.Sprintf("%s - %s", c.cfg.SubjectPrefix, date)
	return c.send(subject, digestMarkdown)
}

// SendCommentAlert delivers a standalone alert listing comment periods
// that close soon.
func (c *Client) SendCommentAlert(alerts []fedreg.Document, date string) Result {
	if len(alerts) == 0 {
		return Result{Success: true, Message: "no alerts to send"}
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("# Comment Periods Closing Soon - %s\n\n", date))
	for _, doc := range alerts {
		days, _ := doc.DaysUntilCommentClose()
		body.WriteString(fmt.Sprintf("- **%d days left** [%s](%s) (closes %s)\n",
			days, doc.Title, doc.HTMLURL, doc.CommentsCloseOn))
	}

	subject := fmt.Sprintf("%s Comment Period Alert - %s", c.cfg.SubjectPrefix, date)
	return c.send(subject, body.String())
}

func (c *Client) send(subject, markdown string) Result {
	if c.apiKey == "" {
		return Result{Message: "SENDGRID_API_KEY is not set"}
	}
	if len(c.cfg.Recipients) == 0 {
		return Result{Message: "no email recipients configured"}
	}

	message := c.buildMessage(subject, markdown)

	resp, err := sendgrid.NewSendClient(c.apiKey).Send(message)
	if err != nil {
		slog.Error("SendGrid delivery failed", "error", err)
		return Result{Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("SendGrid rejected message", "status", resp.StatusCode, "body", resp.Body)
		return Result{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("sendgrid returned status %d", resp.StatusCode),
		}
	}

	slog.Info("Email sent", "subject", subject, "recipients", len(c.cfg.Recipients), "status", resp.StatusCode)
	return Result{
		Success:    true,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("delivered to %d recipients", len(c.cfg.Recipients)),
	}
}

// buildMessage assembles the SendGrid v3 message with one
// personalization covering every recipient.
func (c *Client) buildMessage(subject, markdown string) *mail.SGMailV3 {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(c.cfg.FromName, c.cfg.FromAddress))
	message.Subject = subject

	personalization := mail.NewPersonalization()
	for _, recipient := range c.cfg.Recipients {
		personalization.AddTos(mail.NewEmail("", recipient))
	}
	message.AddPersonalizations(personalization)

	message.AddContent(
		mail.NewContent("text/plain", markdown),
		mail.NewContent("text/html", markdownToHTML(markdown)),
	)
	return message
}
