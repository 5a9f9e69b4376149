package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"duandigest/lib/telemetry"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("duandigest/mailer")

type Options struct {
	// defaults to smtp.<domain of the username>
	Server string
	// defaults to 465 with implicit TLS
	Port        int
	ImplicitTLS bool
	// defaults to the username, mail is sent to oneself
	Recipients  []string
	FromName    string
	Credentials CredentialSource
}

type Message struct {
	Subject    string
	Body       string
	Attachment string
}

// SendError wraps any failure to load credentials, build or send a message.
type SendError struct {
	Server string
	Err    error
}

func (e *SendError) Error() string {
	if e.Server == "" {
		return fmt.Sprintf("send mail: %v", e.Err)
	}
	return fmt.Sprintf("send mail via %s: %v", e.Server, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

type Mailer struct {
	opts Options
}

func NewMailer(opts Options) Mailer {
	return Mailer{opts: opts}
}

func serverFor(username string) (string, error) {
	at := strings.LastIndex(username, "@")
	if at < 0 || at == len(username)-1 {
		return "", fmt.Errorf("cannot derive an smtp server from %q", username)
	}
	return "smtp." + username[at+1:], nil
}

type route struct {
	host        string
	port        int
	implicitTLS bool
}

func (r route) addr() string {
	return fmt.Sprintf("%s:%d", r.host, r.port)
}

func (m Mailer) route(creds Credentials) (route, error) {
	r := route{host: m.opts.Server, port: m.opts.Port, implicitTLS: m.opts.ImplicitTLS}
	if r.host == "" {
		host, err := serverFor(creds.Username)
		if err != nil {
			return route{}, err
		}
		r.host = host
	}
	if r.port == 0 {
		r.port = 465
		r.implicitTLS = true
	}
	return r, nil
}

func (m Mailer) compose(creds Credentials, msg Message) (*email.Email, error) {
	mail := email.NewEmail()
	if m.opts.FromName != "" {
		mail.From = fmt.Sprintf("%s <%s>", m.opts.FromName, creds.Username)
	} else {
		mail.From = creds.Username
	}
	mail.To = m.opts.Recipients
	if len(mail.To) == 0 {
		mail.To = []string{creds.Username}
	}
	mail.Subject = msg.Subject
	mail.Text = []byte(msg.Body)

	if msg.Attachment != "" {
		_, err := mail.AttachFile(msg.Attachment)
		if err != nil {
			return nil, err
		}
	}
	return mail, nil
}

// Send reads credentials, builds the message and delivers it.
func (m Mailer) Send(ctx context.Context, msg Message) error {
	ctx, span := tracer.Start(ctx, "mailer:Send")
	defer span.End()

	fail := func(server string, err error, reason string) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return &SendError{Server: server, Err: err}
	}

	if m.opts.Credentials == nil {
		return fail("", fmt.Errorf("no credential source configured"), "no credentials")
	}
	creds, err := m.opts.Credentials()
	if err != nil {
		return fail("", err, "failed to load credentials")
	}
	r, err := m.route(creds)
	if err != nil {
		return fail("", err, "failed to resolve smtp server")
	}
	span.SetAttributes(attribute.String("smtp.addr", r.addr()))

	mail, err := m.compose(creds, msg)
	if err != nil {
		return fail(r.addr(), err, "failed to compose mail")
	}
	if err := ctx.Err(); err != nil {
		return fail(r.addr(), err, "context done before sending")
	}

	auth := smtp.PlainAuth("", creds.Username, creds.Password, r.host)
	if r.implicitTLS {
		err = mail.SendWithTLS(r.addr(), auth, &tls.Config{ServerName: r.host})
	} else {
		err = mail.Send(r.addr(), auth)
		if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = mail.Send(r.addr(), nil)
		}
	}
	if err != nil {
		return fail(r.addr(), err, "failed to send email")
	}
	return nil
}
