package notify

import (
	"context"
	"crypto/tls"
	"net/smtp"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/knadh/smtppool"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
)

type RecipientLookup interface {
	NotificationRecipients(ctx context.Context, tenantID string) ([]string, error)
}

// sender is the part of *smtppool.Pool the mailer uses.
type sender interface {
	Send(e smtppool.Email) error
}

// Mailer emails each tenant recipient when a response comes in. Sends are
// spread round-robin over one connection pool per configured server.
type Mailer struct {
	from       string
	pools      []sender
	conns      []*smtppool.Pool
	counter    atomic.Uint64
	recipients RecipientLookup
	sanitizer  *bluemonday.Policy
}

func NewMailer(cfg config.SMTP, recipients RecipientLookup) (*Mailer, error) {
	m := &Mailer{
		from:       cfg.From,
		recipients: recipients,
		sanitizer:  bluemonday.StrictPolicy(),
	}
	for _, server := range cfg.Servers {
		pool, err := connectToPool(server)
		if err != nil {
			log.Errorf("smtp.pool %s: %s", server.Host, err)
			continue
		}
		m.pools = append(m.pools, pool)
		m.conns = append(m.conns, pool)
	}
	if len(m.pools) < 1 {
		return nil, errors.New("no smtp server connection in the pool")
	}
	return m, nil
}

func connectToPool(server config.SMTPServer) (*smtppool.Pool, error) {
	var auth smtp.Auth
	if server.Username != "" || server.Password != "" {
		auth = smtp.PlainAuth("", server.Username, server.Password, server.Host)
	}
	connections := server.Connections
	if connections < 1 {
		connections = 1
	}
	timeout := time.Duration(server.SendTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	pool, err := smtppool.New(smtppool.Opt{
		Host:            server.Host,
		Port:            server.Port,
		MaxConns:        connections,
		IdleTimeout:     timeout,
		PoolWaitTimeout: timeout,
		Auth:            auth,
		TLSConfig: &tls.Config{
			InsecureSkipVerify: server.InsecureSkipVerify,
			ServerName:         server.Host,
		},
	})
	return pool, errors.Wrap(err, "smtp.connect "+server.Host+":"+strconv.Itoa(server.Port))
}

func (m *Mailer) Notify(ctx context.Context, tenantID string, form model.Form, answers model.FormattedResponse) error {
	to, err := m.recipients.NotificationRecipients(ctx, tenantID)
	if err != nil {
		return errors.Wrap(err, "notify.recipients")
	}
	if len(to) == 0 {
		return nil
	}

	msg, err := render(form, answers, m.sanitizer)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, rcpt := range to {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}
		err := m.next().Send(smtppool.Email{
			From:    m.from,
			To:      []string{rcpt},
			Subject: msg.Subject,
			HTML:    []byte(msg.HTML),
			Text:    []byte(msg.Text),
		})
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "send to %s", rcpt))
		}
	}
	return result.ErrorOrNil()
}

func (m *Mailer) next() sender {
	n := m.counter.Add(1)
	return m.pools[n%uint64(len(m.pools))]
}

func (m *Mailer) Close() {
	for _, p := range m.conns {
		p.Close()
	}
}
