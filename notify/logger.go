package notify

import (
	"context"

	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
)

// Logger is the notifier used when no SMTP server is configured.
type Logger struct{}

func (Logger) Notify(_ context.Context, tenantID string, form model.Form, answers model.FormattedResponse) error {
	log.Infof("notify: tenant %s: new response to %q", tenantID, form.Name)
	for _, label := range orderedLabels(form.Schema, answers) {
		log.Debugf("notify:   %s: %s", label, answers[label])
	}
	return nil
}
