package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/service"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	Forms       service.FormService
	Submissions service.SubmissionService
}
