package model

import "time"

type Form struct {
	ID       string `json:"id,omitempty"`
	TenantID string `json:"tenantId,omitempty"`
	Version  int    `json:"version,omitempty"`
	Name     string `json:"name"`
	Schema   Schema `json:"fields"`
}

type Submission struct {
	ID       string            `json:"id"`
	FormID   string            `json:"formId"`
	TenantID string            `json:"tenantId"`
	Time     time.Time         `json:"time"`
	Answers  FormattedResponse `json:"answers"`
}
