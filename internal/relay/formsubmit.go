package relay

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/invirogens/website/internal/config"
	"github.com/invirogens/website/internal/schema"
)

// FormSubmit is the last resort channel and needs no credentials.
type FormSubmit struct {
	client   *http.Client
	endpoint string
	email    string
}

func NewFormSubmit(endpoint, email string, timeout time.Duration) *FormSubmit {
	if endpoint == "" {
		endpoint = config.DefaultFormSubmitEndpoint
	}
	return &FormSubmit{client: newHTTPClient(timeout), endpoint: strings.TrimRight(endpoint, "/"), email: email}
}

type formSubmitPayload struct {
	Subject string `json:"_subject"`
	Captcha string `json:"_captcha"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Topic   string `json:"subject"`
	Message string `json:"message"`
}

func (f *FormSubmit) Name() string { return "formsubmit" }

func (f *FormSubmit) Configured() bool { return f.email != "" }

func (f *FormSubmit) Deliver(ctx context.Context, msg schema.InsertContact) error {
	return postJSON(ctx, f.client, f.Name(), f.endpoint+"/"+url.PathEscape(f.email), formSubmitPayload{
		Subject: subject(msg),
		Captcha: "false",
		Name:    msg.Name,
		Email:   msg.Email,
		Company: company(msg),
		Topic:   msg.Subject,
		Message: msg.Message,
	})
}
