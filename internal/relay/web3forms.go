package relay

import (
	"context"
	"net/http"
	"time"

	"github.com/invirogens/website/internal/config"
	"github.com/invirogens/website/internal/schema"
)

// Web3Forms relays through api.web3forms.com when an access key is set.
type Web3Forms struct {
	client    *http.Client
	endpoint  string
	accessKey string
	to        string
}

func NewWeb3Forms(endpoint, accessKey, to string, timeout time.Duration) *Web3Forms {
	if endpoint == "" {
		endpoint = config.DefaultWeb3FormsEndpoint
	}
	return &Web3Forms{client: newHTTPClient(timeout), endpoint: endpoint, accessKey: accessKey, to: to}
}

type web3FormsPayload struct {
	AccessKey string `json:"access_key"`
	Subject   string `json:"subject"`
	FromName  string `json:"from_name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

func (w *Web3Forms) Name() string { return "web3forms" }

func (w *Web3Forms) Configured() bool { return w.accessKey != "" }

func (w *Web3Forms) Deliver(ctx context.Context, msg schema.InsertContact) error {
	return postJSON(ctx, w.client, w.Name(), w.endpoint, web3FormsPayload{
		AccessKey: w.accessKey,
		Subject:   subject(msg),
		FromName:  msg.Name,
		Email:     msg.Email,
		Company:   company(msg),
		Message:   msg.Message,
		ToEmail:   w.to,
	})
}
