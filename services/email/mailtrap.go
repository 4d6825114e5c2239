package email

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	config "swipepoint/config"
	errors "swipepoint/errors"
)

// MailtrapClient sends transactional email through the Mailtrap HTTP
// API. Credentials come from configuration, never from source.
type MailtrapClient struct {
	conf   config.Mailtrap
	client *http.Client
}

type mailtrapPayload struct {
	From     personInfo   `json:"from"`
	To       []personInfo `json:"to"`
	Subject  string       `json:"subject"`
	HTML     string       `json:"html,omitempty"`
	Category string       `json:"category,omitempty"`
}

type personInfo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func NewMailtrapClient(conf config.Mailtrap) *MailtrapClient {
	return &MailtrapClient{
		conf:   conf,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *MailtrapClient) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.conf.APIURL == "" || m.conf.APIToken == "" {
		return errors.E(errors.Upstream, "mailtrap credentials not configured", nil)
	}

	payload := mailtrapPayload{
		From:     personInfo{Email: m.conf.FromEmail, Name: m.conf.FromName},
		To:       []personInfo{{Email: to}},
		Subject:  subject,
		HTML:     htmlBody,
		Category: m.conf.Category,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.conf.APIURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", m.conf.APIToken))
	req.Header.Add("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return errors.UpstreamErr("mailtrap", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return errors.UpstreamErr("mailtrap", fmt.Errorf("status %d", res.StatusCode))
	}
	return nil
}
