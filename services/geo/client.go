package geo

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	errors "swipepoint/errors"
)

// Client proxies country/state/city lookups to the countriesnow.space
// API. Lookups are read-only; upstream failures surface as Upstream
// errors with no retries.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Countries(ctx context.Context) ([]string, error) {
	var out struct {
		Data []struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/countries/positions", nil, &out); err != nil {
		return nil, err
	}

	countries := make([]string, len(out.Data))
	for i, e := range out.Data {
		countries[i] = e.Name
	}
	return countries, nil
}

func (c *Client) States(ctx context.Context, country string) ([]string, error) {
	body := map[string]string{"country": country}
	var out struct {
		Data struct {
			States []struct {
				Name string `json:"name"`
			} `json:"states"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/countries/states", body, &out); err != nil {
		return nil, err
	}

	states := make([]string, len(out.Data.States))
	for i, s := range out.Data.States {
		states[i] = s.Name
	}
	return states, nil
}

func (c *Client) Cities(ctx context.Context, country, state string) ([]string, error) {
	body := map[string]string{"country": country, "state": state}
	var out struct {
		Data []string `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/countries/state/cities", body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewBuffer(data)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	req.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return errors.UpstreamErr("geo lookup", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return errors.UpstreamErr("geo lookup", fmt.Errorf("status %d", res.StatusCode))
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.UpstreamErr("geo lookup", err)
	}
	return nil
}
