package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// HTTPBroker talks to the hosted auth widget backend over HTTP.
type HTTPBroker struct {
	baseURL string
	client  *http.Client
}

func NewHTTPBroker(baseURL string) *HTTPBroker {
	return &HTTPBroker{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

type brokerLoginReq struct {
	ClientID string `json:"client_id"`
	Network  string `json:"network"`
	// Provider is empty for the general chooser, or a named identity
	// provider to bypass it.
	Provider string `json:"provider,omitempty"`
}

func (b *HTTPBroker) Login(ctx context.Context, clientID, network, provider string) (*LoginResult, error) {
	body, err := json.Marshal(brokerLoginReq{ClientID: clientID, Network: network, Provider: provider})
	if err != nil {
		return nil, errors.Wrap(err, "failed on encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/login", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed on build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed on broker login")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Errorf("broker login status %d: %s", resp.StatusCode, string(raw))
	}

	var res LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, errors.Wrap(err, "failed on decode login response")
	}
	return &res, nil
}

func (b *HTTPBroker) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/v1/logout", nil)
	if err != nil {
		return errors.Wrap(err, "failed on build logout request")
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed on broker logout")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("broker logout status %d", resp.StatusCode)
	}
	return nil
}
