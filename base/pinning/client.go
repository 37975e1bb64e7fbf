// Package pinning is the client for the content-addressed pinning provider.
// The provider's retry and availability behavior is its own concern; this
// client performs one attempt per call and reports failures as-is.
package pinning

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"
)

// URLPrefix is the content-addressing scheme every returned locator uses.
const URLPrefix = "ipfs://"

type Config struct {
	BaseURL string `toml:"base_url" mapstructure:"base_url" json:"base_url"`
	JWT     string `toml:"jwt" mapstructure:"jwt" json:"jwt"`
}

type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	return &Client{cfg: cfg, client: &http.Client{}}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
	Error    string `json:"error"`
}

// PinFile uploads r under name and returns the file's content address.
func (c *Client) PinFile(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", errors.Wrap(err, "failed on build upload form")
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", errors.Wrap(err, "failed on read upload payload")
	}
	if err := mw.Close(); err != nil {
		return "", errors.Wrap(err, "failed on finish upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/pinning/pinFileToIPFS", &body)
	if err != nil {
		return "", errors.Wrap(err, "failed on build pin request")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	return c.do(req)
}

// PinJSON pins v as a JSON document and returns its content address.
func (c *Client) PinJSON(ctx context.Context, v interface{}) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{"pinataContent": v})
	if err != nil {
		return "", errors.Wrap(err, "failed on encode metadata document")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/pinning/pinJSONToIPFS", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed on build pin request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.JWT)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (string, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed on reach pinning provider")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errors.Wrap(err, "failed on read pinning response")
	}

	var res pinResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", errors.Errorf("malformed pinning response (status %d): %s", resp.StatusCode, string(raw))
	}
	if resp.StatusCode != http.StatusOK {
		msg := res.Error
		if msg == "" {
			msg = string(raw)
		}
		return "", errors.Errorf("pinning provider status %d: %s", resp.StatusCode, msg)
	}
	if res.IpfsHash == "" {
		return "", errors.New("pinning provider returned no content hash")
	}
	return res.IpfsHash, nil
}
