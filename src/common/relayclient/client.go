// Package relayclient calls the mint relay daemon. Relay failures are the
// off-chain leg of a mint and are reported with their own error code so the
// caller can tell them apart from chain failures.
package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/asaworks/asa-studio/base/errcode"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

type pinImageResponse struct {
	MetadataURL string `json:"metadataUrl"`
	Error       string `json:"error"`
}

// PinImage uploads the file plus metadata fields and returns the pinned
// metadata document's content-address URL.
func (c *Client) PinImage(ctx context.Context, fileName string, file io.Reader, metaName, metaDescription, properties string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, err.Error())
	}
	if _, err := io.Copy(fw, file); err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, err.Error())
	}
	if metaName != "" {
		_ = mw.WriteField("metaName", metaName)
	}
	if metaDescription != "" {
		_ = mw.WriteField("metaDescription", metaDescription)
	}
	if properties != "" {
		_ = mw.WriteField("properties", properties)
	}
	if err := mw.Close(); err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/pin-image", &body)
	if err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, err.Error())
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, "relay unreachable: "+err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, err.Error())
	}

	var res pinImageResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, "malformed relay response")
	}
	if resp.StatusCode != http.StatusOK {
		msg := res.Error
		if msg == "" {
			msg = string(raw)
		}
		return "", errcode.NewErr(errcode.CodeRelayUpstream, msg)
	}
	if res.MetadataURL == "" {
		return "", errcode.NewErr(errcode.CodeRelayUpstream, "relay returned no metadata url")
	}
	return res.MetadataURL, nil
}
