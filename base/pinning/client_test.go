package pinning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPinFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		require.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "logo.png", header.Filename)

		json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmFileHash"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, JWT: "test-jwt"})
	cid, err := c.PinFile(context.Background(), "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "QmFileHash", cid)
}

func TestPinJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/pinning/pinJSONToIPFS", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "pinataContent")
		json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmMetaHash"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	cid, err := c.PinJSON(context.Background(), map[string]string{"name": "n"})
	require.NoError(t, err)
	require.Equal(t, "QmMetaHash", cid)
}

func TestPinUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "pin queue full"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.PinJSON(context.Background(), map[string]string{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "pin queue full")
}

func TestPinMissingHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.PinJSON(context.Background(), map[string]string{})
	require.Error(t, err)
}
