package service

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asaworks/asa-studio/base/pinning"
	"github.com/asaworks/asa-studio/relay/model"
	"github.com/asaworks/asa-studio/relay/service/config"
)

// fakeProvider answers both pinning endpoints with fixed hashes.
func fakeProvider(t *testing.T, failFile bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pinning/pinFileToIPFS":
			if failFile {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"error": "pin queue full"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmFile"})
		case "/pinning/pinJSONToIPFS":
			json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmMeta"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestService(t *testing.T, provider *httptest.Server, cors config.Cors) *Service {
	t.Helper()
	s, err := New(context.Background(), &config.Config{
		Api:     config.Api{Port: ":0"},
		Pinning: pinning.Config{BaseURL: provider.URL, JWT: "jwt"},
		Cors:    cors,
	})
	require.NoError(t, err)
	return s
}

func uploadRequest(t *testing.T, fields map[string]string, withFile bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withFile {
		fw, err := mw.CreateFormFile("file", "art.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("\x89PNG fake image bytes"))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pin-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPinImageOk(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, uploadRequest(t, map[string]string{"metaName": "Art #1"}, true))

	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, strings.HasPrefix(res["metadataUrl"], "ipfs://"))
}

func TestPinImageMissingFile(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, uploadRequest(t, map[string]string{"metaName": "Art"}, false))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res["error"])
}

func TestPinImageTooLarge(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s, err := New(context.Background(), &config.Config{
		Api:     config.Api{Port: ":0", MaxFileSize: 512},
		Pinning: pinning.Config{BaseURL: provider.URL, JWT: "jwt"},
	})
	require.NoError(t, err)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "art.png")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte{'a'}, 4096))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/pin-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Contains(t, res["error"], "size limit")
}

func TestPinImageUpstreamFailure(t *testing.T) {
	provider := fakeProvider(t, true)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, uploadRequest(t, nil, true))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Contains(t, res["error"], "pin queue full")
}

func TestPinImageBadPropertiesDefaultsToEmpty(t *testing.T) {
	var gotMeta map[string]interface{}
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pinning/pinFileToIPFS":
			json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmFile"})
		case "/pinning/pinJSONToIPFS":
			var body map[string]interface{}
			json.NewDecoder(r.Body).Decode(&body)
			gotMeta, _ = body["pinataContent"].(map[string]interface{})
			json.NewEncoder(w).Encode(map[string]string{"IpfsHash": "QmMeta"})
		}
	}))
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, uploadRequest(t, map[string]string{"properties": "{not json"}, true))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotMeta)
	props, ok := gotMeta["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Empty(t, props)
}

func TestPinImageWritesAuditRecord(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, uploadRequest(t, nil, true))
	require.Equal(t, http.StatusOK, w.Code)

	var records []model.PinRecord
	require.NoError(t, s.db.Find(&records).Error)
	require.Len(t, records, 1)
	require.Equal(t, "QmFile", records[0].FileCID)
	require.Equal(t, "QmMeta", records[0].MetadataCID)
	require.NotEmpty(t, records[0].RequestID)
}

func TestHealth(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{})

	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, true, res["ok"])
	require.NotNil(t, res["ts"])
}

func TestOriginPolicy(t *testing.T) {
	provider := fakeProvider(t, false)
	defer provider.Close()
	s := newTestService(t, provider, config.Cors{
		AllowedOrigins: []string{"https://studio.example.com"},
	})

	cases := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"no origin", "", true},
		{"localhost dev server", "http://localhost:5173", true},
		{"loopback", "http://127.0.0.1:3000", true},
		{"allow-listed", "https://studio.example.com", true},
		{"preview deployment", "https://pr-42-studio.vercel.app", true},
		{"preview apex is not a preview", "https://vercel.app", false},
		{"unknown origin", "https://evil.example.net", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			s.Router().ServeHTTP(w, req)

			if tc.allowed {
				require.Equal(t, http.StatusOK, w.Code)
				if tc.origin != "" {
					require.Equal(t, tc.origin, w.Header().Get("Access-Control-Allow-Origin"))
				}
			} else {
				require.Equal(t, http.StatusForbidden, w.Code)
				var res map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
				require.Contains(t, res["error"], "origin not allowed")
			}
		})
	}
}
