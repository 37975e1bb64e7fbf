package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/xhttp"
	"github.com/asaworks/asa-studio/src/service/svc"
)

// The handler validates the mint form before any service work, so an empty
// ServerCtx is enough for the rejection paths.
func newMintRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/assets/mint-nft", MintNftHandler(&svc.ServerCtx{}))
	return r
}

func mintRequest(t *testing.T, fields map[string]string, fileSize int) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileSize > 0 {
		fw, err := mw.CreateFormFile("file", "art.png")
		require.NoError(t, err)
		_, err = fw.Write(bytes.Repeat([]byte{'a'}, fileSize))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assets/mint-nft", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) xhttp.Response {
	t.Helper()
	var res xhttp.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestMintNftRejectsBadManager(t *testing.T) {
	r := newMintRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, mintRequest(t, map[string]string{
		"name":    "Art #1",
		"manager": "not-an-address",
	}, 16))

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeErr(t, w)
	require.Equal(t, errcode.CodeInvalidParams, res.Code)
	require.Contains(t, res.Msg, "Manager")
}

func TestMintNftRequiresName(t *testing.T) {
	r := newMintRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, mintRequest(t, nil, 16))

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeErr(t, w)
	require.Equal(t, errcode.CodeInvalidParams, res.Code)
	require.Contains(t, res.Msg, "Name")
}

func TestMintNftMissingFile(t *testing.T) {
	r := newMintRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, mintRequest(t, map[string]string{"name": "Art"}, 0))

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeErr(t, w)
	require.Equal(t, errcode.CodeInvalidParams, res.Code)
	require.Equal(t, "a file is required", res.Msg)
}

func TestMintNftOversizedUpload(t *testing.T) {
	r := newMintRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, mintRequest(t, map[string]string{"name": "Art"}, maxUploadSize+4096))

	require.Equal(t, http.StatusBadRequest, w.Code)
	res := decodeErr(t, w)
	require.Equal(t, errcode.CodeInvalidParams, res.Code)
	require.Contains(t, res.Msg, "upload limit")
}
