package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asaworks/asa-studio/base/errcode"
)

// Response is the uniform JSON envelope for non-2xx results.
type Response struct {
	Code uint32      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// OkJson writes v as the 200 response body.
func OkJson(c *gin.Context, v interface{}) {
	c.JSON(http.StatusOK, v)
}

// Error maps an error to an HTTP status plus the coded envelope. Coded errors
// keep their business code; anything else becomes an internal error.
func Error(c *gin.Context, err error) {
	e, ok := errcode.IsErr(err)
	if !ok {
		e = errcode.NewErr(errcode.CodeInternal, err.Error())
	}
	c.JSON(httpStatus(e.Code()), Response{Code: e.Code(), Msg: e.Msg()})
}

func httpStatus(code uint32) int {
	switch code {
	case errcode.CodeInvalidParams, errcode.CodeAmountInvalid:
		return http.StatusBadRequest
	case errcode.CodeUnauthorized, errcode.CodeNoActiveWallet:
		return http.StatusUnauthorized
	case errcode.CodeNotFound:
		return http.StatusNotFound
	case errcode.CodeConnectTimeout:
		return http.StatusGatewayTimeout
	case errcode.CodeRelayUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
