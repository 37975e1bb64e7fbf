package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asaworks/asa-studio/base/errcode"
	"github.com/asaworks/asa-studio/base/kit/validator"
	"github.com/asaworks/asa-studio/base/xhttp"
	"github.com/asaworks/asa-studio/src/service/svc"
	service "github.com/asaworks/asa-studio/src/service/v1"
	types "github.com/asaworks/asa-studio/src/types/v1"
)

// maxUploadSize caps the NFT image upload.
const maxUploadSize = 10 << 20

// CreateAssetHandler creates a fungible asset from the form values.
func CreateAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.CreateAssetReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}

		res, err := service.CreateAsset(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// TransferAssetHandler submits a payment or asset transfer.
func TransferAssetHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.TransferReq{}
		if err := c.BindJSON(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}
		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}

		res, err := service.TransferAsset(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}

// MintNftHandler accepts the multipart mint form: a required image file plus
// name, unit_name, description, and properties fields.
func MintNftHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, "file exceeds the 10MB upload limit"))
				return
			}
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, "a file is required"))
			return
		}
		defer file.Close()

		params := service.MintNftParams{
			FileName:    header.Filename,
			File:        file,
			Name:        c.PostForm("name"),
			UnitName:    c.PostForm("unit_name"),
			Description: c.PostForm("description"),
			Properties:  c.PostForm("properties"),
			Manager:     c.PostForm("manager"),
		}
		if err := validator.Verify(&params); err != nil {
			xhttp.Error(c, errcode.NewErr(errcode.CodeInvalidParams, err.Error()))
			return
		}

		res, err := service.MintNft(c.Request.Context(), svcCtx, params)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, res)
	}
}
