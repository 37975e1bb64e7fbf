package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/asaworks/asa-studio/base/logger/xzap"
	"github.com/asaworks/asa-studio/base/pinning"
	"github.com/asaworks/asa-studio/relay/model"
	"github.com/asaworks/asa-studio/relay/service/config"
)

const defaultMaxFileSize = 10 << 20

// Service is the relay server: one upload-and-pin endpoint, a health check,
// and a pin audit trail.
type Service struct {
	ctx         context.Context
	config      *config.Config
	router      *gin.Engine
	pinner      *pinning.Client
	db          *gorm.DB
	maxFileSize int64
}

func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	db, err := model.NewDB(cfg.DB.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed on open pin audit db")
	}

	s := &Service{
		ctx:         ctx,
		config:      cfg,
		pinner:      pinning.New(cfg.Pinning),
		db:          db,
		maxFileSize: cfg.Api.MaxFileSize,
	}
	if s.maxFileSize <= 0 {
		s.maxFileSize = defaultMaxFileSize
	}
	s.router = s.newRouter()
	return s, nil
}

func (s *Service) newRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(originMiddleware(s.config.Cors))

	r.GET("/health", s.healthHandler)
	r.POST("/api/pin-image", s.pinImageHandler)
	return r
}

// Router exposes the engine for tests.
func (s *Service) Router() *gin.Engine {
	return s.router
}

// Start serves until the service context is canceled.
func (s *Service) Start() error {
	srv := &http.Server{Addr: s.config.Api.Port, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "relay server stopped")
	case <-s.ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Service) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "ts": time.Now().Unix()})
}

// metadataDoc is the pinned metadata document referencing the pinned image.
type metadataDoc struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Image       string                 `json:"image"`
	ImageMime   string                 `json:"image_mimetype,omitempty"`
	Properties  map[string]interface{} `json:"properties"`
}

// pinImageHandler is the single relay operation: pin the uploaded file, pin
// a metadata document referencing it, return the metadata locator.
func (s *Service) pinImageHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxFileSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the upload size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	defer file.Close()

	// properties is a JSON-encoded object; anything unparseable collapses
	// to an empty object rather than failing the mint.
	properties := map[string]interface{}{}
	if raw := c.PostForm("properties"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &properties); err != nil {
			properties = map[string]interface{}{}
		}
	}
	metaName := c.PostForm("metaName")
	if metaName == "" {
		metaName = header.Filename
	}

	requestID := uuid.New().String()
	ctx := c.Request.Context()

	fileCID, err := s.pinner.PinFile(ctx, header.Filename, file)
	if err != nil {
		xzap.WithContext(ctx).Error("file pin failed",
			zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to pin file: " + err.Error()})
		return
	}

	doc := metadataDoc{
		Name:        metaName,
		Description: c.PostForm("metaDescription"),
		Image:       pinning.URLPrefix + fileCID,
		ImageMime:   header.Header.Get("Content-Type"),
		Properties:  properties,
	}
	metaCID, err := s.pinner.PinJSON(ctx, doc)
	if err != nil {
		xzap.WithContext(ctx).Error("metadata pin failed",
			zap.String("request_id", requestID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to pin metadata: " + err.Error()})
		return
	}

	record := model.PinRecord{
		RequestID:   requestID,
		FileName:    header.Filename,
		FileSize:    header.Size,
		FileCID:     fileCID,
		MetadataCID: metaCID,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		// The pin succeeded; a missing audit row is a log line, not a 500.
		xzap.WithContext(ctx).Error("failed on write pin record",
			zap.String("request_id", requestID), zap.Error(err))
	}

	xzap.WithContext(ctx).Info("pinned",
		zap.String("request_id", requestID),
		zap.String("file_cid", fileCID),
		zap.String("metadata_cid", metaCID))
	c.JSON(http.StatusOK, gin.H{"metadataUrl": pinning.URLPrefix + metaCID})
}
