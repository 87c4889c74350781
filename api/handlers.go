package api

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/prasetyowira/qrgen/api/view"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/infrastructure/flash"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Service is the part of generator.Service the handlers depend on
type Service interface {
	Generate(ctx context.Context, req generator.GenerationRequest) (*generator.Result, error)
	Download(ctx context.Context, filename string) (io.ReadSeekCloser, generator.ImageFile, error)
	Preview(ctx context.Context, filename string) (io.ReadSeekCloser, generator.ImageFile, error)
	Gallery(ctx context.Context, limit int) ([]generator.GalleryEntry, error)
}

// Handler contains service dependencies for web handlers
type Handler struct {
	service      Service
	views        *view.Renderer
	flash        *flash.Store
	galleryLimit int
}

// NewHandler creates a new web handler
func NewHandler(service Service, views *view.Renderer, notices *flash.Store, galleryLimit int) *Handler {
	if galleryLimit <= 0 {
		galleryLimit = constant.GalleryLimit
	}
	return &Handler{
		service:      service,
		views:        views,
		flash:        notices,
		galleryLimit: galleryLimit,
	}
}

// Index renders the generator form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	notice := h.flash.Pop(w, r)
	h.render(w, r, constant.CtxIndex, http.StatusOK, view.PageIndex, view.NewIndexPage(notice))
}

// Generate handles the form submission
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingGenerate, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
	})

	if err := r.ParseForm(); err != nil {
		appLogger.CtxWarn(ctx, "Error parsing form", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIParseForm,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(constant.NoticeEnterURL))
		return
	}

	req := generator.GenerationRequest{
		TargetURL:  r.PostForm.Get(constant.FieldURL),
		BoxSize:    formInt(r, constant.FieldSize, constant.DefaultBoxSize, 0),
		BorderSize: formInt(r, constant.FieldBorder, constant.DefaultBorder, -1),
	}

	result, err := h.service.Generate(ctx, req)
	if err != nil {
		if !generator.IsValidation(err) {
			appLogger.CtxError(ctx, "Error generating QR code", appLogger.LoggerInfo{
				ContextFunction: constant.CtxGenerate,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeAPIServiceError,
					Message: err.Error(),
					Type:    constant.ErrTypeAPI,
				},
				Data: map[string]interface{}{
					constant.DataURL: req.TargetURL,
				},
			})
		}
		h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(generateNotice(err)))
		return
	}

	notice := flash.Success(constant.NoticeGenerated)
	h.render(w, r, constant.CtxGenerate, http.StatusOK, view.PageResult, view.NewResultPage(result, &notice))
}

// Download streams a stored PNG as an attachment
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filename := chi.URLParam(r, "filename")

	appLogger.CtxDebug(ctx, constant.MsgHandlingDownload, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDownload,
		Data: map[string]interface{}{
			constant.DataFilename: filename,
		},
	})

	rc, file, err := h.service.Download(ctx, filename)
	if err != nil {
		if generator.IsNotFound(err) {
			h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(constant.NoticeFileNotFound))
			return
		}

		appLogger.CtxError(ctx, "Error opening file for download", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDownload,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(constant.NoticeDownloadFailed))
		return
	}
	defer rc.Close()

	w.Header().Set(constant.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{
		"filename": file.Filename,
	}))
	h.serveImage(w, r, constant.CtxDownload, rc, file)
}

// Thumbnail serves a stored PNG inline for the gallery
func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	rc, file, err := h.service.Preview(r.Context(), filename)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer rc.Close()

	h.serveImage(w, r, constant.CtxThumb, rc, file)
}

// Gallery lists the most recent codes
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingGallery, appLogger.LoggerInfo{
		ContextFunction: constant.CtxGallery,
	})

	entries, err := h.service.Gallery(ctx, h.galleryLimit)
	if err != nil {
		appLogger.CtxError(ctx, "Error loading gallery", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGallery,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})
		h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(constant.NoticeGalleryFailed))
		return
	}

	notice := h.flash.Pop(w, r)
	h.render(w, r, constant.CtxGallery, http.StatusOK, view.PageGallery, view.NewGalleryPage(entries, notice))
}

// Healthcheck reports liveness
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(constant.MsgHealthy))
}

// TooManyRequests is the rate limiter's rejection handler
func (h *Handler) TooManyRequests(w http.ResponseWriter, r *http.Request) {
	h.flash.Redirect(w, r, constant.RouteIndex, flash.Error(constant.NoticeTooManyRequests))
}

func (h *Handler) serveImage(w http.ResponseWriter, r *http.Request, fn string, rc io.ReadSeeker, file generator.ImageFile) {
	w.Header().Set(constant.HeaderContentType, constant.ContentTypePNG)
	http.ServeContent(w, r, file.Filename, file.CreatedAt, rc)

	appLogger.CtxDebug(r.Context(), "Served image", appLogger.LoggerInfo{
		ContextFunction: fn,
		Data: map[string]interface{}{
			constant.DataFilename: file.Filename,
			constant.DataSize:     file.Size,
		},
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, fn string, status int, page string, data interface{}) {
	if err := h.views.Render(w, status, page, data); err != nil {
		appLogger.CtxError(r.Context(), constant.MsgTemplateRenderFailed, appLogger.LoggerInfo{
			ContextFunction: fn,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIRender,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataTemplate: page,
			},
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// formInt reads an optional integer field. Missing or blank means def,
// anything unparsable means invalid so validation rejects it.
func formInt(r *http.Request, field string, def, invalid int) int {
	raw := strings.TrimSpace(r.PostForm.Get(field))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return invalid
	}
	return v
}

func generateNotice(err error) string {
	switch {
	case errors.Is(err, generator.ErrEmptyURL):
		return constant.NoticeEnterURL
	case errors.Is(err, generator.ErrInvalidSize):
		return constant.NoticeInvalidSize
	case errors.Is(err, generator.ErrInvalidBorder):
		return constant.NoticeInvalidBorder
	case errors.Is(err, generator.ErrEncodingCapacityExceeded):
		return constant.NoticeTooLong
	default:
		return constant.NoticeGenerateFailed
	}
}
