package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/domain/payload"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/render"
)

// Handler contains service dependencies for API handlers
type Handler struct {
	service     *generator.Service
	validate    *validator.Validate
	defaultSize int
	historyCap  int
}

// URLPayloadRequest carries the field set for a URL payload
type URLPayloadRequest struct {
	URL string `json:"url" validate:"required"`
}

// WifiPayloadRequest carries the field set for a WiFi payload
type WifiPayloadRequest struct {
	SSID     string `json:"ssid" validate:"required"`
	Security string `json:"security" validate:"required,oneof=WPA WEP nopass"`
	Password string `json:"password"`
	Hidden   bool   `json:"hidden"`
}

// ContactPayloadRequest carries the field set for a contact card payload
type ContactPayloadRequest struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	Organization string `json:"organization"`
	URL          string `json:"url"`
}

// TextPayloadRequest carries the field set for a plain text payload
type TextPayloadRequest struct {
	Text string `json:"text" validate:"required"`
}

// EmailPayloadRequest carries the field set for an email payload
type EmailPayloadRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SmsPayloadRequest carries the field set for an SMS payload
type SmsPayloadRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message"`
}

// PayloadRequest is the tagged payload envelope: exactly the variant matching
// Type must be supplied
type PayloadRequest struct {
	Type    string                 `json:"type" validate:"required,oneof=url wifi contact text email sms"`
	URL     *URLPayloadRequest     `json:"url,omitempty"`
	Wifi    *WifiPayloadRequest    `json:"wifi,omitempty"`
	Contact *ContactPayloadRequest `json:"contact,omitempty"`
	Text    *TextPayloadRequest    `json:"text,omitempty"`
	Email   *EmailPayloadRequest   `json:"email,omitempty"`
	Sms     *SmsPayloadRequest     `json:"sms,omitempty"`
}

// RenderOptionsRequest carries the cosmetic rendering parameters
type RenderOptionsRequest struct {
	Size       int    `json:"size" validate:"omitempty,min=64,max=2048"`
	Level      string `json:"level" validate:"omitempty,oneof=L M Q H"`
	Foreground string `json:"foreground" validate:"omitempty,hexcolor"`
	Background string `json:"background" validate:"omitempty,hexcolor"`
	Margin     *int   `json:"margin" validate:"omitempty,min=0,max=16"`
	// Logo is a base64-encoded PNG or JPEG image
	Logo string `json:"logo,omitempty"`
}

// CreateQRCodeRequest is the request object for the generate endpoint
type CreateQRCodeRequest struct {
	PayloadRequest
	Options *RenderOptionsRequest `json:"options,omitempty"`
}

// QRCodeResponse is the response object for a generated QR code
type QRCodeResponse struct {
	ID          string `json:"id"`
	PayloadType string `json:"payload_type"`
	Content     string `json:"content"`
	Size        int    `json:"size"`
	Level       string `json:"level"`
	PNGBase64   string `json:"png_base64"`
	CreatedAt   string `json:"created_at"`
}

// HistoryItemResponse is one entry in the recent-history listing
type HistoryItemResponse struct {
	ID          string `json:"id"`
	PayloadType string `json:"payload_type"`
	Content     string `json:"content"`
	Size        int    `json:"size"`
	Level       string `json:"level"`
	CreatedAt   string `json:"created_at"`
}

// EncodePayloadResponse is the response for the encode-only endpoint
type EncodePayloadResponse struct {
	PayloadType string `json:"payload_type"`
	Content     string `json:"content"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// NewHandler creates a new API handler
func NewHandler(service *generator.Service, defaultSize, historyCap int) *Handler {
	return &Handler{
		service:     service,
		validate:    validator.New(),
		defaultSize: defaultSize,
		historyCap:  historyCap,
	}
}

// toPayload validates the envelope and builds the typed payload. The encoder
// itself never re-validates; this is the validation boundary.
func (h *Handler) toPayload(req PayloadRequest) (payload.Payload, error) {
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}

	switch payload.Type(req.Type) {
	case payload.TypeURL:
		if req.URL == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.URLFields{URL: req.URL.URL}, nil
	case payload.TypeWifi:
		if req.Wifi == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.WifiFields{
			SSID:     req.Wifi.SSID,
			Security: payload.WifiSecurity(req.Wifi.Security),
			Password: req.Wifi.Password,
			Hidden:   req.Wifi.Hidden,
		}, nil
	case payload.TypeContact:
		if req.Contact == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.ContactFields{
			FirstName:    req.Contact.FirstName,
			LastName:     req.Contact.LastName,
			Phone:        req.Contact.Phone,
			Email:        req.Contact.Email,
			Organization: req.Contact.Organization,
			URL:          req.Contact.URL,
		}, nil
	case payload.TypeText:
		if req.Text == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.TextFields{Text: req.Text.Text}, nil
	case payload.TypeEmail:
		if req.Email == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.EmailFields{
			Email:   req.Email.Email,
			Subject: req.Email.Subject,
			Body:    req.Email.Body,
		}, nil
	case payload.TypeSms:
		if req.Sms == nil {
			return nil, errFieldsMissing(req.Type)
		}
		return payload.SmsFields{
			Phone:   req.Sms.Phone,
			Message: req.Sms.Message,
		}, nil
	}

	return nil, errFieldsMissing(req.Type)
}

// toRenderOptions resolves the option request into renderer options with
// defaults applied
func (h *Handler) toRenderOptions(req *RenderOptionsRequest) (render.Options, error) {
	opts := render.Options{
		Size:   h.defaultSize,
		Level:  render.LevelMedium,
		Margin: render.DefaultMargin,
	}
	if req == nil {
		return opts, nil
	}

	if err := h.validate.Struct(req); err != nil {
		return opts, err
	}

	if req.Size != 0 {
		opts.Size = req.Size
	}
	if req.Level != "" {
		opts.Level = render.Level(req.Level)
	}
	opts.Foreground = req.Foreground
	opts.Background = req.Background
	if req.Margin != nil {
		opts.Margin = *req.Margin
	}
	if req.Logo != "" {
		logo, err := base64.StdEncoding.DecodeString(req.Logo)
		if err != nil {
			return opts, err
		}
		opts.Logo = logo
	}

	return opts, nil
}

// CreateQRCode handles QR code generation
func (h *Handler) CreateQRCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingCreateRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateQRCode,
	})

	var req CreateQRCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateQRCode,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	p, err := h.toPayload(req.PayloadRequest)
	if err != nil {
		h.writeValidationError(ctx, w, constant.CtxCreateQRCode, err)
		return
	}

	opts, err := h.toRenderOptions(req.Options)
	if err != nil {
		h.writeValidationError(ctx, w, constant.CtxCreateQRCode, err)
		return
	}

	gen, err := h.service.Generate(ctx, p, opts)
	if err != nil {
		appLogger.CtxError(ctx, "Error generating QR code", appLogger.LoggerInfo{
			ContextFunction: constant.CtxCreateQRCode,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataPayloadType: req.Type,
			},
		})

		WriteJSONError(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	appLogger.CtxInfo(ctx, "QR code created successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxCreateQRCode,
		Data: map[string]interface{}{
			constant.DataGenerationID: gen.ID,
			constant.DataPayloadType:  gen.PayloadType,
		},
	})

	WriteJSON(w, toQRCodeResponse(gen), http.StatusCreated)
}

// EncodePayload handles encode-only requests and returns the literal payload
// string without rendering
func (h *Handler) EncodePayload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appLogger.CtxDebug(ctx, constant.MsgHandlingEncodeRequest, appLogger.LoggerInfo{
		ContextFunction: constant.CtxEncodePayload,
	})

	var req PayloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		appLogger.CtxError(ctx, "Error decoding request body", appLogger.LoggerInfo{
			ContextFunction: constant.CtxEncodePayload,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIDecodeRequest,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	p, err := h.toPayload(req)
	if err != nil {
		h.writeValidationError(ctx, w, constant.CtxEncodePayload, err)
		return
	}

	content, err := h.service.EncodePayload(ctx, p)
	if err != nil {
		WriteJSONError(w, "Failed to encode payload", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, EncodePayloadResponse{
		PayloadType: string(p.Type()),
		Content:     content,
	}, http.StatusOK)
}

// GetHistory handles listing the recent generations
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := h.historyCap
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteJSONError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	generations, err := h.service.ListHistory(ctx, limit)
	if err != nil {
		appLogger.CtxError(ctx, "Error listing history", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGetHistory,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
		})

		WriteJSONError(w, "Error retrieving history", http.StatusInternalServerError)
		return
	}

	items := make([]HistoryItemResponse, 0, len(generations))
	for _, gen := range generations {
		items = append(items, HistoryItemResponse{
			ID:          gen.ID,
			PayloadType: string(gen.PayloadType),
			Content:     gen.Content,
			Size:        gen.Size,
			Level:       gen.Level,
			CreatedAt:   gen.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	WriteJSON(w, items, http.StatusOK)
}

// DownloadQRCodeImage serves a stored generation as a PNG attachment
func (h *Handler) DownloadQRCodeImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	generationID := chi.URLParam(r, "generationID")

	appLogger.CtxDebug(ctx, "Processing QR image download request", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDownloadQRCodeImage,
		Data: map[string]interface{}{
			constant.DataGenerationID: generationID,
		},
	})

	gen, err := h.service.GetGeneration(ctx, generationID)
	if err != nil {
		if err.Error() == constant.ErrGenerationNotFound {
			http.NotFound(w, r)
			return
		}

		appLogger.CtxError(ctx, "Error retrieving generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDownloadQRCodeImage,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeAPIServiceError,
				Message: err.Error(),
				Type:    constant.ErrTypeAPI,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: generationID,
			},
		})

		WriteJSONError(w, "Error retrieving QR code image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="qrcode-`+gen.ID+`.png"`)
	w.WriteHeader(http.StatusOK)
	w.Write(gen.PNG)
}

// ScanQRCode is a stub: camera-based scanning is not implemented
func (h *Handler) ScanQRCode(w http.ResponseWriter, r *http.Request) {
	appLogger.CtxDebug(r.Context(), "Rejecting scan request", appLogger.LoggerInfo{
		ContextFunction: constant.CtxScanQRCode,
	})

	WriteJSONError(w, constant.ErrScanNotImplemented, http.StatusNotImplemented)
}

// writeValidationError logs and reports a request validation failure
func (h *Handler) writeValidationError(ctx context.Context, w http.ResponseWriter, fn string, err error) {
	appLogger.CtxWarn(ctx, "Request validation failed", appLogger.LoggerInfo{
		ContextFunction: fn,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeAPIValidation,
			Message: err.Error(),
			Type:    constant.ErrTypeValidation,
		},
	})

	WriteJSONError(w, err.Error(), http.StatusBadRequest)
}

func toQRCodeResponse(gen *generator.Generation) QRCodeResponse {
	return QRCodeResponse{
		ID:          gen.ID,
		PayloadType: string(gen.PayloadType),
		Content:     gen.Content,
		Size:        gen.Size,
		Level:       gen.Level,
		PNGBase64:   base64.StdEncoding.EncodeToString(gen.PNG),
		CreatedAt:   gen.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// errFieldsMissing reports a type tag whose matching field set was not
// supplied
func errFieldsMissing(payloadType string) error {
	return &fieldsMissingError{payloadType: payloadType}
}

type fieldsMissingError struct {
	payloadType string
}

func (e *fieldsMissingError) Error() string {
	return "missing fields for payload type " + e.payloadType
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

// WriteJSONError writes a JSON error response
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{
		Error: message,
		Code:  statusCode,
	}, statusCode)
}
