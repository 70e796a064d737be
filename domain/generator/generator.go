package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/payload"
	"github.com/prasetyowira/qrgen/infrastructure/cache"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
	"github.com/prasetyowira/qrgen/infrastructure/render"
)

// Generation represents one rendered QR code kept in the recent history
type Generation struct {
	ID          string       `json:"id"`
	PayloadType payload.Type `json:"payload_type"`
	Content     string       `json:"content"`
	Size        int          `json:"size"`
	Level       string       `json:"level"`
	PNG         []byte       `json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Repository defines the interface for history persistence operations
type Repository interface {
	Store(ctx context.Context, gen *Generation) error
	FindByID(ctx context.Context, id string) (*Generation, error)
	ListRecent(ctx context.Context, limit int) ([]*Generation, error)
}

// Renderer defines the interface for producing PNG bytes from an encoded
// payload string
type Renderer interface {
	Render(content string, opts render.Options) ([]byte, error)
}

// Service represents the domain service for QR code generation
type Service struct {
	repo     Repository
	renderer Renderer
	cache    *cache.NamespaceLRU
}

// NewService creates a new generator service
func NewService(repo Repository, renderer Renderer, lru *cache.NamespaceLRU) *Service {
	ctx := logger.NewRequestContext()

	logger.CtxDebug(ctx, "Creating generator service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "generator",
		},
	})

	return &Service{
		repo:     repo,
		renderer: renderer,
		cache:    lru,
	}
}

// EncodePayload produces the literal text string embedded in the QR symbol
// for the given payload
func (s *Service) EncodePayload(ctx context.Context, p payload.Payload) (string, error) {
	if p == nil {
		logger.CtxWarn(ctx, "Payload cannot be nil", logger.LoggerInfo{
			ContextFunction: constant.CtxEncodePayload,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeNilPayload,
				Message: constant.ErrNilPayload,
				Type:    constant.ErrTypeValidation,
			},
		})
		return "", errors.New(constant.ErrNilPayload)
	}

	content := p.Encode()

	logger.CtxDebug(ctx, "Payload encoded", logger.LoggerInfo{
		ContextFunction: constant.CtxEncodePayload,
		Data: map[string]interface{}{
			constant.DataPayloadType: p.Type(),
			constant.DataContentLen:  len(content),
		},
	})

	return content, nil
}

// Generate encodes the payload, renders the PNG (through the render cache)
// and records the result in the history
func (s *Service) Generate(ctx context.Context, p payload.Payload, opts render.Options) (*Generation, error) {
	content, err := s.EncodePayload(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.CtxDebug(ctx, "Generating QR code", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataPayloadType: p.Type(),
			constant.DataQRSize:      opts.Size,
			constant.DataQRLevel:     opts.Level,
			constant.DataHasLogo:     len(opts.Logo) > 0,
		},
	})

	cacheKey := renderCacheKey(content, opts)
	png, cacheHit := s.cache.Get(constant.RenderNamespace, cacheKey)
	if !cacheHit {
		png, err = s.renderer.Render(content, opts)
		if err != nil {
			logger.CtxError(ctx, "Failed to render QR code", logger.LoggerInfo{
				ContextFunction: constant.CtxGenerate,
				Error: &logger.CustomError{
					Code:    constant.ErrCodeRenderFailure,
					Message: err.Error(),
					Type:    constant.ErrTypeRender,
				},
				Data: map[string]interface{}{
					constant.DataPayloadType: p.Type(),
				},
			})
			return nil, err
		}
		s.cache.Set(constant.RenderNamespace, cacheKey, png)
	}

	gen := &Generation{
		ID:          uuid.New().String(),
		PayloadType: p.Type(),
		Content:     content,
		Size:        opts.Size,
		Level:       string(opts.Level),
		PNG:         png,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Store(ctx, gen); err != nil {
		logger.CtxError(ctx, "Failed to store generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStorageFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: gen.ID,
				constant.DataPayloadType:  gen.PayloadType,
			},
		})
		return nil, err
	}

	logger.CtxInfo(ctx, "QR code generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataGenerationID: gen.ID,
			constant.DataPayloadType:  gen.PayloadType,
			constant.DataPNGSize:      len(gen.PNG),
			constant.DataCacheHit:     cacheHit,
		},
	})

	return gen, nil
}

// GetGeneration retrieves a stored generation by ID
func (s *Service) GetGeneration(ctx context.Context, id string) (*Generation, error) {
	if id == "" {
		logger.CtxWarn(ctx, "Generation ID cannot be empty", logger.LoggerInfo{
			ContextFunction: constant.CtxGetGeneration,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeEmptyID,
				Message: constant.ErrEmptyGenerationID,
				Type:    constant.ErrTypeValidation,
			},
		})
		return nil, errors.New(constant.ErrEmptyGenerationID)
	}

	gen, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to find generation", logger.LoggerInfo{
			ContextFunction: constant.CtxGetGeneration,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeGenerationNotFound,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: id,
			},
		})
		return nil, err
	}

	return gen, nil
}

// ListHistory returns up to limit recent generations, newest first
func (s *Service) ListHistory(ctx context.Context, limit int) ([]*Generation, error) {
	generations, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		logger.CtxError(ctx, "Failed to list history", logger.LoggerInfo{
			ContextFunction: constant.CtxListHistory,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeHistoryFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataLimit: limit,
			},
		})
		return nil, err
	}

	logger.CtxDebug(ctx, "History listed", logger.LoggerInfo{
		ContextFunction: constant.CtxListHistory,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
			constant.DataRows:  len(generations),
		},
	})

	return generations, nil
}

// renderCacheKey digests the encoded content and option set into a cache key
func renderCacheKey(content string, opts render.Options) string {
	sum := sha256.Sum256([]byte(content + "|" + opts.CacheKey()))
	return hex.EncodeToString(sum[:])
}
