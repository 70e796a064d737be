package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	"github.com/prasetyowira/qrgen/domain/payload"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteRepository implements generator.Repository. The recent-history list
// is bounded: every insert prunes rows beyond the configured cap, oldest
// first. With the default in-memory DSN nothing outlives the process.
type SQLiteRepository struct {
	db         *gorm.DB
	historyCap int
}

// GenerationModel is the GORM model for a stored QR generation
type GenerationModel struct {
	ID          string `gorm:"primaryKey"`
	PayloadType string `gorm:"not null"`
	Content     string `gorm:"not null"`
	Size        int
	Level       string
	PNG         []byte `gorm:"not null"`
	CreatedAt   time.Time
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository creates a new SQLite-backed history repository.
// historyCap bounds the number of retained generations.
func NewSQLiteRepository(dsn string, historyCap int) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath:       dsn,
			constant.DataHistoryCap: historyCap,
		},
	})

	dbLogger := &GormLogger{}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dsn,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&GenerationModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dsn,
		},
	})

	return &SQLiteRepository{db: db, historyCap: historyCap}, nil
}

// Store persists a generation and prunes history beyond the cap
func (r *SQLiteRepository) Store(ctx context.Context, gen *generator.Generation) error {
	result := r.db.Exec(`INSERT INTO generation_models (id, payload_type, content, size, level, png, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gen.ID, string(gen.PayloadType), gen.Content, gen.Size, gen.Level, gen.PNG, gen.CreatedAt)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: gen.ID,
				constant.DataPayloadType:  gen.PayloadType,
			},
		})
		return result.Error
	}

	if r.historyCap > 0 {
		prune := r.db.Exec(`DELETE FROM generation_models WHERE id NOT IN (SELECT id FROM generation_models ORDER BY created_at DESC, rowid DESC LIMIT ?)`, r.historyCap)
		if prune.Error != nil {
			appLogger.CtxError(ctx, "Failed to prune history", appLogger.LoggerInfo{
				ContextFunction: constant.CtxStore,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeDBPrune,
					Message: prune.Error.Error(),
					Type:    constant.ErrTypeDB,
				},
				Data: map[string]interface{}{
					constant.DataHistoryCap: r.historyCap,
				},
			})
			return prune.Error
		}

		if prune.RowsAffected > 0 {
			appLogger.CtxDebug(ctx, "History pruned", appLogger.LoggerInfo{
				ContextFunction: constant.CtxStore,
				Data: map[string]interface{}{
					constant.DataRowsAffected: prune.RowsAffected,
					constant.DataHistoryCap:   r.historyCap,
				},
			})
		}
	}

	appLogger.CtxInfo(ctx, "Generation stored successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataGenerationID: gen.ID,
			constant.DataPayloadType:  gen.PayloadType,
		},
	})

	return nil
}

// FindByID retrieves a generation by its ID
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*generator.Generation, error) {
	var model GenerationModel

	appLogger.CtxDebug(ctx, "Looking up generation", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFindByID,
		Data: map[string]interface{}{
			constant.DataGenerationID: id,
		},
	})

	rows, err := r.db.Raw(`SELECT id, payload_type, content, size, level, png, created_at FROM generation_models WHERE id = ? LIMIT 1`, id).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: id,
			},
		})
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		appLogger.CtxInfo(ctx, "Generation not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Data: map[string]interface{}{
				constant.DataGenerationID: id,
			},
		})
		return nil, errors.New(constant.ErrGenerationNotFound)
	}

	if err := r.db.ScanRows(rows, &model); err != nil {
		appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBScanRows,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: id,
			},
		})
		return nil, err
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataGenerationID: id,
			},
		})
		return nil, err
	}

	return modelToDomain(&model), nil
}

// ListRecent returns up to limit generations, newest first
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]*generator.Generation, error) {
	appLogger.CtxDebug(ctx, "Listing recent generations", appLogger.LoggerInfo{
		ContextFunction: constant.CtxListRecent,
		Data: map[string]interface{}{
			constant.DataLimit: limit,
		},
	})

	rows, err := r.db.Raw(`SELECT id, payload_type, content, size, level, png, created_at FROM generation_models ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while listing generations", appLogger.LoggerInfo{
			ContextFunction: constant.CtxListRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBList,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}
	defer rows.Close()

	generations := []*generator.Generation{}
	for rows.Next() {
		var model GenerationModel
		if err := r.db.ScanRows(rows, &model); err != nil {
			appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
				ContextFunction: constant.CtxListRecent,
				Error: &appLogger.CustomError{
					Code:    constant.ErrCodeDBScanRows,
					Message: err.Error(),
					Type:    constant.ErrTypeDB,
				},
			})
			return nil, err
		}
		generations = append(generations, modelToDomain(&model))
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxListRecent,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxDebug(ctx, "Recent generations listed", appLogger.LoggerInfo{
		ContextFunction: constant.CtxListRecent,
		Data: map[string]interface{}{
			constant.DataRows: len(generations),
		},
	})

	return generations, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}

func modelToDomain(model *GenerationModel) *generator.Generation {
	return &generator.Generation{
		ID:          model.ID,
		PayloadType: payload.Type(model.PayloadType),
		Content:     model.Content,
		Size:        model.Size,
		Level:       model.Level,
		PNG:         model.PNG,
		CreatedAt:   model.CreatedAt,
	}
}
