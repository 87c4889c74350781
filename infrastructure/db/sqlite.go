package db

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/generator"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// SQLiteRepository implements generator.Repository
type SQLiteRepository struct {
	db *gorm.DB
}

// GenerationModel is the GORM model for the generation history
type GenerationModel struct {
	ID         uint   `gorm:"primaryKey"`
	TargetURL  string `gorm:"not null"`
	Filename   string `gorm:"index;not null"`
	BoxSize    int
	BorderSize int
	Bytes      int
	Downloads  uint `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

// GormLogger routes GORM logs through the application logger
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

// NewSQLiteRepository opens (and migrates) the history database
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
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
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

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
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db}, nil
}

// Record appends a generation to the history
func (r *SQLiteRepository) Record(ctx context.Context, g *generator.Generation) error {
	model := GenerationModel{
		TargetURL:  g.TargetURL,
		Filename:   g.Filename,
		BoxSize:    g.BoxSize,
		BorderSize: g.BorderSize,
		Bytes:      g.Bytes,
		Downloads:  g.Downloads,
		CreatedAt:  g.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		appLogger.CtxError(ctx, "Failed to insert generation", appLogger.LoggerInfo{
			ContextFunction: constant.CtxRecord,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataFilename: g.Filename,
			},
		})
		return err
	}

	g.ID = model.ID
	return nil
}

// IncrementDownloads bumps the counter of the latest generation written to filename
func (r *SQLiteRepository) IncrementDownloads(ctx context.Context, filename string) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE generation_models SET downloads = downloads + 1
		 WHERE id = (SELECT MAX(id) FROM generation_models WHERE filename = ?)`, filename)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to increment download count", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIncrementDownloads,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBIncrement,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		// files written before history was enabled have no row
		appLogger.CtxDebug(ctx, "No generation recorded for file", appLogger.LoggerInfo{
			ContextFunction: constant.CtxIncrementDownloads,
			Data: map[string]interface{}{
				constant.DataFilename: filename,
			},
		})
	}

	return nil
}

// DownloadCounts returns the summed download counters per filename
func (r *SQLiteRepository) DownloadCounts(ctx context.Context, filenames []string) (map[string]uint, error) {
	counts := make(map[string]uint, len(filenames))
	if len(filenames) == 0 {
		return counts, nil
	}

	var rows []struct {
		Filename  string
		Downloads uint
	}
	err := r.db.WithContext(ctx).
		Model(&GenerationModel{}).
		Select("filename, SUM(downloads) AS downloads").
		Where("filename IN ?", filenames).
		Group("filename").
		Scan(&rows).Error
	if err != nil {
		appLogger.CtxError(ctx, "Failed to load download counts", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDownloadCounts,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataCount: len(filenames),
			},
		})
		return nil, err
	}

	for _, row := range rows {
		counts[row.Filename] = row.Downloads
	}
	return counts, nil
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
