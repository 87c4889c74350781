package constant

// Domain service error codes
const (
	// Generator service - Validation errors (0xx)
	ErrCodeEmptyURL      = "SVC001"
	ErrCodeInvalidSize   = "SVC002"
	ErrCodeInvalidBorder = "SVC003"

	// Generator service - Encoding errors (1xx)
	ErrCodeEncode    = "SVC101"
	ErrCodeEncodePNG = "SVC102"
	ErrCodeCapacity  = "SVC103"

	// Generator service - Storage errors (2xx)
	ErrCodeStorageFailure = "SVC201"

	// Generator service - Retrieval errors (3xx)
	ErrCodeFileNotFound = "SVC301"
	ErrCodeListFailure  = "SVC302"

	// Generator service - History errors (4xx)
	ErrCodeRecordHistory     = "SVC401"
	ErrCodeIncrementDownload = "SVC402"
	ErrCodeLookupHistory     = "SVC403"
)

// Filesystem error codes
const (
	ErrCodeFSMkdir    = "FS001"
	ErrCodeFSCreate   = "FS002"
	ErrCodeFSWrite    = "FS003"
	ErrCodeFSReadDir  = "FS101"
	ErrCodeFSStat     = "FS102"
	ErrCodeFSOpen     = "FS201"
	ErrCodeFSFilename = "FS202"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Record operation errors (1xx)
	ErrCodeDBInsert = "DB101"

	// Lookup errors (2xx)
	ErrCodeDBLookup = "DB201"

	// IncrementDownloads operation errors (3xx)
	ErrCodeDBIncrement = "DB301"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeEncoding   = "encoding"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"
	ErrTypeHistory    = "history"

	// Infrastructure error types
	ErrTypeDB = "db"
	ErrTypeFS = "fs"
)
