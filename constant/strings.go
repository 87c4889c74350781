package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID          = "X-Request-ID"
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
)

// Content types
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePNG  = "image/png"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain   = "domain"
	CtxGenerate = "Generate"
	CtxOpen     = "Open"
	CtxGallery  = "Gallery"

	// Infrastructure context names
	CtxDB                 = "db"
	CtxRecord             = "Record"
	CtxIncrementDownloads = "IncrementDownloads"
	CtxDownloadCounts     = "DownloadCounts"
	CtxClose              = "Close"
	CtxSave               = "Save"
	CtxListRecent         = "ListRecent"
	CtxAPI                = "api"
	CtxFlash              = "flash"

	// General context names
	CtxRouter   = "Router"
	CtxMain     = "Main"
	CtxIndex    = "Index"
	CtxDownload = "Download"
	CtxThumb    = "Thumbnail"
)

// Data field keys
const (
	// Service data fields
	DataService  = "service"
	DataURL      = "url"
	DataFilename = "filename"
	DataBoxSize  = "box_size"
	DataBorder   = "border"
	DataBytes    = "bytes"
	DataCacheHit = "cache_hit"
	DataCount    = "count"
	DataLimit    = "limit"

	// Storage data fields
	DataDir = "dir"

	// Database data fields
	DataPath    = "path"
	DataElapsed = "elapsed"
	DataRows    = "rows"
	DataSQL     = "sql"
	DataData    = "data"

	// API data fields
	DataMethod      = "method"
	DataIP          = "ip"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataOutputDir   = "output_dir"
	DataEnvironment = "environment"
	DataTemplate    = "template"
)

// Error message constants
const (
	ErrEmptyURL        = "url cannot be empty"
	ErrInvalidSize     = "box size must be between 1 and 50"
	ErrInvalidBorder   = "border must be between 0 and 20"
	ErrPersistence     = "failed to persist QR code image"
	ErrFileNotFound    = "file not found"
	ErrInvalidFilename = "invalid filename"
)

// User facing notices
const (
	NoticeEnterURL        = "Please enter a valid URL!"
	NoticeInvalidSize     = "Box size must be a whole number between 1 and 50."
	NoticeInvalidBorder   = "Border must be a whole number between 0 and 20."
	NoticeTooLong         = "That URL is too long to fit in a QR code."
	NoticeGenerateFailed  = "Error generating QR code. Please try again."
	NoticeGenerated       = "QR code generated successfully!"
	NoticeFileNotFound    = "File not found!"
	NoticeDownloadFailed  = "Error downloading file."
	NoticeGalleryFailed   = "Error loading gallery."
	NoticeTooManyRequests = "Too many requests, please slow down."
)

// Notice levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Error codes
const (
	ErrCodeAPIParseForm      = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIRender         = "API003"
	ErrCodeAPIFlash          = "API005"
	ErrCodeAPIRateLimited    = "API006"
	ErrCodeAppConfig         = "APP001"
	ErrCodeAppDBInit         = "APP002"
	ErrCodeAppServerStart    = "APP003"
	ErrCodeAppServerShutdown = "APP004"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// Routes
const (
	RouteIndex       = "/"
	RouteGenerate    = "/generate"
	RouteDownload    = "/download/{filename}"
	RouteDownloadFmt = "/download/%s"
	RouteGallery     = "/gallery"
	RouteThumbnail   = "/qr/{filename}"
	RouteHealthcheck = "/health"
)

// Form fields
const (
	FieldURL    = "url"
	FieldSize   = "size"
	FieldBorder = "border"
)

// Generation defaults and limits
const (
	DefaultBoxSize = 10
	DefaultBorder  = 4
	MaxBoxSize     = 50
	MaxBorder      = 20
	GalleryLimit   = 20
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Message constants for application
const (
	MsgApplicationStarting  = "Application starting"
	MsgInvalidConfig        = "Invalid configuration"
	MsgInsecureSecret       = "Using placeholder secret key, set SECRET_KEY outside development"
	MsgFailedToInitDB       = "Failed to initialize history database"
	MsgServerStarting       = "Server starting"
	MsgServerFailedToStart  = "Server failed to start"
	MsgServerShuttingDown   = "Server shutting down"
	MsgServerShutdownError  = "Error during server shutdown"
	MsgServerStopped        = "Server stopped"
	MsgRequestReceived      = "Request received"
	MsgRequestCompleted     = "Request completed"
	MsgHandlingGenerate     = "Handling generate request"
	MsgHandlingDownload     = "Handling download request"
	MsgHandlingGallery      = "Handling gallery request"
	MsgSettingUpRoutes      = "Setting up routes"
	MsgHealthcheckRequest   = "Handling healthcheck request"
	MsgHealthy              = "Healthy"
	MsgRateLimited          = "Rate limit exceeded"
	MsgTemplateRenderFailed = "Failed to render template"
)

// Cache namespaces
const (
	PNGNamespace = "PNG"
)

// Flash cookie
const (
	FlashCookieName = "qrgen_flash"
)
