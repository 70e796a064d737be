package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxGenerate      = "Generate"
	CtxEncodePayload = "EncodePayload"
	CtxGetGeneration = "GetGeneration"
	CtxListHistory   = "ListHistory"

	// Infrastructure context names
	CtxDB         = "db"
	CtxStore      = "Store"
	CtxFindByID   = "FindByID"
	CtxListRecent = "ListRecent"
	CtxClose      = "Close"
	CtxRender     = "Render"
	CtxAPI        = "api"

	// General context names
	CtxRouter              = "Router"
	CtxMain                = "Main"
	CtxCreateQRCode        = "CreateQRCode"
	CtxDownloadQRCodeImage = "DownloadQRCodeImage"
	CtxGetHistory          = "GetHistory"
	CtxScanQRCode          = "ScanQRCode"
)

// Data field keys
const (
	// Service data fields
	DataService      = "service"
	DataGenerationID = "generation_id"
	DataPayloadType  = "payload_type"
	DataContentLen   = "content_length"
	DataCacheHit     = "cache_hit"
	DataHistoryCap   = "history_cap"
	DataLimit        = "limit"

	// Render data fields
	DataQRSize  = "qr_size"
	DataQRLevel = "qr_level"
	DataMargin  = "margin"
	DataHasLogo = "has_logo"
	DataPNGSize = "png_size"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrNilPayload         = "payload cannot be nil"
	ErrEmptyGenerationID  = "generation id cannot be empty"
	ErrGenerationNotFound = "generation not found"
	ErrLogoTooLarge       = "logo image exceeds size limit"
	ErrInvalidHexColor    = "invalid hex color"
	ErrScanNotImplemented = "QR scanning is not implemented"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIValidation     = "API002"
	ErrCodeAPIServiceError   = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteCreateQRCode  = "/api/qrcodes"
	RouteQRCodeHistory = "/api/qrcodes"
	RouteQRCodeImage   = "/api/qrcodes/{generationID}/image"
	RouteEncodePayload = "/api/payloads/encode"
	RouteScanQRCode    = "/api/scans"
	RouteHealthcheck   = "/health"
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

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgFailedToInitDB        = "Failed to initialize database"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgHandlingCreateRequest = "Handling QR code generation request"
	MsgHandlingEncodeRequest = "Handling payload encode request"
	MsgSettingUpRoutes       = "Setting up API routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
	MsgRequestCompleted      = "Request completed"
)

// Cache Namespace
const (
	RenderNamespace = "RENDER"
)
