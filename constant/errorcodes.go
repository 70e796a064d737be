package constant

// Domain service error codes
const (
	// Generator service - Validation errors (1xx)
	ErrCodeNilPayload   = "SVC001"
	ErrCodeEmptyContent = "SVC002"
	ErrCodeEmptyID      = "SVC003"

	// Generator service - Render errors (2xx)
	ErrCodeRenderFailure = "SVC201"

	// Generator service - Storage errors (3xx)
	ErrCodeStorageFailure = "SVC301"

	// Generator service - Retrieval errors (4xx)
	ErrCodeGenerationNotFound = "SVC401"
	ErrCodeHistoryFailure     = "SVC402"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Store operation errors (1xx)
	ErrCodeDBInsert = "DB101"
	ErrCodeDBPrune  = "DB102"

	// FindByID operation errors (2xx)
	ErrCodeDBLookup     = "DB201"
	ErrCodeDBScanRows   = "DB202"
	ErrCodeDBRowIterate = "DB203"

	// ListRecent operation errors (3xx)
	ErrCodeDBList = "DB301"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Render error codes
const (
	ErrCodeRenderSymbol    = "RND001"
	ErrCodeRenderLogo      = "RND002"
	ErrCodeRenderLogoLimit = "RND003"
	ErrCodeRenderColor     = "RND004"
	ErrCodeRenderEncodePNG = "RND005"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeRender     = "render"
	ErrTypeStorage    = "storage"
	ErrTypeRetrieval  = "retrieval"

	// Infrastructure error types
	ErrTypeDB = "db"
)
