package constant

// UnifiedResponse 统一响应
const (
	// DETAIL carries response data for queries and creates
	// e.g: c.Locals(DETAIL, value)
	DETAIL = "detail"

	// OPERATION marks a successful operation that returns no data
	// e.g: c.Locals(OPERATION, "")
	OPERATION = "operation"
)

// Request scoped locals
const (
	// CLAIMS holds the *jwt.AuthClaims of the authenticated caller
	CLAIMS = "claims"

	// DECISION holds the service.Decision produced by a committee guard
	DECISION = "decision"

	REQUEST_ID = "request_id"
)
