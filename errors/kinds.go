package errors

// Kind is one entry of the error taxonomy: a numeric code (usually an
// HTTP status), a stable machine-readable identifier, and a human message.
// Kinds are immutable values defined below; no new kinds are registered
// at runtime.
type Kind struct {
	Code    int
	MsgID   string
	Message string
}

// Client-internal kinds.
var (
	// KindUnexpected covers internal contract violations and anything the
	// classifier could not place elsewhere.
	KindUnexpected = Kind{500, "Err-79483", "Unexpected error"}
	// KindInvalidURL indicates the request URL could not be built.
	KindInvalidURL = Kind{400, "Err-27071", "Invalid url"}
	// KindClientBuilder indicates the transport client or request could not
	// be constructed.
	KindClientBuilder = Kind{500, "Err-05192", "Generic HTTP client error"}
	// KindInvalidContent indicates a request or response body problem.
	KindInvalidContent = Kind{400, "Err-45973", "The error is related to the request or response body"}
	// KindNetwork indicates a connect or timeout failure.
	KindNetwork = Kind{500, "Err-64752", "The error is related to connect"}
	// KindRequest indicates a generic request-level transport failure.
	KindRequest = Kind{500, "Err-37984", "The error is related to the request"}
)

// JSON kinds, used by the typed decoder layer.
var (
	KindJSONIO     = Kind{500, "JSON-11553", "IO Error"}
	KindJSONSyntax = Kind{400, "JSON-57633", "Syntax Error"}
	KindJSONData   = Kind{400, "JSON-15852", "Invalid JSON data"}
	KindJSONEOF    = Kind{500, "JSON-15853", "Reached the end of the input data"}
)

// HTTP status kinds. One distinct kind per standard 3xx/4xx/5xx status.
var (
	KindMultipleChoices               = Kind{300, "Err-11298", "Multiple Choices"}
	KindMovedPermanently              = Kind{301, "Err-23108", "Moved Permanently"}
	KindFound                         = Kind{302, "Err-07132", "Found"}
	KindSeeOther                      = Kind{303, "Err-16746", "See Other"}
	KindNotModified                   = Kind{304, "Err-21556", "Not Modified"}
	KindUseProxy                      = Kind{305, "Err-31839", "Use Proxy"}
	KindTemporaryRedirect             = Kind{307, "Err-25446", "Temporary Redirect"}
	KindPermanentRedirect             = Kind{308, "Err-12280", "Permanent Redirect"}
	KindBadRequest                    = Kind{400, "Err-26760", "Bad Request"}
	KindUnauthorized                  = Kind{401, "Err-08059", "Unauthorized"}
	KindPaymentRequired               = Kind{402, "Err-18076", "Payment Required"}
	KindForbidden                     = Kind{403, "Err-23134", "Forbidden"}
	KindNotFound                      = Kind{404, "Err-18430", "Not Found"}
	KindMethodNotAllowed              = Kind{405, "Err-23585", "Method Not Allowed"}
	KindNotAcceptable                 = Kind{406, "Err-04289", "Not Acceptable"}
	KindProxyAuthRequired             = Kind{407, "Err-17336", "Proxy Authentication Required"}
	KindRequestTimeout                = Kind{408, "Err-00565", "Request Timeout"}
	KindConflict                      = Kind{409, "Err-08442", "Conflict"}
	KindGone                          = Kind{410, "Err-19916", "Gone"}
	KindLengthRequired                = Kind{411, "Err-09400", "Length Required"}
	KindPreconditionFailed            = Kind{412, "Err-22509", "Precondition Failed"}
	KindPayloadTooLarge               = Kind{413, "Err-10591", "Payload Too Large"}
	KindURITooLong                    = Kind{414, "Err-01377", "URI Too Long"}
	KindUnsupportedMediaType          = Kind{415, "Err-12512", "Unsupported Media Type"}
	KindRangeNotSatisfiable           = Kind{416, "Err-21696", "Range Not Satisfiable"}
	KindExpectationFailed             = Kind{417, "Err-16872", "Expectation Failed"}
	KindTeapot                        = Kind{418, "Err-23719", "I'm a teapot"}
	KindMisdirectedRequest            = Kind{421, "Err-26981", "Misdirected Request"}
	KindUnprocessableEntity           = Kind{422, "Err-12568", "Unprocessable Entity"}
	KindLocked                        = Kind{423, "Err-32695", "Locked"}
	KindFailedDependency              = Kind{424, "Err-19693", "Failed Dependency"}
	KindUpgradeRequired               = Kind{426, "Err-22991", "Upgrade Required"}
	KindPreconditionRequired          = Kind{428, "Err-02452", "Precondition Required"}
	KindTooManyRequests               = Kind{429, "Err-12176", "Too Many Requests"}
	KindRequestHeaderFieldsTooLarge   = Kind{431, "Err-07756", "Request Header Fields Too Large"}
	KindUnavailableForLegalReasons    = Kind{451, "Err-12136", "Unavailable For Legal Reasons"}
	KindInternalServerError           = Kind{500, "Err-09069", "Internal Server Error"}
	KindNotImplemented                = Kind{501, "Err-03394", "Not Implemented"}
	KindBadGateway                    = Kind{502, "Err-19734", "Bad Gateway"}
	KindServiceUnavailable            = Kind{503, "Err-18979", "Service Unavailable"}
	KindGatewayTimeout                = Kind{504, "Err-17595", "Gateway Timeout"}
	KindHTTPVersionNotSupported       = Kind{505, "Err-01625", "HTTP Version Not Supported"}
	KindVariantAlsoNegotiates         = Kind{506, "Err-28382", "Variant Also Negotiates"}
	KindInsufficientStorage           = Kind{507, "Err-32132", "Insufficient Storage"}
	KindLoopDetected                  = Kind{508, "Err-30770", "Loop Detected"}
	KindNotExtended                   = Kind{510, "Err-19347", "Not Extended"}
	KindNetworkAuthenticationRequired = Kind{511, "Err-31948", "Network Authentication Required"}
)

var statusKinds = []Kind{
	KindMultipleChoices, KindMovedPermanently, KindFound, KindSeeOther,
	KindNotModified, KindUseProxy, KindTemporaryRedirect, KindPermanentRedirect,
	KindBadRequest, KindUnauthorized, KindPaymentRequired, KindForbidden,
	KindNotFound, KindMethodNotAllowed, KindNotAcceptable, KindProxyAuthRequired,
	KindRequestTimeout, KindConflict, KindGone, KindLengthRequired,
	KindPreconditionFailed, KindPayloadTooLarge, KindURITooLong,
	KindUnsupportedMediaType, KindRangeNotSatisfiable, KindExpectationFailed,
	KindTeapot, KindMisdirectedRequest, KindUnprocessableEntity, KindLocked,
	KindFailedDependency, KindUpgradeRequired, KindPreconditionRequired,
	KindTooManyRequests, KindRequestHeaderFieldsTooLarge,
	KindUnavailableForLegalReasons, KindInternalServerError, KindNotImplemented,
	KindBadGateway, KindServiceUnavailable, KindGatewayTimeout,
	KindHTTPVersionNotSupported, KindVariantAlsoNegotiates,
	KindInsufficientStorage, KindLoopDetected, KindNotExtended,
	KindNetworkAuthenticationRequired,
}

var (
	byStatus = make(map[int]Kind, len(statusKinds))
	byMsgID  = make(map[string]Kind)
)

func init() {
	for _, k := range statusKinds {
		byStatus[k.Code] = k
		byMsgID[k.MsgID] = k
	}
	for _, k := range []Kind{
		KindUnexpected, KindInvalidURL, KindClientBuilder, KindInvalidContent,
		KindNetwork, KindRequest,
		KindJSONIO, KindJSONSyntax, KindJSONData, KindJSONEOF,
	} {
		byMsgID[k.MsgID] = k
	}
}

// FromStatus returns the kind registered for an HTTP status code.
func FromStatus(status int) (Kind, bool) {
	k, ok := byStatus[status]
	return k, ok
}

// FromMsgID returns the kind registered for a stable identifier.
func FromMsgID(id string) (Kind, bool) {
	k, ok := byMsgID[id]
	return k, ok
}

// IsHTTPStatus reports whether the kind belongs to the HTTP status family.
// Status kinds are the only kinds the executor considers retryable.
func (k Kind) IsHTTPStatus() bool {
	reg, ok := byStatus[k.Code]
	return ok && reg.MsgID == k.MsgID
}
