package http

import (
	"strconv"

	"github.com/pkg/errors"
)

// Status is a registered status code along with its canonical reason
// phrase. The set below is closed. A numeric code outside it does not
// convert (see [FromCode]).
type Status struct {
	Code         uint16
	ReasonPhrase string
}

// Informational 1xx
var (
	StatusContinue           = add(Status{100, "Continue"})
	StatusSwitchingProtocols = add(Status{101, "Switching Protocols"})
	StatusProcessing         = add(Status{102, "Processing"})
	StatusEarlyHints         = add(Status{103, "Early Hints"})
)

// Successful 2xx
var (
	StatusOK                   = add(Status{200, "OK"})
	StatusCreated              = add(Status{201, "Created"})
	StatusAccepted             = add(Status{202, "Accepted"})
	StatusNonAuthoritativeInfo = add(Status{203, "Non-Authoritative Information"})
	StatusNoContent            = add(Status{204, "No Content"})
	StatusResetContent         = add(Status{205, "Reset Content"})
	StatusPartialContent       = add(Status{206, "Partial Content"})
	StatusMultiStatus          = add(Status{207, "Multi-Status"})
	StatusAlreadyReported      = add(Status{208, "Already Reported"})
	StatusIMUsed               = add(Status{226, "IM Used"})
)

// Redirection 3xx
var (
	StatusMultipleChoices   = add(Status{300, "Multiple Choices"})
	StatusMovedPermanently  = add(Status{301, "Moved Permanently"})
	StatusFound             = add(Status{302, "Found"})
	StatusSeeOther          = add(Status{303, "See Other"})
	StatusNotModified       = add(Status{304, "Not Modified"})
	StatusUseProxy          = add(Status{305, "Use Proxy"})
	StatusTemporaryRedirect = add(Status{307, "Temporary Redirect"})
	StatusPermanentRedirect = add(Status{308, "Permanent Redirect"})
)

// Client Error 4xx
var (
	StatusBadRequest                  = add(Status{400, "Bad Request"})
	StatusUnauthorized                = add(Status{401, "Unauthorized"})
	StatusPaymentRequired             = add(Status{402, "Payment Required"})
	StatusForbidden                   = add(Status{403, "Forbidden"})
	StatusNotFound                    = add(Status{404, "Not Found"})
	StatusMethodNotAllowed            = add(Status{405, "Method Not Allowed"})
	StatusNotAcceptable               = add(Status{406, "Not Acceptable"})
	StatusProxyAuthRequired           = add(Status{407, "Proxy Authentication Required"})
	StatusRequestTimeout              = add(Status{408, "Request Timeout"})
	StatusConflict                    = add(Status{409, "Conflict"})
	StatusGone                        = add(Status{410, "Gone"})
	StatusLengthRequired              = add(Status{411, "Length Required"})
	StatusPreconditionFailed          = add(Status{412, "Precondition Failed"})
	StatusPayloadTooLarge             = add(Status{413, "Payload Too Large"})
	StatusURITooLong                  = add(Status{414, "URI Too Long"})
	StatusUnsupportedMediaType        = add(Status{415, "Unsupported Media Type"})
	StatusRangeNotSatisfiable         = add(Status{416, "Range Not Satisfiable"})
	StatusExpectationFailed           = add(Status{417, "Expectation Failed"})
	StatusMisdirectedRequest          = add(Status{421, "Misdirected Request"})
	StatusUnprocessableEntity         = add(Status{422, "Unprocessable Entity"})
	StatusLocked                      = add(Status{423, "Locked"})
	StatusFailedDependency            = add(Status{424, "Failed Dependency"})
	StatusTooEarly                    = add(Status{425, "Too Early"})
	StatusUpgradeRequired             = add(Status{426, "Upgrade Required"})
	StatusPreconditionRequired        = add(Status{428, "Precondition Required"})
	StatusTooManyRequests             = add(Status{429, "Too Many Requests"})
	StatusRequestHeaderFieldsTooLarge = add(Status{431, "Request Header Fields Too Large"})
	StatusUnavailableForLegalReasons  = add(Status{451, "Unavailable For Legal Reasons"})
)

// Server Error 5xx
var (
	StatusInternalServerError     = add(Status{500, "Internal Server Error"})
	StatusNotImplemented          = add(Status{501, "Not Implemented"})
	StatusBadGateway              = add(Status{502, "Bad Gateway"})
	StatusServiceUnavailable      = add(Status{503, "Service Unavailable"})
	StatusGatewayTimeout          = add(Status{504, "Gateway Timeout"})
	StatusHTTPVersionNotSupported = add(Status{505, "HTTP Version Not Supported"})
	StatusVariantAlsoNegotiates   = add(Status{506, "Variant Also Negotiates"})
	StatusInsufficientStorage     = add(Status{507, "Insufficient Storage"})
	StatusLoopDetected            = add(Status{508, "Loop Detected"})
	StatusNotExtended             = add(Status{510, "Not Extended"})
	StatusNetworkAuthRequired     = add(Status{511, "Network Authentication Required"})
)

var sm = make(map[uint16]Status)

func add(status Status) Status {
	sm[status.Code] = status
	return status
}

// FromCode converts a numeric code into a registered [Status]. There
// is no catch-all variant. Unknown codes are an error.
func FromCode(code uint16) (Status, error) {
	s, ok := sm[code]
	if !ok {
		return Status{}, errors.Errorf("unknown status code: %d", code)
	}

	return s, nil
}

// IsSuccess reports whether the status is in the 2xx class.
func (s Status) IsSuccess() bool { return 200 <= s.Code && s.Code < 300 }

func (s Status) String() string {
	return strconv.FormatUint(uint64(s.Code), 10) + " " + s.ReasonPhrase
}
