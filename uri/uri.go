// Package uri parses the URI form accepted by the client:
// [scheme://]host[:port][/path], scheme being http or https.
//
// This is deliberately narrower than RFC 3986. Query and fragment are
// carried as part of the path, and the only escaping applied is the
// minimum the request line needs (see [URI.EncodedPath]).
package uri

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmpty           = errors.New("uri is empty")
	ErrInvalidProtocol = errors.New("protocol is not valid")
	ErrInvalidHostname = errors.New("hostname is not valid")
	ErrInvalidPort     = errors.New("port is not valid")
)

type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
)

// DefaultPort returns the port used when the authority carries none.
func (s Scheme) DefaultPort() uint16 {
	switch s {
	case SchemeHTTP:
		return 80
	case SchemeHTTPS:
		return 443
	}
	return 0
}

func parseScheme(raw string) (Scheme, error) {
	// The match is case-sensitive on purpose. "HTTP://" is rejected.
	switch raw {
	case "http":
		return SchemeHTTP, nil
	case "https":
		return SchemeHTTPS, nil
	}
	return "", ErrInvalidProtocol
}

// URI is parsed once from input text and immutable afterwards.
//
// Path never carries a leading slash. It is added back at request
// serialization time.
type URI struct {
	Scheme Scheme
	Host   string
	Port   *uint16
	Path   string
}

func Parse(raw string) (URI, error) {
	if raw == "" {
		return URI{}, ErrEmpty
	}

	schemeRaw, rest, found := strings.Cut(raw, "://")
	if !found {
		// No scheme separator. The whole input is host[:port][/path].
		schemeRaw, rest = "http", raw
	}

	scheme, err := parseScheme(schemeRaw)
	if err != nil {
		return URI{}, err
	}

	hostPort, path, _ := strings.Cut(rest, "/")

	host, port, err := splitHostPort(hostPort)
	if err != nil {
		return URI{}, err
	}

	if host == "" {
		return URI{}, ErrInvalidHostname
	}

	return URI{
		Scheme: scheme,
		Host:   host,
		Port:   port,
		Path:   path,
	}, nil
}

func splitHostPort(raw string) (host string, port *uint16, err error) {
	host, portRaw, found := strings.Cut(raw, ":")
	if !found {
		return raw, nil, nil
	}

	n, err := strconv.ParseUint(portRaw, 10, 16)
	if err != nil {
		return "", nil, ErrInvalidPort
	}

	p := uint16(n)
	return host, &p, nil
}

// Addr returns "host:port", the only thing handed to the transport
// layer to dial. The scheme's default port fills in when unset.
func (u URI) Addr() string {
	port := u.Scheme.DefaultPort()
	if u.Port != nil {
		port = *u.Port
	}

	return u.Host + ":" + strconv.FormatUint(uint64(port), 10)
}

// EncodedPath escapes '%' and space, in that order so that the
// percent signs introduced for spaces are not escaped twice.
// No other characters are touched.
func (u URI) EncodedPath() string {
	path := strings.ReplaceAll(u.Path, "%", "%25")
	return strings.ReplaceAll(path, " ", "%20")
}
