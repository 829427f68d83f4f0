// Package http implements the client side of the HTTP/1.1 wire format:
// header sets, request head serialization and the streaming response
// decoder.
package http

import "clienter/uri"

const (
	CR byte = '\r'
	LF byte = '\n'
	SP byte = ' '
)

var CRLF = []byte{CR, LF}

type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodPatch   Method = "PATCH"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// Version is the wire-version label written on the request line.
type Version string

const (
	Version11 Version = "HTTP/1.1"
	Version2  Version = "HTTP/2"
)

// VersionFor returns the label declared for a scheme. The https label
// is declarative only. The payload put on the wire stays HTTP/1.1
// style regardless.
func VersionFor(scheme uri.Scheme) Version {
	if scheme == uri.SchemeHTTPS {
		return Version2
	}
	return Version11
}
