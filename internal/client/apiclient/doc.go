// Package apiclient is the HTTP transport of the portfolio CLI.
//
// # Overview
//
// Client wraps net/http and knows three things about the API:
//  1. The bearer token. Every request reads the current access token from a
//     TokenStore and sends it as "Authorization: Bearer <token>".
//  2. Request bodies. A Body is nil, JSON(v) or a *Form. A form that carries
//     at least one file is sent as multipart/form-data, any other form as a
//     JSON object.
//  3. Error shapes. Non-2xx responses become *APIError, which keeps the
//     per-field validation messages the server sends back.
//
// # Error Handling
//
// A 401 response clears the TokenStore and runs the OnUnauthorized hooks
// before the error is returned; the error matches ErrUnauthorized. Transport
// failures match ErrUnavailable and undecodable success bodies match
// ErrDecode. Client-side URL validation produces *ValidationError and no
// request is sent.
//
// Nothing is retried.
package apiclient
