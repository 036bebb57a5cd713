// Package pkg holds utilities shared by every layer of the server.
//
// This file declares the domain-level sentinel errors. Services wrap them with
// context and the HTTP layer maps them to status codes:
//
//	return fmt.Errorf("%w: receiver not found", pkg.ErrNotFound)
//	...
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")

	// Message images: an upload over UPLOAD_MAX_SIZE, or content that sniffs
	// as anything but jpeg/png/gif/webp whatever type the data URI declares.
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
