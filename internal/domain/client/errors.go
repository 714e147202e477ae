package client

import "errors"

var (
	ErrClientNotFound = errors.New("client profile not found")
)
