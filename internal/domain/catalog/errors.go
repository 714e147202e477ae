package catalog

import "errors"

var (
	ErrServiceNotFound   = errors.New("service not found or inactive")
	ErrServiceNameExists = errors.New("service with this name already exists")
)
