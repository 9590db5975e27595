package common

import "errors"

var (
	ErrorInvalidValue   = errors.New("invalid value")
	ErrorInvalidPayload = errors.New("invalid payload")
	ErrorInvalidConfig  = errors.New("invalid config")
)
