package model

import "errors"

var ErrNotFound = errors.New("negotiation session not found")
