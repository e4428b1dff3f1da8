package schema

import "errors"

var (
	ErrNotExist     = errors.New("not_exist_record")
	ErrNotImplement = errors.New("not_implement")
)
