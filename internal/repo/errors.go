package repo

import "errors"

var errDuplicateID = errors.New("duplicate id")
