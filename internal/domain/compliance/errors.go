package compliance

import "errors"

var (
	ErrWeightSumMismatch = errors.New("category weights do not sum to 1")
	ErrItemNotFound      = errors.New("compliance item not found")
	ErrNoScoreHistory    = errors.New("no compliance score recorded yet")
)
