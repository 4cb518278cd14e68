package app

import "errors"

var (
	errProblemNotFound = errors.New("problem no longer exists")
	errContestNotFound = errors.New("contest no longer exists")
)
