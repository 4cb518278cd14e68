package gitview

import "errors"

var errRemoteRequired = errors.New("remote URL is required")
