package review

import "errors"

var ErrInvalidQuality = errors.New("review quality must be between 0 and 5")
