package saz

import "errors"

// ErrInvalidStructure is the single archive-level failure: no usable
// session fragments were found. A .saz archive must carry a top-level raw/
// directory with paired <id>_c.txt and <id>_s.txt files; anything less is
// this error, while per-fragment anomalies are absorbed by parser defaults.
var ErrInvalidStructure = errors.New("invalid .saz structure: a populated raw/ directory with paired <id>_c.txt/<id>_s.txt fragments is required")
