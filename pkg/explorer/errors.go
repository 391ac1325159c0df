package explorer

import (
	"errors"

	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/engine"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable xlsx
// workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ModuleError is the failure record attached to a module execution.
// A failed module does not abort the run; its report section carries
// the documented fallback value.
type ModuleError = engine.ModuleError
