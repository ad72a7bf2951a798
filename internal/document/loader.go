package document

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSrc string

// Error code constants for document loading.
const (
	ErrCodeRead      = "D001" // Source file unreadable
	ErrCodeCompile   = "D002" // CUE compile error
	ErrCodeSchema    = "D003" // Schema validation failed
	ErrCodeDecode    = "D004" // Decode into Go types failed
	ErrCodeStructure = "D005" // Structural defect (duplicate id)
)

// LoadError represents an error that occurred during document loading.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads and validates a styled document from a CUE file.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: fmt.Sprintf("reading document: %v", err)}
	}
	return LoadBytes(path, src)
}

// LoadBytes validates a styled document from in-memory CUE source.
// The name is used for diagnostics only.
func LoadBytes(name string, src []byte) (*Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCompile, Message: fmt.Sprintf("compiling embedded schema: %v", err)}
	}

	value := ctx.CompileBytes(src, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCompile, Path: name, Message: fmt.Sprintf("compiling document: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Path: name, Message: fmt.Sprintf("document does not satisfy schema: %v", err)}
	}

	docVal := unified.LookupPath(cue.ParsePath("document"))
	if !docVal.Exists() {
		return nil, &LoadError{Code: ErrCodeSchema, Path: name, Message: "no \"document\" field found"}
	}

	var doc Document
	if err := docVal.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDecode, Path: name, Message: fmt.Sprintf("decoding document: %v", err)}
	}

	if err := doc.index(); err != nil {
		return nil, &LoadError{Code: ErrCodeStructure, Path: name, Message: err.Error()}
	}

	return &doc, nil
}
