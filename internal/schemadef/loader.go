package schemadef

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// LoadMode controls how errors are handled during config loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Registry holds the compiled doctype configuration the agreement engine
// consumes.
type Registry struct {
	Schemas   agreement.SchemaMap
	Critical  agreement.CriticalTable
	FileCount int // number of CUE files found
}

// LoadError represents an error that occurred during config loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeDocTypeFields = "E101" // Missing or empty fields
	ErrCodeInvalidType   = "E102" // Invalid field type
	ErrCodeReservedName  = "E103" // Reserved field name prefix
)

// Load reads and compiles doctype configuration from a directory of CUE
// files. If mode is LoadModeFailFast, returns on first error; otherwise all
// errors are collected.
func Load(dir string, mode LoadMode) (*Registry, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing config directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	registry := &Registry{
		Schemas:   agreement.SchemaMap{},
		Critical:  agreement.CriticalTable{},
		FileCount: len(cueFiles),
	}

	typesVal := value.LookupPath(cue.ParsePath("doctype"))
	if !typesVal.Exists() {
		return registry, []error{&LoadError{Code: ErrCodeGeneric, Message: "no doctype definitions found"}}
	}

	iter, iterErr := typesVal.Fields()
	if iterErr != nil {
		return registry, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating doctypes: %v", iterErr)}}
	}
	for iter.Next() {
		id, schema, critical, compileErr := CompileDocType(iter.Value())
		if compileErr != nil {
			errs = append(errs, convertCompileError(compileErr, "doctype."+iter.Selector().String()))
			if mode == LoadModeFailFast {
				return registry, errs
			}
			continue
		}
		registry.Schemas[id] = schema
		if len(critical) > 0 {
			registry.Critical[id] = critical
		}
	}

	if len(registry.Schemas) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no doctype definitions found"})
	}

	return registry, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// convertCompileError converts a CompileError to a LoadError with position
// info and a stable error code.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		code := compileErr.Code
		if code == "" {
			code = ErrCodeDocTypeFields
		}
		return &LoadError{
			Code:    code,
			Message: compileErr.Error(),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}
