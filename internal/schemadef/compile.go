package schemadef

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/snowsecure/fieldwise/internal/agreement"
)

// ValidFieldTypes are the type names a doctype field may declare.
var ValidFieldTypes = map[string]bool{
	"string":  true,
	"number":  true,
	"boolean": true,
	"date":    true,
	"array":   true,
	"object":  true,
}

// CompileError reports a problem in an authored doctype definition.
type CompileError struct {
	DocType string    // doctype id, if known
	Field   string    // offending field, if any
	Message string    // human-readable description
	Code    string    // stable error code for CLI reporting
	Pos     token.Pos // CUE position if available
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		fmt.Fprintf(&b, "%s:%d:%d: ", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	if e.DocType != "" {
		fmt.Fprintf(&b, "doctype %q: ", e.DocType)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "field %q: ", e.Field)
	}
	b.WriteString(e.Message)
	return b.String()
}

// CompileDocType parses one doctype struct into its schema and critical set.
// The CUE value should be the doctype body, e.g. the value at
// doctype.invoice; the id comes from the struct label.
func CompileDocType(v cue.Value) (string, agreement.TypeSchema, agreement.CriticalSet, error) {
	if err := v.Err(); err != nil {
		return "", agreement.TypeSchema{}, nil, formatCUEError(err)
	}

	var id string
	if sels := v.Path().Selectors(); len(sels) > 0 {
		id = strings.Trim(sels[len(sels)-1].String(), `"`)
	}

	schema := agreement.TypeSchema{Properties: map[string]agreement.FieldSpec{}}
	critical := agreement.CriticalSet{}

	if labelVal := v.LookupPath(cue.ParsePath("label")); labelVal.Exists() {
		label, err := labelVal.String()
		if err != nil {
			return "", agreement.TypeSchema{}, nil, &CompileError{DocType: id, Field: "label", Message: "label must be a string", Pos: labelVal.Pos()}
		}
		schema.Label = label
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return "", agreement.TypeSchema{}, nil, &CompileError{DocType: id, Message: "fields is required", Pos: v.Pos()}
	}

	iter, err := fieldsVal.Fields()
	if err != nil {
		return "", agreement.TypeSchema{}, nil, formatCUEError(err)
	}
	for iter.Next() {
		name := strings.Trim(iter.Selector().String(), `"`)
		spec, isCritical, err := compileField(id, name, iter.Value())
		if err != nil {
			return "", agreement.TypeSchema{}, nil, err
		}
		schema.Properties[name] = spec
		if isCritical {
			critical[name] = struct{}{}
		}
	}

	if len(schema.Properties) == 0 {
		return "", agreement.TypeSchema{}, nil, &CompileError{DocType: id, Message: "at least one field is required", Pos: fieldsVal.Pos()}
	}

	return id, schema, critical, nil
}

// compileField parses one field spec from a doctype's fields struct.
func compileField(docType, name string, v cue.Value) (agreement.FieldSpec, bool, error) {
	if strings.HasPrefix(name, agreement.MetadataFieldPrefix) {
		return agreement.FieldSpec{}, false, &CompileError{
			DocType: docType,
			Field:   name,
			Message: fmt.Sprintf("field names may not start with the reserved prefix %q", agreement.MetadataFieldPrefix),
			Code:    ErrCodeReservedName,
			Pos:     v.Pos(),
		}
	}

	spec := agreement.FieldSpec{}

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if !typeVal.Exists() {
		return agreement.FieldSpec{}, false, &CompileError{DocType: docType, Field: name, Message: "type is required", Code: ErrCodeInvalidType, Pos: v.Pos()}
	}
	typeName, err := typeVal.String()
	if err != nil {
		return agreement.FieldSpec{}, false, &CompileError{DocType: docType, Field: name, Message: "type must be a string", Code: ErrCodeInvalidType, Pos: typeVal.Pos()}
	}
	if !ValidFieldTypes[typeName] {
		return agreement.FieldSpec{}, false, &CompileError{
			DocType: docType,
			Field:   name,
			Message: fmt.Sprintf("invalid type %q", typeName),
			Code:    ErrCodeInvalidType,
			Pos:     typeVal.Pos(),
		}
	}
	spec.Type = typeName

	if labelVal := v.LookupPath(cue.ParsePath("label")); labelVal.Exists() {
		if label, err := labelVal.String(); err == nil {
			spec.Label = label
		}
	}

	isCritical := false
	if critVal := v.LookupPath(cue.ParsePath("critical")); critVal.Exists() {
		isCritical, err = critVal.Bool()
		if err != nil {
			return agreement.FieldSpec{}, false, &CompileError{DocType: docType, Field: name, Message: "critical must be a bool", Pos: critVal.Pos()}
		}
	}

	return spec, isCritical, nil
}

// formatCUEError converts a CUE error into a CompileError with position info.
func formatCUEError(err error) *CompileError {
	var pos token.Pos
	if cueErr, ok := err.(errors.Error); ok {
		pos = cueErr.Position()
	}
	return &CompileError{Message: err.Error(), Pos: pos}
}
