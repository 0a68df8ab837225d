// Package validation checks request bodies against the JSON schemas
// embedded in schemas/.
package validation

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names, one per file in schemas/.
const (
	BookingCreate = "booking_create"
	BookingStatus = "booking_status"
	ListingWrite  = "listing"
)

var compiled = map[string]*jsonschema.Schema{}

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	files, err := fs.Glob(schemaFS, "schemas/*.json")
	if err != nil {
		panic(err)
	}
	for _, f := range files {
		raw, err := schemaFS.ReadFile(f)
		if err != nil {
			panic(err)
		}
		if err := compiler.AddResource(f, bytes.NewReader(raw)); err != nil {
			panic(fmt.Sprintf("add schema %s: %v", f, err))
		}
	}
	for _, f := range files {
		s, err := compiler.Compile(f)
		if err != nil {
			panic(fmt.Sprintf("compile schema %s: %v", f, err))
		}
		compiled[strings.TrimSuffix(path.Base(f), ".json")] = s
	}
}

// Error is a body that failed validation.  Field is the JSON pointer of the
// first offending value ("" for the document itself).
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Validate checks body against the named schema.  It returns *Error for
// invalid documents and a plain error for an unknown schema name.
func Validate(schema string, body []byte) error {
	s, ok := compiled[schema]
	if !ok {
		return fmt.Errorf("schema %q not found", schema)
	}
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return &Error{Message: "body is not valid JSON"}
	}
	err := s.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &Error{Field: strings.TrimPrefix(leaf.InstanceLocation, "/"), Message: leaf.Message}
}
