package backup

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/hearth/internal/model"
)

//go:embed snapshot.cue
var schemaCUE string

// DefaultMaxImportBytes is the size ceiling enforced at import time.
const DefaultMaxImportBytes = 50 << 20 // 50 MiB

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaVal  cue.Value
)

// snapshotSchema compiles the embedded CUE schema once and returns the
// #Snapshot definition.
func snapshotSchema() (*cue.Context, cue.Value) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		schemaVal = schemaCtx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Snapshot"))
	})
	return schemaCtx, schemaVal
}

// Validate structurally checks a candidate snapshot document and decodes it.
// It never mutates anything; every failure is a *ValidationError.
//
// Checks, in order:
//  1. filename extension must be .json
//  2. size must be at or under maxBytes
//  3. the document must parse as JSON and satisfy the snapshot schema
//     (version tag, data section, record ids, preference map)
//  4. timestamps must decode
func Validate(filename string, data []byte, maxBytes int64) (*model.Snapshot, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".json" {
		return nil, &ValidationError{
			Field:   "extension",
			Message: fmt.Sprintf("expected a .json snapshot, got %q", ext),
		}
	}

	if int64(len(data)) > maxBytes {
		return nil, &ValidationError{
			Field:   "size",
			Message: fmt.Sprintf("document is %d bytes, ceiling is %d", len(data), maxBytes),
		}
	}

	expr, err := cuejson.Extract(filename, data)
	if err != nil {
		return nil, &ValidationError{
			Field:   "document",
			Message: fmt.Sprintf("not valid JSON: %v", err),
		}
	}

	ctx, schema := snapshotSchema()
	unified := schema.Unify(ctx.BuildExpr(expr))
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return nil, &ValidationError{
			Field:   "schema",
			Message: err.Error(),
		}
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &ValidationError{
			Field:   "document",
			Message: fmt.Sprintf("cannot decode snapshot: %v", err),
		}
	}

	return &snap, nil
}
