// Package artifact serializes a program's lowered bodies to a .irpack
// file: a single msgpack document carrying every body's instruction list
// plus the program-wide FieldTracker/StringTable, written via a
// temp-file-then-atomic-rename so a reader never observes a partially
// written pack.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"arcc/internal/fieldstr"
	"arcc/internal/ir"
	"arcc/internal/lower"
)

// schemaVersion is bumped whenever Pack's wire shape changes.
const schemaVersion uint16 = 1

// BodyArtifact is one lowered body's persisted result.
type BodyArtifact struct {
	Header              string
	MessageID           int
	Code                []*ir.Instr
	StackDepth          int
	SignalDepth         int
	ExpressionDepth     int
	NextCmpID           int
	ComponentToInstance map[string]int
}

// Pack is the top-level .irpack document: every body's artifact plus the
// program-wide interning tables each body's Code references by id.
type Pack struct {
	Schema        uint16
	Bodies        []BodyArtifact
	FieldEntries  []string
	StringEntries []string
}

// BodyIdentity carries the per-body identifying fields CodeOutput itself
// doesn't retain: CodeInfo.Header is consumed during lowering (panic
// messages and the return-shape lookup), and MessageID is threaded through state but never
// copied into CodeOutput, since neither is needed by lowering once it has
// run. A caller wanting them in the persisted pack supplies them back in
// here, in the same order as the CodeOutput slice passed to BuildPack.
type BodyIdentity struct {
	Header    string
	MessageID int
}

// BuildPack assembles a Pack from a program's lowered bodies. identities
// must have the same length as outputs.
func BuildPack(outputs []lower.CodeOutput, identities []BodyIdentity) (Pack, error) {
	if len(identities) != len(outputs) {
		return Pack{}, fmt.Errorf("artifact: %d identities for %d bodies", len(identities), len(outputs))
	}
	pack := Pack{Schema: schemaVersion, Bodies: make([]BodyArtifact, len(outputs))}
	for i, out := range outputs {
		pack.Bodies[i] = BodyArtifact{
			Header:              identities[i].Header,
			MessageID:           identities[i].MessageID,
			Code:                out.Code,
			StackDepth:          out.StackDepth,
			SignalDepth:         out.SignalDepth,
			ExpressionDepth:     out.ExpressionDepth,
			NextCmpID:           out.NextCmpID,
			ComponentToInstance: out.ComponentToInstance,
		}
		if out.FieldTracker != nil {
			pack.FieldEntries = out.FieldTracker.Entries()
		}
		if out.StringTable != nil {
			pack.StringEntries = out.StringTable.Entries()
		}
	}
	return pack, nil
}

// FieldTracker rebuilds the program-wide FieldTracker the pack was built
// with.
func (p Pack) FieldTracker() *fieldstr.FieldTracker { return fieldstr.FromEntries(p.FieldEntries) }

// StringTable rebuilds the program-wide StringTable the pack was built
// with.
func (p Pack) StringTable() *fieldstr.StringTable { return fieldstr.StringTableFromEntries(p.StringEntries) }

// WriteFile encodes pack to path via a temp file in the same directory,
// renamed into place only once the encode has fully succeeded and the temp
// file has been closed. The file is not fsynced before the rename.
func WriteFile(path string, pack Pack) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-irpack-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer func() {
		if removeErr := os.Remove(tmpName); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			err = errors.Join(err, removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if encErr := enc.Encode(&pack); encErr != nil {
		f.Close()
		return encErr
	}
	if closeErr := f.Close(); closeErr != nil {
		return closeErr
	}
	return os.Rename(tmpName, path)
}

// ReadFile decodes a .irpack previously written by WriteFile.
func ReadFile(path string) (Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pack{}, err
	}
	defer f.Close()

	var pack Pack
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&pack); err != nil {
		return Pack{}, err
	}
	if pack.Schema != schemaVersion {
		return Pack{}, fmt.Errorf("artifact: %s: unsupported schema version %d (want %d)", path, pack.Schema, schemaVersion)
	}
	return pack, nil
}
