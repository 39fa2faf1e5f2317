package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/sigil-lang/sigil/internal/ir"
)

// LoadSymbols loads catalogue extensions from the CUE files in dir.
//
// The files declare symbols under a top-level "symbol" struct, one field
// per symbol name:
//
//	symbol: VOID_ANCHOR: {
//		glyph:     "⊽"
//		meaning:   "Anchor into the unmanifest"
//		resonance: 0.8
//	}
//
// Every declared symbol is validated before being admitted; the first
// invalid symbol fails the whole load.
func LoadSymbols(dir string) ([]ir.Symbol, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("symbols directory not found: %s", dir)
	}
	if err != nil {
		return nil, fmt.Errorf("accessing symbols directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning symbols directory: %w", err)
	}
	if len(cueFiles) == 0 {
		return nil, fmt.Errorf("no CUE files found in %s", dir)
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}

	symbolsVal := value.LookupPath(cue.ParsePath("symbol"))
	if !symbolsVal.Exists() {
		return nil, fmt.Errorf("no symbol declarations found in %s", dir)
	}

	iter, err := symbolsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterating symbols: %w", err)
	}

	var symbols []ir.Symbol
	for iter.Next() {
		sym, err := decodeSymbol(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols declared in %s", dir)
	}
	return symbols, nil
}

// decodeSymbol extracts one symbol from its CUE value. The glyph defaults
// to the symbol name when omitted, matching synthesized symbol views.
func decodeSymbol(name string, v cue.Value) (ir.Symbol, error) {
	sym := ir.Symbol{Name: name, Glyph: name}

	if gv := v.LookupPath(cue.ParsePath("glyph")); gv.Exists() {
		g, err := gv.String()
		if err != nil {
			return ir.Symbol{}, fmt.Errorf("symbol %q: glyph: %w", name, err)
		}
		sym.Glyph = g
	}

	mv := v.LookupPath(cue.ParsePath("meaning"))
	if !mv.Exists() {
		return ir.Symbol{}, fmt.Errorf("symbol %q: meaning is required", name)
	}
	m, err := mv.String()
	if err != nil {
		return ir.Symbol{}, fmt.Errorf("symbol %q: meaning: %w", name, err)
	}
	sym.Meaning = m

	rv := v.LookupPath(cue.ParsePath("resonance"))
	if !rv.Exists() {
		return ir.Symbol{}, fmt.Errorf("symbol %q: resonance is required", name)
	}
	r, err := rv.Float64()
	if err != nil {
		return ir.Symbol{}, fmt.Errorf("symbol %q: resonance: %w", name, err)
	}
	sym.Resonance = r

	if err := sym.Validate(); err != nil {
		return ir.Symbol{}, err
	}
	return sym, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
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
