package source

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func decodeCUE(data []byte, filename, path string) ([]Record, error) {
	if path == "" {
		path = DefaultCUEPath
	}

	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("compile cue: %w", err)
	}

	list := value.LookupPath(cue.ParsePath(path))
	if !list.Exists() {
		return nil, fmt.Errorf("cue: no field %q", path)
	}
	if err := list.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("cue: %s is not concrete: %w", path, err)
	}

	decoded, err := cueToGo(list)
	if err != nil {
		return nil, fmt.Errorf("cue: %s: %w", path, err)
	}
	elems, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("cue: %s: expected a list of records, got %s", path, list.Kind())
	}
	return toRecords(elems)
}

// cueToGo converts a concrete CUE value into plain Go values.
func cueToGo(v cue.Value) (any, error) {
	switch v.Kind() {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		out := map[string]any{}
		for iter.Next() {
			elem, err := cueToGo(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Label(), err)
			}
			out[iter.Label()] = elem
		}
		return out, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		out := []any{}
		for iter.Next() {
			elem, err := cueToGo(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, elem)
		}
		return out, nil
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind, cue.NumberKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.BoolKind:
		return v.Bool()
	case cue.BytesKind:
		return v.Bytes()
	case cue.NullKind:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported cue kind %s", v.Kind())
}
