package store

// Record is a raw row or partial application-side object. The alias (not a
// named type) keeps it scannable by gorm's map destination support.
type Record = map[string]any

// inboundNames and outboundNames are built once from the resources table.
var (
	inboundNames  = map[Resource]map[string]string{} // storage -> app
	outboundNames = map[Resource]map[string]string{} // app -> storage
)

func init() {
	for res, meta := range resources {
		in := make(map[string]string, len(meta.fields))
		out := make(map[string]string, len(meta.fields))
		for _, f := range meta.fields {
			in[f.storage] = f.app
			out[f.app] = f.storage
		}
		inboundNames[res] = in
		outboundNames[res] = out
	}
}

// MapInbound renames a storage-shaped record to the application convention.
// Fields not declared for the resource pass through unchanged. A nil record
// maps to nil.
func MapInbound(res Resource, row Record) Record {
	return rename(row, inboundNames[res])
}

// MapInboundList maps a list of storage-shaped records element-wise
func MapInboundList(res Resource, rows []Record) []Record {
	if rows == nil {
		return nil
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = MapInbound(res, row)
	}
	return out
}

// MapOutbound renames a partial application-side object to the storage
// convention. Only keys present in the input appear in the output: fields
// the caller did not supply must not reach storage, which is what makes
// partial updates safe.
func MapOutbound(res Resource, partial Record) Record {
	return rename(partial, outboundNames[res])
}

func rename(rec Record, names map[string]string) Record {
	if rec == nil {
		return nil
	}
	out := make(Record, len(rec))
	for k, v := range rec {
		if mapped, ok := names[k]; ok {
			out[mapped] = v
		} else {
			out[k] = v
		}
	}
	return out
}
