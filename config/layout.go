package config

// FieldsLayout describes how a bit stream splits into fixed-width fields.
type FieldsLayout struct {
	NumFields     uint64
	FieldWidth    int
	LastFieldBits int // bits in a trailing short field, 0 if none
}

func DeriveFieldsLayout(cfg Config, totalBits uint64) FieldsLayout {
	width := uint64(cfg.FieldWidth)
	numFields := totalBits / width

	var last int
	if remainder := totalBits % width; remainder > 0 {
		numFields++
		last = int(remainder)
	}

	return FieldsLayout{
		NumFields:     numFields,
		FieldWidth:    cfg.FieldWidth,
		LastFieldBits: last,
	}
}

// WholeFields returns the number of fields that hold FieldWidth bits.
func (l FieldsLayout) WholeFields() uint64 {
	if l.LastFieldBits > 0 {
		return l.NumFields - 1
	}
	return l.NumFields
}
