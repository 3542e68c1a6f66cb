package applescript

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Reserved delimiter tokens. These must match what the automation scripts
// emit byte-for-byte; there is no escaping mechanism, so a token appearing
// inside real data corrupts that record (it is then dropped by validation).
const (
	RecordSep  = "<<||>>"   // between whole records
	FieldSep   = "<<|>>"    // between a record's fields
	PhoneSep   = "<<+++>>"  // between repeated phone entries
	EmailSep   = "<<===>>>" // between repeated email entries
	AddressSep = "<<***>>"  // between repeated address entries
)

// FieldKind selects how one positional field is interpreted.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDate           // AppleScript verbose date text, converted to ISO best-effort
	FieldBool
	FieldInt
	FieldList // repeated label:value items, split by FieldSpec.Sep
)

// LabeledValue is one item of a multi-valued field, e.g. a phone number with
// its label.
type LabeledValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AddressValue is a structured multi-valued item: a label plus key:value
// components joined by commas in the raw text.
type AddressValue struct {
	Label      string            `json:"label"`
	Components map[string]string `json:"components"`
}

// FieldSpec describes one positional field of a record schema.
type FieldSpec struct {
	Name       string
	Kind       FieldKind
	Sep        string // list item separator, FieldList only
	Components bool   // FieldList items carry key:value components (addresses)
	Nullable   bool   // the literal "null" means absent
	OmitEmpty  bool   // leave the key out when the trimmed value is empty
	PreviewLen int    // when > 0, also emit Name+"_preview" truncated to this length
}

// Schema is the fixed field layout of one entity's delimited records.
type Schema struct {
	Fields       []FieldSpec
	MinFields    int    // records with fewer fields are dropped
	RecordSep    string // defaults to RecordSep
	FieldSep     string // defaults to FieldSep
	LeadingCount bool   // a total-match count precedes the first record
}

// Record is one decoded entity as named fields.
type Record map[string]any

// Diagnostic describes a non-fatal problem found while decoding, returned to
// the caller instead of being written to a process-wide logger.
type Diagnostic struct {
	Record  int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d: %s", d.Record, d.Message)
}

// DecodeJSON attempts a strict JSON parse of the whole output. The second
// return reports whether the parse succeeded.
func DecodeJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, false
	}
	return v, true
}

// DecodeRecords parses delimited output against schema. It returns the valid
// records in input order, the total match count (the leading count token when
// present, otherwise the number of valid records), and a diagnostic per
// dropped record. It never fails: unparseable input yields no records.
func DecodeRecords(text string, schema Schema) ([]Record, int, []Diagnostic) {
	recordSep := schema.RecordSep
	if recordSep == "" {
		recordSep = RecordSep
	}
	fieldSep := schema.FieldSep
	if fieldSep == "" {
		fieldSep = FieldSep
	}

	var records []Record
	var diags []Diagnostic

	text = strings.TrimSpace(text)
	if text == "" {
		return records, 0, diags
	}

	segments := strings.Split(text, recordSep)
	total := -1
	if schema.LeadingCount && len(segments) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(segments[0])); err == nil {
			total = n
			segments = segments[1:]
		}
	}

	for i, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		fields := strings.Split(segment, fieldSep)
		if len(fields) < schema.MinFields {
			diags = append(diags, Diagnostic{
				Record:  i,
				Message: fmt.Sprintf("insufficient fields (%d < %d), record dropped", len(fields), schema.MinFields),
			})
			continue
		}

		rec := make(Record, len(schema.Fields))
		ok := true
		for pos, spec := range schema.Fields {
			if pos >= len(fields) {
				break // trailing optional fields
			}
			if err := decodeField(rec, spec, fields[pos]); err != nil {
				diags = append(diags, Diagnostic{
					Record:  i,
					Message: fmt.Sprintf("field %q: %v, record dropped", spec.Name, err),
				})
				ok = false
				break
			}
		}
		if ok {
			records = append(records, rec)
		}
	}

	if total < 0 {
		total = len(records)
	}
	return records, total, diags
}

func decodeField(rec Record, spec FieldSpec, raw string) error {
	value := strings.TrimSpace(raw)
	if spec.Nullable && value == "null" {
		return nil
	}

	switch spec.Kind {
	case FieldText:
		if spec.OmitEmpty && value == "" {
			return nil
		}
		rec[spec.Name] = value
		if spec.PreviewLen > 0 {
			rec[spec.Name+"_preview"] = Preview(value, spec.PreviewLen)
		}
	case FieldDate:
		if spec.OmitEmpty && value == "" {
			return nil
		}
		rec[spec.Name] = ASDateToISO(value)
	case FieldBool:
		rec[spec.Name] = strings.EqualFold(value, "true")
	case FieldInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("not an integer: %q", value)
		}
		rec[spec.Name] = n
	case FieldList:
		if spec.Components {
			rec[spec.Name] = parseAddressItems(raw, spec.Sep)
		} else {
			rec[spec.Name] = parseLabeledItems(raw, spec.Sep)
		}
	}
	return nil
}

// parseLabeledItems splits a multi-valued field into label:value pairs.
// Malformed items (no colon) are skipped, matching the scripts' tolerance.
func parseLabeledItems(raw, sep string) []LabeledValue {
	items := []LabeledValue{}
	for _, part := range strings.Split(raw, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		label, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		items = append(items, LabeledValue{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
	}
	return items
}

// parseAddressItems splits a structured multi-valued field: each item is
// label:components where components are key:value pairs joined by commas.
func parseAddressItems(raw, sep string) []AddressValue {
	items := []AddressValue{}
	for _, part := range strings.Split(raw, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		label, rest, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		components := make(map[string]string)
		for _, comp := range strings.Split(rest, ",") {
			key, val, ok := strings.Cut(comp, ":")
			if !ok || strings.TrimSpace(key) == "" {
				continue
			}
			components[strings.TrimSpace(key)] = strings.TrimSpace(val)
		}
		items = append(items, AddressValue{Label: strings.TrimSpace(label), Components: components})
	}
	return items
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Preview collapses whitespace and truncates to max characters with an
// ellipsis marker, for long free-text fields. The cap counts runes, not
// bytes, so multi-byte text is never torn mid-character.
func Preview(s string, max int) string {
	cleaned := whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	runes := []rune(cleaned)
	if len(runes) <= max {
		return cleaned
	}
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
