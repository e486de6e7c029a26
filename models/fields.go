package models

import (
	"reflect"
	"strings"
)

// formField is one persisted form field of a section: its Go field name and
// its wire key, which is shared by the json and bson tags.
type formField struct {
	name string
	key  string
}

func formFields(section Section) []formField {
	t := reflect.TypeOf(section)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	fields := make([]formField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || !f.IsExported() {
			continue
		}
		key, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if key == "" || key == "-" {
			continue
		}
		fields = append(fields, formField{name: f.Name, key: key})
	}
	return fields
}

// FormKeys returns the wire keys of every form field of section.
func FormKeys(section Section) []string {
	fields := formFields(section)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// NonZeroKeys returns the wire keys of the form fields holding a value.
func NonZeroKeys(section Section) []string {
	v := reflect.Indirect(reflect.ValueOf(section))
	var keys []string
	for _, f := range formFields(section) {
		if !v.FieldByName(f.name).IsZero() {
			keys = append(keys, f.key)
		}
	}
	return keys
}

// MatchKeys maps keys taken from a request body onto section's wire keys.
// Matching ignores case, as encoding/json does when decoding. Unknown keys,
// _id and applicationId are dropped.
func MatchKeys(section Section, keys []string) []string {
	fields := formFields(section)
	matched := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		for _, f := range fields {
			if strings.EqualFold(f.key, key) && !seen[f.key] {
				seen[f.key] = true
				matched = append(matched, f.key)
				break
			}
		}
	}
	return matched
}

// FieldNames returns the Go field names behind the given wire keys.
func FieldNames(section Section, keys []string) []string {
	byKey := make(map[string]string)
	for _, f := range formFields(section) {
		byKey[f.key] = f.name
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name, ok := byKey[key]; ok {
			names = append(names, name)
		}
	}
	return names
}

// UpdateKeys returns the fields an update of section writes. Payment, Storage
// and Checklist consist of sanitized fields only, so every field is written
// with its sanitized value; other sections write just the sent keys.
func UpdateKeys(section Section, sent []string) []string {
	switch section.(type) {
	case *Payment, *Storage, *Checklist:
		return FormKeys(section)
	default:
		return MatchKeys(section, sent)
	}
}
