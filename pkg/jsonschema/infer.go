// Package jsonschema infers JSON Schema (Draft 2020-12) documents from
// sample JSON bodies.
package jsonschema

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/invopop/jsonschema"
)

// InferredSchema is a schema inferred from one or more body samples.
type InferredSchema struct {
	Schema      *jsonschema.Schema `json:"schema"`
	SampleCount int                `json:"sample_count"`
	AllMatch    bool               `json:"all_match"` // every sample produced the same schema
}

// InferOptions controls inference.
type InferOptions struct {
	// StrictRequired marks a property required only when it appears in
	// every sample. When false, no required list is emitted.
	StrictRequired bool
	// AdditionalProperties, when set, is applied to every object schema.
	AdditionalProperties *bool
	// NullableOptional keeps properties that ever carry null out of the
	// required list.
	NullableOptional bool
}

// DefaultInferOptions returns the options used by Infer.
func DefaultInferOptions() *InferOptions {
	return &InferOptions{StrictRequired: true, NullableOptional: true}
}

// Infer generates a schema from raw JSON samples, merging when more than
// one is given. Samples that fail to parse are skipped; if none parse the
// result is nil.
func Infer(samples ...[]byte) (*InferredSchema, error) {
	return InferWithOptions(DefaultInferOptions(), samples...)
}

// InferWithOptions is Infer with explicit options.
func InferWithOptions(opts *InferOptions, samples ...[]byte) (*InferredSchema, error) {
	if opts == nil {
		opts = DefaultInferOptions()
	}

	parsed := make([]any, 0, len(samples))
	for _, data := range samples {
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		parsed = append(parsed, v)
	}
	if len(parsed) == 0 {
		return nil, nil
	}

	schemas := make([]*jsonschema.Schema, len(parsed))
	for i, v := range parsed {
		schemas[i] = InferFromValue(v)
	}

	allMatch := true
	if len(schemas) > 1 {
		first, _ := json.Marshal(schemas[0])
		for _, s := range schemas[1:] {
			other, _ := json.Marshal(s)
			if string(first) != string(other) {
				allMatch = false
				break
			}
		}
	}

	merged := mergeSchemas(schemas)
	if opts.StrictRequired && merged.Type == "object" {
		markRequired(merged, parsed, opts.NullableOptional)
	}
	if opts.AdditionalProperties != nil {
		setAdditionalProperties(merged, *opts.AdditionalProperties)
	}

	return &InferredSchema{
		Schema:      merged,
		SampleCount: len(schemas),
		AllMatch:    allMatch,
	}, nil
}

// InferFromValue generates a schema from an already-parsed JSON value.
func InferFromValue(v any) *jsonschema.Schema {
	if v == nil {
		return &jsonschema.Schema{Type: "null"}
	}

	switch val := v.(type) {
	case bool:
		return &jsonschema.Schema{Type: "boolean"}
	case float64:
		// encoding/json decodes every number as float64; report whole
		// values as integers.
		if math.Trunc(val) == val && !math.IsInf(val, 0) {
			return &jsonschema.Schema{Type: "integer"}
		}
		return &jsonschema.Schema{Type: "number"}
	case int, int64:
		return &jsonschema.Schema{Type: "integer"}
	case string:
		return &jsonschema.Schema{Type: "string"}
	case []any:
		schema := &jsonschema.Schema{Type: "array"}
		if len(val) == 0 {
			return schema
		}
		items := make([]*jsonschema.Schema, len(val))
		for i, item := range val {
			items[i] = InferFromValue(item)
		}
		schema.Items = mergeSchemas(items)
		return schema
	case map[string]any:
		schema := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
		for _, k := range sortedKeys(val) {
			schema.Properties.Set(k, InferFromValue(val[k]))
		}
		return schema
	default:
		return &jsonschema.Schema{}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mergeSchemas(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 0 {
		return &jsonschema.Schema{}
	}
	if len(schemas) == 1 {
		return schemas[0]
	}

	types := make(map[string]bool)
	var objects, arrays []*jsonschema.Schema
	for _, s := range schemas {
		if s.Type == "" {
			continue
		}
		types[s.Type] = true
		switch s.Type {
		case "object":
			objects = append(objects, s)
		case "array":
			arrays = append(arrays, s)
		}
	}

	if len(types) == 1 {
		switch {
		case len(objects) > 0:
			return mergeObjects(objects)
		case len(arrays) > 0:
			return mergeArrays(arrays)
		default:
			return schemas[0]
		}
	}

	// Mixed types collapse to anyOf. invopop's Schema.Type is a single
	// string, so a type array is not an option here.
	typeList := make([]string, 0, len(types))
	for t := range types {
		if t != "object" && t != "array" {
			typeList = append(typeList, t)
		}
	}
	sort.Strings(typeList)

	anyOf := make([]*jsonschema.Schema, 0, len(typeList)+2)
	if len(objects) > 0 {
		anyOf = append(anyOf, mergeObjects(objects))
	}
	if len(arrays) > 0 {
		anyOf = append(anyOf, mergeArrays(arrays))
	}
	for _, t := range typeList {
		anyOf = append(anyOf, &jsonschema.Schema{Type: t})
	}
	if len(anyOf) == 1 {
		return anyOf[0]
	}
	return &jsonschema.Schema{AnyOf: anyOf}
}

func mergeObjects(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	byProp := make(map[string][]*jsonschema.Schema)
	for _, s := range schemas {
		if s.Properties == nil {
			continue
		}
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			byProp[pair.Key] = append(byProp[pair.Key], pair.Value)
		}
	}

	merged := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
	keys := make([]string, 0, len(byProp))
	for k := range byProp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged.Properties.Set(k, mergeSchemas(byProp[k]))
	}
	return merged
}

func mergeArrays(schemas []*jsonschema.Schema) *jsonschema.Schema {
	if len(schemas) == 1 {
		return schemas[0]
	}

	var items []*jsonschema.Schema
	for _, s := range schemas {
		if s.Items != nil {
			items = append(items, s.Items)
		}
	}
	if len(items) == 0 {
		return &jsonschema.Schema{Type: "array"}
	}
	return &jsonschema.Schema{Type: "array", Items: mergeSchemas(items)}
}

// markRequired marks properties present in every sample as required,
// recursing into nested objects and arrays of objects.
func markRequired(schema *jsonschema.Schema, samples []any, nullableOptional bool) {
	if schema.Type != "object" || schema.Properties == nil {
		return
	}

	counts := make(map[string]int)
	sawNull := make(map[string]bool)
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		counts[pair.Key] = 0
	}

	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range obj {
			if _, tracked := counts[key]; !tracked {
				continue
			}
			counts[key]++
			if value == nil {
				sawNull[key] = true
			}
		}
	}

	var required []string
	for key, count := range counts {
		if count != len(samples) {
			continue
		}
		if nullableOptional && sawNull[key] {
			continue
		}
		required = append(required, key)
	}
	sort.Strings(required)
	if len(required) > 0 {
		schema.Required = required
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		switch {
		case pair.Value.Type == "object":
			markRequired(pair.Value, collectNested(samples, pair.Key), nullableOptional)
		case pair.Value.Type == "array" && pair.Value.Items != nil && pair.Value.Items.Type == "object":
			markRequired(pair.Value.Items, collectItems(samples, pair.Key), nullableOptional)
		}
	}
}

func collectNested(samples []any, key string) []any {
	var nested []any
	for _, sample := range samples {
		if obj, ok := sample.(map[string]any); ok {
			if v, exists := obj[key]; exists && v != nil {
				nested = append(nested, v)
			}
		}
	}
	return nested
}

func collectItems(samples []any, key string) []any {
	var items []any
	for _, sample := range samples {
		obj, ok := sample.(map[string]any)
		if !ok {
			continue
		}
		arr, ok := obj[key].([]any)
		if !ok {
			continue
		}
		for _, item := range arr {
			if item != nil {
				items = append(items, item)
			}
		}
	}
	return items
}

func setAdditionalProperties(schema *jsonschema.Schema, allowed bool) {
	if schema == nil {
		return
	}
	if schema.Type == "object" {
		if allowed {
			schema.AdditionalProperties = jsonschema.TrueSchema
		} else {
			schema.AdditionalProperties = jsonschema.FalseSchema
		}
		if schema.Properties != nil {
			for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
				setAdditionalProperties(pair.Value, allowed)
			}
		}
	}
	if schema.Type == "array" {
		setAdditionalProperties(schema.Items, allowed)
	}
	for _, s := range schema.AnyOf {
		setAdditionalProperties(s, allowed)
	}
}
