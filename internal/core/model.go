package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FeatureCount is the number of voice biomarkers the artifacts were fitted on
const FeatureCount = 7

// FeatureVector holds one set of voice biomarkers in schema order
type FeatureVector struct {
	PPE       float64
	Fo        float64
	Spread1   float64
	Flo       float64
	JitterDDP float64
	Fhi       float64
	Spread2   float64
}

// Feature describes one position of the feature schema
type Feature struct {
	// Key is the form field name
	Key string
	// Name is the dataset column name, used as the display label and
	// matched against feature_names declared by artifacts
	Name string
}

// The order is the order the scaler and classifier were fitted on.
var featureSchema = [FeatureCount]Feature{
	{Key: "ppe", Name: "PPE"},
	{Key: "fo", Name: "MDVP:Fo(Hz)"},
	{Key: "spread1", Name: "spread1"},
	{Key: "flo", Name: "MDVP:Flo(Hz)"},
	{Key: "jitter_ddp", Name: "Jitter:DDP"},
	{Key: "fhi", Name: "MDVP:Fhi(Hz)"},
	{Key: "spread2", Name: "spread2"},
}

// FeatureSchema returns the feature schema in fitted order
func FeatureSchema() []Feature {
	out := make([]Feature, FeatureCount)
	copy(out, featureSchema[:])
	return out
}

// FeatureNames returns the dataset column names in fitted order
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	for i, f := range featureSchema {
		names[i] = f.Name
	}
	return names
}

// SampleFeatureVector returns a fixed example used to prefill the form
func SampleFeatureVector() FeatureVector {
	return FeatureVector{
		PPE:       0.5,
		Fo:        120.0,
		Spread1:   0.1,
		Flo:       90.0,
		JitterDDP: 0.02,
		Fhi:       150.0,
		Spread2:   0.2,
	}
}

// Values returns the vector as a single row in schema order
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.PPE,
		v.Fo,
		v.Spread1,
		v.Flo,
		v.JitterDDP,
		v.Fhi,
		v.Spread2,
	}
}

// FeatureVectorFromValues builds a vector from a row in schema order
func FeatureVectorFromValues(values []float64) (FeatureVector, error) {
	if len(values) != FeatureCount {
		return FeatureVector{}, fmt.Errorf("expected %d values, got %d", FeatureCount, len(values))
	}
	return FeatureVector{
		PPE:       values[0],
		Fo:        values[1],
		Spread1:   values[2],
		Flo:       values[3],
		JitterDDP: values[4],
		Fhi:       values[5],
		Spread2:   values[6],
	}, nil
}

// ValidationError reports the form fields that failed validation, keyed by field key
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// ParseFeatureVector reads all seven fields through get, keyed by Feature.Key.
// Every field must be present and a finite number; negative values are
// rejected unless allowNegative is set.
func ParseFeatureVector(get func(key string) string, allowNegative bool) (FeatureVector, error) {
	values := make([]float64, FeatureCount)
	fieldErrs := make(map[string]string)

	for i, f := range featureSchema {
		raw := strings.TrimSpace(get(f.Key))
		if raw == "" {
			fieldErrs[f.Key] = "value is required"
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrs[f.Key] = "must be a number"
			continue
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			fieldErrs[f.Key] = "must be a finite number"
			continue
		}
		if n < 0 && !allowNegative {
			fieldErrs[f.Key] = "must be 0 or greater"
			continue
		}
		values[i] = n
	}

	if len(fieldErrs) > 0 {
		return FeatureVector{}, &ValidationError{Fields: fieldErrs}
	}
	return FeatureVectorFromValues(values)
}

// FormatValue renders a feature value with the form's six-decimal precision
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
