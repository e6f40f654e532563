package artifact

import (
	"errors"
	"fmt"

	"github.com/mikey/pd-screen/internal/core"
)

// StandardScaler standardises each feature as (x - mean) / scale
type StandardScaler struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

func (s *StandardScaler) validate() error {
	if err := checkVector("mean", s.Mean); err != nil {
		return err
	}
	if len(s.Scale) == 0 {
		s.Scale = ones()
	}
	return checkVector("scale", s.Scale)
}

// Transform implements core.Scaler
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if err := checkRow(row); err != nil {
		return nil, err
	}
	out := make([]float64, len(row))
	for i, x := range row {
		out[i] = (x - s.Mean[i]) / nonZero(s.Scale[i])
	}
	return out, nil
}

// MinMaxScaler maps each feature from [data_min, data_max] onto feature_range
type MinMaxScaler struct {
	DataMin      []float64 `yaml:"data_min"`
	DataMax      []float64 `yaml:"data_max"`
	FeatureRange []float64 `yaml:"feature_range"`
}

func (s *MinMaxScaler) validate() error {
	if err := checkVector("data_min", s.DataMin); err != nil {
		return err
	}
	if err := checkVector("data_max", s.DataMax); err != nil {
		return err
	}
	if len(s.FeatureRange) == 0 {
		s.FeatureRange = []float64{0, 1}
	}
	if len(s.FeatureRange) != 2 {
		return fmt.Errorf("feature_range must have 2 values, got %d", len(s.FeatureRange))
	}
	if err := checkFinite("feature_range", s.FeatureRange...); err != nil {
		return err
	}
	if s.FeatureRange[0] >= s.FeatureRange[1] {
		return errors.New("feature_range minimum must be below maximum")
	}
	return nil
}

// Transform implements core.Scaler
func (s *MinMaxScaler) Transform(row []float64) ([]float64, error) {
	if err := checkRow(row); err != nil {
		return nil, err
	}
	lo, hi := s.FeatureRange[0], s.FeatureRange[1]
	out := make([]float64, len(row))
	for i, x := range row {
		std := (x - s.DataMin[i]) / nonZero(s.DataMax[i]-s.DataMin[i])
		out[i] = std*(hi-lo) + lo
	}
	return out, nil
}

// nonZero treats a zero-width feature as unit scale
func nonZero(x float64) float64 {
	if x == 0 {
		return 1
	}
	return x
}

func ones() []float64 {
	out := make([]float64, core.FeatureCount)
	for i := range out {
		out[i] = 1
	}
	return out
}
