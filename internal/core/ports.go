package core

// Scaler is a fitted transform applied to a raw feature row before classification
type Scaler interface {
	// Transform returns the normalised row; the input is not modified
	Transform(row []float64) ([]float64, error)
}

// Classifier is a fitted binary model
type Classifier interface {
	// Predict returns the label for a normalised row
	Predict(row []float64) (int, error)
}
