package core

import (
	"errors"
	"time"
)

// Status is the outcome of one inference attempt
type Status int

const (
	StatusOK Status = iota
	StatusUnavailable
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// LabelPositive is the classifier output meaning the condition is likely present
const LabelPositive = 1

// PredictionResult is the outcome of screening one feature vector
type PredictionResult struct {
	Status   Status
	Label    int
	Err      error
	Duration time.Duration
}

// Detected reports a successful positive prediction
func (r PredictionResult) Detected() bool {
	return r.Status == StatusOK && r.Label == LabelPositive
}

// DisplayState is one of the three mutually exclusive result renderings
type DisplayState string

const (
	DisplayPositive    DisplayState = "positive"
	DisplayNegative    DisplayState = "negative"
	DisplayUnavailable DisplayState = "unavailable"
)

// Result messages shown to the user
const (
	MessagePositive    = "Parkinson's Disease detected. Please consult a neurologist."
	MessageNegative    = "No Parkinson's detected (screening)."
	MessageUnavailable = "Model or scaler not loaded, prediction can't run. Check the configured artifact paths."
	messageErrorPrefix = "Error during prediction: "
)

// Presentation is what the user sees for a result
type Presentation struct {
	State   DisplayState
	Message string
}

// Present maps a prediction result to its display state and message
func Present(r PredictionResult) Presentation {
	switch r.Status {
	case StatusOK:
		if r.Label == LabelPositive {
			return Presentation{State: DisplayPositive, Message: MessagePositive}
		}
		return Presentation{State: DisplayNegative, Message: MessageNegative}
	case StatusError:
		return Presentation{State: DisplayUnavailable, Message: messageErrorPrefix + causeOf(r.Err)}
	default:
		return Presentation{State: DisplayUnavailable, Message: MessageUnavailable}
	}
}

func causeOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie.Error()
	}
	return err.Error()
}
