package artifact

import (
	"fmt"

	"github.com/mikey/pd-screen/internal/core"
)

// Artifact kinds
const (
	KindStandardScaler = "standard_scaler"
	KindMinMaxScaler   = "minmax_scaler"
	KindLinear         = "linear"
	KindDecisionTree   = "decision_tree"
	KindSVC            = "svc"
)

// LoadScaler reads a native scaler artifact
func LoadScaler(path string) (core.Scaler, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindStandardScaler:
		s := &StandardScaler{}
		if err := doc.decode(s); err != nil {
			return nil, err
		}
		return s, nil
	case KindMinMaxScaler:
		s := &MinMaxScaler{}
		if err := doc.decode(s); err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a scaler kind", core.ErrArtifactLoad, doc.Kind)
	}
}

// LoadClassifier reads a native classifier artifact
func LoadClassifier(path string) (core.Classifier, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindLinear:
		c := &LinearClassifier{}
		if err := doc.decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case KindDecisionTree:
		c := &DecisionTree{}
		if err := doc.decode(c); err != nil {
			return nil, err
		}
		return c, nil
	case KindSVC:
		c := &SVC{}
		if err := doc.decode(c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a classifier kind", core.ErrArtifactLoad, doc.Kind)
	}
}
