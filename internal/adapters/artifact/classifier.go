package artifact

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mikey/pd-screen/internal/core"
)

// classes maps the sign of a decision value to a label; classes[1] wins when positive
type classes []int

func (c *classes) normalize() error {
	if len(*c) == 0 {
		*c = classes{0, 1}
	}
	if len(*c) != 2 {
		return fmt.Errorf("binary classifier needs 2 classes, got %d", len(*c))
	}
	return nil
}

func (c classes) pick(decision float64) int {
	if decision > 0 {
		return c[1]
	}
	return c[0]
}

// LinearClassifier is a fitted linear model (logistic regression, linear SVM)
type LinearClassifier struct {
	Coef      []float64 `yaml:"coef"`
	Intercept float64   `yaml:"intercept"`
	Classes   classes   `yaml:"classes"`
}

func (c *LinearClassifier) validate() error {
	if err := checkVector("coef", c.Coef); err != nil {
		return err
	}
	if err := checkFinite("intercept", c.Intercept); err != nil {
		return err
	}
	return c.Classes.normalize()
}

// Predict implements core.Classifier
func (c *LinearClassifier) Predict(row []float64) (int, error) {
	if err := checkRow(row); err != nil {
		return 0, err
	}
	return c.Classes.pick(dot(c.Coef, row) + c.Intercept), nil
}

// DecisionTree is a fitted tree stored as a flat node list rooted at index 0
type DecisionTree struct {
	Nodes []TreeNode `yaml:"nodes"`
}

// TreeNode is one split or leaf of a DecisionTree
type TreeNode struct {
	FeatureIdx int     `yaml:"feature_idx" json:"feature_idx"`
	Threshold  float64 `yaml:"threshold" json:"threshold"`
	LeftChild  int     `yaml:"left_child" json:"left_child"`
	RightChild int     `yaml:"right_child" json:"right_child"`
	ClassLabel int     `yaml:"class_label" json:"class_label"`
	IsLeaf     bool    `yaml:"is_leaf" json:"is_leaf"`
}

func (dt *DecisionTree) validate() error {
	if len(dt.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}
	for i, node := range dt.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= core.FeatureCount {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(dt.Nodes) {
			return fmt.Errorf("node %d: invalid left child %d", i, node.LeftChild)
		}
		if node.RightChild <= i || node.RightChild >= len(dt.Nodes) {
			return fmt.Errorf("node %d: invalid right child %d", i, node.RightChild)
		}
	}
	return nil
}

// Predict implements core.Classifier. Children always point forward, so
// the walk ends within len(Nodes) steps.
func (dt *DecisionTree) Predict(row []float64) (int, error) {
	if err := checkRow(row); err != nil {
		return 0, err
	}
	idx := 0
	for steps := 0; steps <= len(dt.Nodes); steps++ {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if row[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
	return 0, errors.New("invalid tree state")
}

// SVC is a fitted kernel support vector classifier
type SVC struct {
	Kernel         string      `yaml:"kernel"`
	Gamma          float64     `yaml:"gamma"`
	Coef0          float64     `yaml:"coef0"`
	Degree         int         `yaml:"degree"`
	SupportVectors [][]float64 `yaml:"support_vectors"`
	DualCoef       []float64   `yaml:"dual_coef"`
	Intercept      float64     `yaml:"intercept"`
	Classes        classes     `yaml:"classes"`
}

func (s *SVC) validate() error {
	s.Kernel = strings.ToLower(strings.TrimSpace(s.Kernel))
	if s.Kernel == "" {
		s.Kernel = "rbf"
	}
	switch s.Kernel {
	case "linear", "rbf", "poly", "sigmoid":
	default:
		return fmt.Errorf("unsupported kernel %q", s.Kernel)
	}
	if s.Kernel != "linear" && s.Gamma <= 0 {
		return fmt.Errorf("gamma must be positive for %s kernel", s.Kernel)
	}
	if s.Kernel == "poly" && s.Degree <= 0 {
		s.Degree = 3
	}
	if len(s.SupportVectors) == 0 {
		return errors.New("no support vectors")
	}
	if len(s.DualCoef) != len(s.SupportVectors) {
		return fmt.Errorf("dual_coef has %d values for %d support vectors", len(s.DualCoef), len(s.SupportVectors))
	}
	for i, sv := range s.SupportVectors {
		if err := checkVector(fmt.Sprintf("support_vectors[%d]", i), sv); err != nil {
			return err
		}
	}
	if err := checkFinite("dual_coef", s.DualCoef...); err != nil {
		return err
	}
	if err := checkFinite("intercept", s.Intercept); err != nil {
		return err
	}
	return s.Classes.normalize()
}

// Predict implements core.Classifier
func (s *SVC) Predict(row []float64) (int, error) {
	if err := checkRow(row); err != nil {
		return 0, err
	}
	decision := s.Intercept
	for i, sv := range s.SupportVectors {
		decision += s.DualCoef[i] * s.kernel(sv, row)
	}
	if math.IsNaN(decision) {
		return 0, errors.New("decision value is NaN")
	}
	return s.Classes.pick(decision), nil
}

func (s *SVC) kernel(a, b []float64) float64 {
	switch s.Kernel {
	case "linear":
		return dot(a, b)
	case "poly":
		return math.Pow(s.Gamma*dot(a, b)+s.Coef0, float64(s.Degree))
	case "sigmoid":
		return math.Tanh(s.Gamma*dot(a, b) + s.Coef0)
	default:
		var d2 float64
		for i := range a {
			d := a[i] - b[i]
			d2 += d * d
		}
		return math.Exp(-s.Gamma * d2)
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
