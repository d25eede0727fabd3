package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit partitions the dataset into train and test sets, stratified
// so both sides preserve the class proportions. The same seed always produces
// the same partition.
func TrainTestSplit(d Dataset, testFraction float64, seed int64) (train, test Dataset, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return Dataset{}, Dataset{}, fmt.Errorf("test fraction must be in (0,1), got %g", testFraction)
	}

	byClass := indicesByClass(d)
	for label, indices := range byClass {
		if len(indices) < 2 {
			return Dataset{}, Dataset{}, fmt.Errorf("class %d has %d samples; stratified split needs at least 2 per class", label, len(indices))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	var trainIdx, testIdx []int
	for _, label := range []int{0, 1} {
		indices := byClass[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		n := len(indices)
		nTest := int(math.Round(testFraction * float64(n)))
		// Both partitions keep at least one sample of every class.
		if nTest < 1 {
			nTest = 1
		}
		if nTest > n-1 {
			nTest = n - 1
		}
		testIdx = append(testIdx, indices[:nTest]...)
		trainIdx = append(trainIdx, indices[nTest:]...)
	}

	return d.Subset(trainIdx), d.Subset(testIdx), nil
}

// Fold is one cross-validation fold: train on TrainIdx, evaluate on TestIdx.
type Fold struct {
	TrainIdx []int
	TestIdx  []int
}

// StratifiedKFold assigns samples to k folds, stratified by class. It fails
// when any class has fewer samples than folds, since such folds could not
// preserve both classes.
func StratifiedKFold(d Dataset, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("need at least 2 folds, got %d", k)
	}

	byClass := indicesByClass(d)
	for label, indices := range byClass {
		if len(indices) < k {
			return nil, fmt.Errorf("class %d has %d samples, fewer than %d folds", label, len(indices), k)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	assignment := make([][]int, k)
	for _, label := range []int{0, 1} {
		indices := byClass[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		for i, idx := range indices {
			assignment[i%k] = append(assignment[i%k], idx)
		}
	}

	folds := make([]Fold, k)
	for f := 0; f < k; f++ {
		for other := 0; other < k; other++ {
			if other == f {
				folds[f].TestIdx = append(folds[f].TestIdx, assignment[other]...)
			} else {
				folds[f].TrainIdx = append(folds[f].TrainIdx, assignment[other]...)
			}
		}
	}
	return folds, nil
}

func indicesByClass(d Dataset) map[int][]int {
	byClass := map[int][]int{0: nil, 1: nil}
	for i, label := range d.Y {
		byClass[label] = append(byClass[label], i)
	}
	return byClass
}
