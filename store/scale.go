package store

import (
	"errors"
	"fmt"

	"scrolly/models"
)

// ComputeSharedScale pads the value extent of series, rounds it outward and maps it to [height, 0].
// The same series, padding and height always give the same scale.
func ComputeSharedScale(series *models.TimeSeries, padding, height float64) (models.SharedScale, error) {
	if series == nil || series.Len() == 0 {
		return models.SharedScale{}, ErrEmptySeries
	}
	if padding < 0 {
		return models.SharedScale{}, fmt.Errorf("negative padding %v", padding)
	}
	if height <= 0 {
		return models.SharedScale{}, errors.New("chart height must be positive")
	}
	min, max := series.Extent()
	return models.NewLinearScale(min, max, padding, height), nil
}
