package rating

import (
	"math"

	"randevu/models"
)

const (
	// Below this many reviews the simple average is blended toward a neutral
	// prior so one or two reviews cannot produce an extreme score.
	smallSampleThreshold = 10
	blendWeight          = 0.8
	neutralPrior         = 2.5

	// z for a 95% confidence level, used by the Wilson lower bound.
	z95 = 1.96

	// Ratings of 4 or 5 stars count as positive for the Wilson estimate.
	positiveThreshold = 4
)

// Compute derives the displayed rating from a shop's published reviews.
// Zero reviews yield {0, 0}. Small samples are blended toward the neutral
// prior; larger samples take the better of the simple average and a
// Wilson-score lower bound scaled back to the 0-5 range, so a shop with many
// consistent positives is not punished by a single outlier.
func Compute(reviews []models.Review) models.ShopRating {
	if len(reviews) == 0 {
		return models.ShopRating{Average: 0, Count: 0}
	}

	count := len(reviews)
	distribution := make(map[int]int, 5)
	sum := 0
	positive := 0
	for _, r := range reviews {
		sum += r.Rating
		distribution[r.Rating]++
		if r.Rating >= positiveThreshold {
			positive++
		}
	}
	simple := float64(sum) / float64(count)

	var final float64
	if count < smallSampleThreshold {
		final = simple*blendWeight + neutralPrior*(1-blendWeight)
	} else {
		bayesian := wilsonLowerBound(positive, count, z95) * 5
		final = math.Max(simple, bayesian)
	}

	return models.ShopRating{
		Average:      roundToOneDecimal(final),
		Count:        count,
		Distribution: distribution,
	}
}

// wilsonLowerBound returns the lower bound of the Wilson score confidence
// interval for the fraction positive/n.
func wilsonLowerBound(positive, n int, z float64) float64 {
	if n == 0 {
		return 0
	}
	phat := float64(positive) / float64(n)
	nf := float64(n)
	denominator := 1 + z*z/nf
	center := phat + z*z/(2*nf)
	margin := z * math.Sqrt((phat*(1-phat)+z*z/(4*nf))/nf)
	return (center - margin) / denominator
}

func roundToOneDecimal(x float64) float64 {
	return math.Round(x*10) / 10
}
