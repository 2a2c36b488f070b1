package classify

import (
	"math/rand"

	"mailsense/internal/vectorstore"
)

// kmeansSeed fixes the random source so classification of the same text
// is reproducible across runs
const kmeansSeed = 42

// maxIterations bounds Lloyd's algorithm; convergence on these small
// datasets happens in far fewer
const maxIterations = 100

// kmeans partitions vectors into k clusters and returns the assignment of
// each vector plus the final centroids. k must be in [1, len(vectors)].
func kmeans(vectors [][]float32, k int) ([]int, [][]float32) {
	rng := rand.New(rand.NewSource(kmeansSeed))
	dim := len(vectors[0])

	// initialize centroids from k distinct data points
	perm := rng.Perm(len(vectors))
	centroids := make([][]float32, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float32(nil), vectors[perm[i]]...)
	}

	assignments := make([]int, len(vectors))
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// recompute centroids as member means
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, v := range vectors {
			c := assignments[i]
			counts[c]++
			for d, val := range v {
				sums[c][d] += float64(val)
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// reseed an empty cluster from a random point
				centroids[c] = append([]float32(nil), vectors[rng.Intn(len(vectors))]...)
				continue
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] = float32(sums[c][d] / float64(counts[c]))
			}
		}
	}

	return assignments, centroids
}

func nearestCentroid(v []float32, centroids [][]float32) int {
	best := 0
	bestDist := vectorstore.EuclideanDistance(v, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d := vectorstore.EuclideanDistance(v, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// representatives returns, for each cluster, the index of the member
// vector nearest its centroid, or -1 for clusters without members
func representatives(vectors [][]float32, assignments []int, centroids [][]float32) []int {
	reps := make([]int, len(centroids))
	best := make([]float64, len(centroids))
	for c := range reps {
		reps[c] = -1
	}
	for i, v := range vectors {
		c := assignments[i]
		d := vectorstore.EuclideanDistance(v, centroids[c])
		if reps[c] == -1 || d < best[c] {
			reps[c] = i
			best[c] = d
		}
	}
	return reps
}
