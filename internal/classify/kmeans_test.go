package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	vectors := [][]float32{
		{0.0, 0.1}, {0.1, 0.0}, {0.05, 0.05},
		{10.0, 10.1}, {10.1, 10.0},
	}

	assignments, centroids := kmeans(vectors, 2)
	require.Len(t, assignments, 5)
	require.Len(t, centroids, 2)

	// the three near-origin points share a cluster, the two far points
	// share the other
	assert.Equal(t, assignments[0], assignments[1])
	assert.Equal(t, assignments[0], assignments[2])
	assert.Equal(t, assignments[3], assignments[4])
	assert.NotEqual(t, assignments[0], assignments[3])
}

func TestKMeansDeterministic(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0}, {0.9, 0.1, 0}, {0, 1, 0}, {0, 0.9, 0.1}, {0, 0, 1},
	}

	a1, c1 := kmeans(vectors, 3)
	a2, c2 := kmeans(vectors, 3)

	assert.Equal(t, a1, a2)
	assert.Equal(t, c1, c2)
}

func TestKMeansSingleCluster(t *testing.T) {
	vectors := [][]float32{{1, 2}, {3, 4}, {5, 6}}

	assignments, centroids := kmeans(vectors, 1)
	for _, a := range assignments {
		assert.Equal(t, 0, a)
	}
	require.Len(t, centroids, 1)
	assert.InDelta(t, 3.0, centroids[0][0], 1e-6)
	assert.InDelta(t, 4.0, centroids[0][1], 1e-6)
}

func TestRepresentativesNearestToCentroid(t *testing.T) {
	vectors := [][]float32{
		{0, 0}, {0.1, 0}, {2, 2},
		{10, 10}, {10.5, 10},
	}
	assignments, centroids := kmeans(vectors, 2)
	reps := representatives(vectors, assignments, centroids)

	require.Len(t, reps, 2)
	for c, rep := range reps {
		require.GreaterOrEqual(t, rep, 0)
		assert.Equal(t, c, assignments[rep])
		// no member of the cluster is strictly closer than the
		// representative
		for i, a := range assignments {
			if a != c {
				continue
			}
			repDist := dist(vectors[rep], centroids[c])
			assert.GreaterOrEqual(t, dist(vectors[i], centroids[c])+1e-9, repDist)
		}
	}
}

func dist(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
