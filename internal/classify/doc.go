// Package classify groups a document's chunk embeddings into theme
// clusters and labels each theme with the generation model.
//
// Clustering is plain k-means with a fixed seed, so running the same
// document twice yields the same clusters. Each cluster is summarised by
// its representative chunk, the member closest to the centroid, and that
// chunk is what the model sees when producing the theme label.
package classify
