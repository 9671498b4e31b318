// Package script groups languages by the character-frequency profile of their
// corpora, as a proxy for shared or compatible writing systems.
//
// # Similarity
//
// Counts are normalized to probabilities per language. Two profiles are
// compared over their shared alphabet by summing exp(log p[c] + log q[c]),
// a product of probabilities taken in the log domain. Disjoint alphabets score
// exactly 0.
//
// # Clustering
//
// Cluster is a greedy single pass. Each language is compared against one
// representative per existing cluster, the cluster's first-inserted member,
// and joins the best cluster when the score exceeds Options.Threshold;
// otherwise it starts a new one. Membership is never revised. Comparing
// against one representative rather than all members or a centroid is part of
// the algorithm's contract: results depend on it and on processing order.
package script
