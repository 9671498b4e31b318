// Package phoneme holds the immutable inventory model: phoneme records, the
// per-language inventory set and the builder that selects canonical rows.
//
// Inventory membership is decided by an explicit identity key. The default key
// is the glyph identifier, so two records with the same glyph id collapse into
// one entry no matter what their other fields say.
package phoneme
