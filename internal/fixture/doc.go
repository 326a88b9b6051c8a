// Package fixture provides YAML-authored document corpora for tests.
//
// A corpus file describes a set of intake documents (status, category,
// reviewer override, extracted and edited field maps) plus the exclusion
// tallies the aggregator is expected to report. Tests load a corpus, run the
// agreement engine over it, and compare the resulting report against a
// golden file.
package fixture
