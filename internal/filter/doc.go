// Package filter decodes the filter pipelines applied to chunked datasets.
//
// Only the filters found in UFF files in the wild are supported: DEFLATE
// ([Deflate]), byte shuffle ([Shuffle]) and the Fletcher-32 checksum
// ([Fletcher32Filter]). A [Pipeline] runs them in reverse order of
// application and skips filters masked off for an individual chunk. Any
// other filter ID is reported as an error when the pipeline is built.
package filter
