// Package convert runs the image-to-memfile pipeline:
//
//	load -> resize -> mirror -> quantize -> format/write
//
// Stages run once, in order, on a single goroutine. Any stage error aborts
// the run; the output file may then hold partial data and must not be used.
package convert
