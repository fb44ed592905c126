// Package batch runs a calibration job over many record files and collects
// the rows it produces without letting one bad record abort the run.
//
// A run has two passes. The classification pass sorts every path into
// malformed or usable; a path that cannot be opened counts as malformed.
// The processing pass calls the job on each usable path in order and either
// appends its rows or records a Failure whose Kind tells an insufficient
// scan from a fit that did not converge.
//
// # Usage
//
//	r := batch.Runner{Logger: logger.L(), Progress: bar.Update}
//	out := r.Run(job, paths)
//	for _, f := range out.Failures {
//	    fmt.Println(f.Path, f.Kind, f.Err)
//	}
package batch
