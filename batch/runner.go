package batch

import (
	"io"
	"log/slog"
)

// Pass identifies the stage reported to a progress callback.
type Pass int

const (
	PassClassify Pass = iota
	PassProcess
)

func (p Pass) String() string {
	if p == PassClassify {
		return "classify"
	}

	return "process"
}

// Runner executes jobs. The zero value is usable and silent.
type Runner struct {
	Logger *slog.Logger
	// Progress, if set, is called after every record of each pass.
	Progress func(pass Pass, done, total int)
}

// Run classifies and processes paths with job. It never stops early: every
// path ends up in Outcome.Malformed, as rows, or as a Failure.
func (r Runner) Run(job Job, paths []string) Outcome {
	log := r.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	log = log.With("job", job.Name())
	out := Outcome{Header: job.Header()}

	for k, path := range paths {
		if err := job.Classify(path); err != nil {
			log.Warn("record.malformed", "path", path, "kind", KindOf(err), "err", err)
			out.Malformed = append(out.Malformed, path)
		} else {
			out.Usable = append(out.Usable, path)
		}

		r.report(PassClassify, k+1, len(paths))
	}

	log.Info("batch.classified", "total", len(paths), "usable", len(out.Usable), "malformed", len(out.Malformed))

	for k, path := range out.Usable {
		rows, err := job.Process(path)
		if err != nil {
			f := Failure{Path: path, Kind: KindOf(err), Err: err}
			log.Warn("record.failed", "path", path, "kind", f.Kind, "err", err)
			out.Failures = append(out.Failures, f)
		} else {
			log.Debug("record.processed", "path", path, "rows", len(rows))
			out.Rows = append(out.Rows, rows...)
		}

		r.report(PassProcess, k+1, len(out.Usable))
	}

	log.Info("batch.done", "processed", out.Processed(), "failed", len(out.Failures), "rows", len(out.Rows))

	return out
}

func (r Runner) report(pass Pass, done, total int) {
	if r.Progress != nil {
		r.Progress(pass, done, total)
	}
}
