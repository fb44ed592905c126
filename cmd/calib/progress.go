package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/cwbudde/algo-calib/batch"
)

const barWidth = 60

// progressBar redraws a single terminal line per update and ends it when
// a pass completes.
func progressBar(w io.Writer) func(pass batch.Pass, done, total int) {
	bar := progress.New(progress.WithWidth(barWidth), progress.WithFillCharacters('%', '-'))

	return func(pass batch.Pass, done, total int) {
		if total <= 0 {
			return
		}

		fmt.Fprintf(w, "\r%-8s %s", pass, bar.ViewAs(float64(done)/float64(total)))

		if done == total {
			fmt.Fprintln(w)
		}
	}
}
