// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

const spinnerTick = 100 * time.Millisecond

// Spinner shows progress of a single blocking step. On a terminal it
// animates; otherwise it prints one line when the step starts and one when
// it ends.
type Spinner struct {
	writer    io.Writer
	stepName  string
	warnAfter time.Duration
	startTime time.Time
	bar       *progressbar.ProgressBar
	done      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// StartSpinner begins a new step. A warning is shown once the step has
// taken longer than [warnAfter]; zero disables it.
func StartSpinner(w io.Writer, stepName string, warnAfter time.Duration) *Spinner {
	s := &Spinner{
		writer:    w,
		stepName:  stepName,
		warnAfter: warnAfter,
		startTime: time.Now(),
		done:      make(chan struct{}),
	}
	if !isTerminal(w) {
		_, _ = fmt.Fprintf(w, "%s...\n", stepName)
		return s
	}
	s.bar = progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(stepName),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	s.wg.Add(1)
	go s.spin()
	return s
}

func (s *Spinner) spin() {
	defer s.wg.Done()
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()
	warned := false
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !warned && s.warnAfter > 0 && s.Elapsed() > s.warnAfter {
				s.bar.Describe(fmt.Sprintf("%s (taking longer than expected)", s.stepName))
				warned = true
			}
			_ = s.bar.Add(1)
		}
	}
}

// Elapsed returns the elapsed time for the step
func (s *Spinner) Elapsed() time.Duration {
	return time.Since(s.startTime)
}

// Stop ends the step, reporting success or [err]. Only the first call has effect.
func (s *Spinner) Stop(err error) {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		if s.bar != nil {
			_ = s.bar.Finish()
		}
		if err != nil {
			_, _ = fmt.Fprintf(s.writer, "✗ %s (%.1fs) - FAILED\n", s.stepName, s.Elapsed().Seconds())
			return
		}
		_, _ = fmt.Fprintf(s.writer, "✓ %s (%.1fs)\n", s.stepName, s.Elapsed().Seconds())
	})
}
