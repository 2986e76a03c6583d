// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// AsyncLogger is an io.WriteCloser that hands every write to a background
// goroutine, so workers logging creation failures never block on the log
// file. Writes are dropped, with a warning on stderr, while the buffer is
// full.
type AsyncLogger struct {
	w       io.WriteCloser
	buf     chan []byte
	wg      sync.WaitGroup
	closeMu sync.RWMutex
	closed  bool
}

// NewAsyncLogger starts the background writer for w with room for bufferSize
// pending writes.
func NewAsyncLogger(w io.WriteCloser, bufferSize int) *AsyncLogger {
	a := &AsyncLogger{
		w:   w,
		buf: make(chan []byte, bufferSize),
	}
	a.wg.Add(1)
	go a.loop()
	return a
}

func (a *AsyncLogger) loop() {
	defer a.wg.Done()
	for p := range a.buf {
		if _, err := a.w.Write(p); err != nil {
			fmt.Fprintf(os.Stderr, "asynclogger: failed to write log: %v\n", err)
		}
	}
}

// Write queues a copy of p. It never blocks.
func (a *AsyncLogger) Write(p []byte) (int, error) {
	a.closeMu.RLock()
	defer a.closeMu.RUnlock()
	if a.closed {
		return 0, os.ErrClosed
	}

	// The caller may reuse p once Write returns.
	cp := make([]byte, len(p))
	copy(cp, p)
	select {
	case a.buf <- cp:
	default:
		fmt.Fprintln(os.Stderr, "asynclogger: log buffer is full, dropping message.")
	}
	return len(p), nil
}

// Close drains the pending writes and closes the underlying writer.
func (a *AsyncLogger) Close() error {
	a.closeMu.Lock()
	if a.closed {
		a.closeMu.Unlock()
		return nil
	}
	a.closed = true
	close(a.buf)
	a.closeMu.Unlock()

	a.wg.Wait()
	return a.w.Close()
}
