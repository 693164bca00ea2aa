// Persistent log of probe runs.
//
// A RunLog is an append-only file with one JSON line per suite run, so
// results can be compared across toolchain or dependency upgrades. Each
// line carries the tool version, the Go runtime that produced it, and the
// full outcome set. Appends take an exclusive OS-level lock and reads a
// shared one, so concurrent invocations against the same log file never
// observe a torn line. Reads go through SectionReader so they do not
// disturb the append offset of the shared handle.
package linkprobe

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// maxRunLine bounds a single log line during scanning. A full suite run
// serialises to a few kilobytes; anything near this limit is corruption.
const maxRunLine = 1 << 20

// RunRecord is one suite invocation as stored in the run log.
type RunRecord struct {
	Timestamp int64     `json:"ts"`
	Tool      string    `json:"tool"`
	GoVersion string    `json:"go"`
	Outcomes  []Outcome `json:"outcomes"`
}

// RunLog is an open handle on a run log file.
type RunLog struct {
	f    *os.File
	lock *fileLock
	mu   sync.Mutex
}

// OpenRunLog opens or creates the run log at path. The file is opened in
// append mode: the kernel positions every write at end of file, so two
// processes appending through separate handles cannot overwrite each other.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &RunLog{f: f, lock: &fileLock{f: f}}, nil
}

// Append records one suite run. The record is stamped with the current
// time, tool version, and Go runtime, then written as a single line in one
// Write call so a crash cannot persist half a record.
func (l *RunLog) Append(outcomes []Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return ErrLogClosed
	}

	if err := l.lock.Lock(LockExclusive); err != nil {
		return err
	}
	defer l.lock.Unlock()

	rec := RunRecord{
		Timestamp: time.Now().Unix(),
		Tool:      Version,
		GoVersion: runtime.Version(),
		Outcomes:  outcomes,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if _, err := l.f.Write(data); err != nil {
		return err
	}
	return l.f.Sync()
}

// Runs returns every recorded run in file order (oldest first). Lines that
// do not parse are skipped rather than failing the whole read; a torn or
// foreign line does not make the rest of the log unreadable.
func (l *RunLog) Runs() ([]RunRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil, ErrLogClosed
	}

	if err := l.lock.Lock(LockShared); err != nil {
		return nil, err
	}
	defer l.lock.Unlock()

	info, err := l.f.Stat()
	if err != nil {
		return nil, err
	}

	section := io.NewSectionReader(l.f, 0, info.Size())
	scanner := bufio.NewScanner(section)
	scanner.Buffer(make([]byte, 64*1024), maxRunLine)

	var runs []RunRecord
	for scanner.Scan() {
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}
		var rec RunRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		runs = append(runs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Last returns the most recent run, or ErrNoRuns if the log is empty.
func (l *RunLog) Last() (*RunRecord, error) {
	runs, err := l.Runs()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNoRuns
	}
	return &runs[len(runs)-1], nil
}

// Close releases the lock and the file handle. Further calls on the log
// return ErrLogClosed; Close itself is idempotent.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}

	l.lock.Unlock()
	l.lock.setFile(nil)

	err := l.f.Close()
	l.f = nil
	return err
}
