package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/deliverydash/deliverydash/game/engine"
	"github.com/deliverydash/deliverydash/game/service"
)

// archiveRecord is one line of the exported history: either a completed or
// a failed delivery, tagged so readers can tell them apart.
type archiveRecord struct {
	Kind      string                 `json:"kind"` // "completed" or "failed"
	SessionID string                 `json:"session_id"`
	Completed *engine.CompletedOrder `json:"completed,omitempty"`
	Failed    *engine.FailedOrder    `json:"failed,omitempty"`
}

// ArchiveHistory exports a session's full delivery history as
// zstd-compressed JSONL, one record per delivery in chronological order.
// Returns the number of records written.
func ArchiveHistory(session *service.Session, path string) (int, error) {
	if session == nil {
		return 0, fmt.Errorf("session cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return writeArchive(f, session)
}

// writeArchive streams the session's history records into w.
func writeArchive(w io.Writer, session *service.Session) (written int, retErr error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, err
	}
	// The encoder's final flush happens at Close; a swallowed error there
	// means a truncated archive reported as success.
	defer func() {
		if cerr := enc.Close(); cerr != nil && retErr == nil {
			retErr = cerr
		}
	}()

	bw := bufio.NewWriter(enc)
	state := session.Engine.GetState()

	write := func(rec archiveRecord) error {
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		written++
		return nil
	}

	for i := range state.CompletedDeliveries {
		rec := archiveRecord{Kind: "completed", SessionID: session.ID, Completed: &state.CompletedDeliveries[i]}
		if err := write(rec); err != nil {
			return written, err
		}
	}
	for i := range state.FailedDeliveries {
		rec := archiveRecord{Kind: "failed", SessionID: session.ID, Failed: &state.FailedDeliveries[i]}
		if err := write(rec); err != nil {
			return written, err
		}
	}

	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}

// ReadArchive loads an exported history file back into records
func ReadArchive(path string) ([]engine.CompletedOrder, []engine.FailedOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var completed []engine.CompletedOrder
	var failed []engine.FailedOrder
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec archiveRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, nil, fmt.Errorf("malformed archive line: %w", err)
		}
		switch rec.Kind {
		case "completed":
			if rec.Completed != nil {
				completed = append(completed, *rec.Completed)
			}
		case "failed":
			if rec.Failed != nil {
				failed = append(failed, *rec.Failed)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return completed, failed, nil
}

// ArchiveFilename builds a timestamped export name for a session
func ArchiveFilename(sessionID string) string {
	return fmt.Sprintf("%s-%s.jsonl.zst", sessionID, time.Now().UTC().Format("20060102T150405"))
}
