package archive

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
)

// encodeJSONL marshals each record onto its own line.
func encodeJSONL[T any](records []T) ([]byte, error) {
	var buf bytes.Buffer
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// decodeJSONL unmarshals each non-empty line into a T. Lines that are not
// valid JSON or do not decode into T are skipped and counted.
func decodeJSONL[T any](data []byte) ([]T, int, error) {
	var (
		out     []T
		skipped int
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("scanning: %w", err)
	}
	return out, skipped, nil
}
