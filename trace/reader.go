package trace

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ReadAll decodes a complete trace stream
func ReadAll(r io.Reader) (Header, []TickRecord, error) {
	var header Header

	dec, err := zstd.NewReader(r)
	if err != nil {
		return header, nil, errors.Wrap(err, "zstd reader")
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var ticks []TickRecord
	first := true
	for sc.Scan() {
		line := sc.Bytes()
		if first {
			first = false
			if err := json.Unmarshal(line, &header); err != nil {
				return header, nil, errors.Wrap(err, "decode header")
			}
			if header.Type != TypeHeader {
				return header, nil, errors.Errorf("expected header, got %q", header.Type)
			}
			continue
		}
		var rec TickRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return header, ticks, errors.Wrapf(err, "decode tick line %d", len(ticks)+2)
		}
		ticks = append(ticks, rec)
	}
	if err := sc.Err(); err != nil {
		return header, ticks, errors.Wrap(err, "scan trace")
	}
	if first {
		return header, nil, errors.New("empty trace")
	}
	return header, ticks, nil
}
