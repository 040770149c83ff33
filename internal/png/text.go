package png

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrBadText is returned for tEXt keywords or values that violate the
// format: keywords are 1-79 bytes, and neither side may contain NUL.
var ErrBadText = errors.New("png: invalid tEXt entry")

// textData assembles a tEXt chunk's payload: keyword, NUL separator, value.
func textData(key, value string) ([]byte, error) {
	if len(key) == 0 || len(key) > 79 {
		return nil, fmt.Errorf("%w: keyword length %d, want 1-79", ErrBadText, len(key))
	}
	if bytes.IndexByte([]byte(key), 0) >= 0 {
		return nil, fmt.Errorf("%w: keyword contains NUL", ErrBadText)
	}
	if bytes.IndexByte([]byte(value), 0) >= 0 {
		return nil, fmt.Errorf("%w: value contains NUL", ErrBadText)
	}

	data := make([]byte, 0, len(key)+1+len(value))
	data = append(data, key...)
	data = append(data, 0)
	data = append(data, value...)
	return data, nil
}

// ParseText splits a tEXt chunk's data into keyword and value.
func ParseText(c Chunk) (key, value string, err error) {
	if c.Type != "tEXt" {
		return "", "", fmt.Errorf("%w: chunk type %s", ErrBadText, c.Type)
	}
	sep := bytes.IndexByte(c.Data, 0)
	if sep < 0 {
		return "", "", fmt.Errorf("%w: missing keyword separator", ErrBadText)
	}
	return string(c.Data[:sep]), string(c.Data[sep+1:]), nil
}
