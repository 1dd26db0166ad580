package objcli

import (
	"io"
	"strings"
)

// SeekerLength is a utility function which uses the given seeker to determine the length of the underlying data.
func SeekerLength(seeker io.Seeker) (int64, error) {
	length, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}

	_, err = seeker.Seek(0, io.SeekStart)
	if err != nil {
		return 0, err
	}

	return length, nil
}

// ReadAllSeekable reads all the data from the given seeker, rewinding it before and after reading.
func ReadAllSeekable(body io.ReadSeeker) ([]byte, error) {
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	_, err = body.Seek(0, io.SeekStart)

	return data, err
}

// LowerKeys returns a copy of the given metadata with lower-cased keys, <nil> values are dropped.
func LowerKeys[V string | *string](metadata map[string]V) map[string]string {
	lowered := make(map[string]string, len(metadata))

	for key, value := range metadata {
		switch v := any(value).(type) {
		case string:
			lowered[strings.ToLower(key)] = v
		case *string:
			if v != nil {
				lowered[strings.ToLower(key)] = *v
			}
		}
	}

	return lowered
}
