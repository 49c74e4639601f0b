package wordfreq

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// cBpackFormat is the header format tag of wordfreq frequency files.
const cBpackFormat = "cB"

// decodeCBPack reads a cBpack stream: a header map followed by buckets of
// words, where bucket i holds words whose frequency is -i centibels.
func decodeCBPack(r io.Reader) ([][]string, error) {
	dec := msgpackReader{r: bufio.NewReader(r)}
	root, err := dec.next()
	if err != nil {
		return nil, fmt.Errorf("failed to decode msgpack: %w", err)
	}
	items, ok := root.([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("unexpected cBpack root %T", root)
	}
	header, ok := items[0].(map[string]any)
	if !ok || header["format"] != cBpackFormat {
		return nil, fmt.Errorf("missing cBpack header")
	}

	buckets := make([][]string, 0, len(items)-1)
	for i, item := range items[1:] {
		raw, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("bucket %d is %T, want array", i, item)
		}
		words := make([]string, 0, len(raw))
		for _, w := range raw {
			s, ok := w.(string)
			if !ok {
				return nil, fmt.Errorf("bucket %d holds %T, want string", i, w)
			}
			words = append(words, s)
		}
		buckets = append(buckets, words)
	}
	return buckets, nil
}

// msgpackReader decodes the msgpack subset used by wordfreq data files.
// Map keys must be strings.
type msgpackReader struct {
	r *bufio.Reader
}

var errMapKey = errors.New("non-string map key")

func (d *msgpackReader) next() (any, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch {
	case b <= 0x7f:
		return int64(b), nil
	case b >= 0xe0:
		return int64(int8(b)), nil
	case b&0xe0 == 0xa0:
		return d.str(int(b & 0x1f))
	case b&0xf0 == 0x90:
		return d.array(int(b & 0x0f))
	case b&0xf0 == 0x80:
		return d.dict(int(b & 0x0f))
	}

	switch b {
	case 0xc0:
		return nil, nil
	case 0xc2, 0xc3:
		return b == 0xc3, nil
	case 0xc4, 0xc5, 0xc6:
		n, err := d.unsigned(1 << (b - 0xc4))
		if err != nil {
			return nil, err
		}
		return d.bytes(int(n))
	case 0xca:
		bits, err := d.unsigned(4)
		return float64(math.Float32frombits(uint32(bits))), err
	case 0xcb:
		bits, err := d.unsigned(8)
		return math.Float64frombits(bits), err
	case 0xcc, 0xcd, 0xce, 0xcf:
		n, err := d.unsigned(1 << (b - 0xcc))
		return int64(n), err
	case 0xd0, 0xd1, 0xd2, 0xd3:
		size := 1 << (b - 0xd0)
		n, err := d.unsigned(size)
		shift := 64 - 8*size
		return int64(n<<shift) >> shift, err
	case 0xd9, 0xda, 0xdb:
		n, err := d.unsigned(1 << (b - 0xd9))
		if err != nil {
			return nil, err
		}
		return d.str(int(n))
	case 0xdc, 0xdd:
		n, err := d.unsigned(2 << (b - 0xdc))
		if err != nil {
			return nil, err
		}
		return d.array(int(n))
	case 0xde, 0xdf:
		n, err := d.unsigned(2 << (b - 0xde))
		if err != nil {
			return nil, err
		}
		return d.dict(int(n))
	}
	return nil, fmt.Errorf("unsupported msgpack prefix 0x%x", b)
}

func (d *msgpackReader) array(n int) ([]any, error) {
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.next()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (d *msgpackReader) dict(n int) (map[string]any, error) {
	out := make(map[string]any, n)
	for i := 0; i < n; i++ {
		k, err := d.next()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %T", errMapKey, k)
		}
		v, err := d.next()
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (d *msgpackReader) str(n int) (string, error) {
	buf, err := d.bytes(n)
	return string(buf), err
}

func (d *msgpackReader) bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// unsigned reads a big-endian unsigned integer of size bytes.
func (d *msgpackReader) unsigned(size int) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(d.r, buf[8-size:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
