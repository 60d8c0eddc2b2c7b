package bindle

import (
	"encoding/ascii85"
	"fmt"
	"sort"
	"strings"

	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/strict"
)

const armorWidth = 64

// String renders the ASCII-armored text form: BEGIN/END markers around
// headers (always Id, optionally Mnemonic, any content-supplied headers,
// one Signed-By per attachment) and the Base85-encoded content wrapped at
// 64 columns.
func (b *Bindle[C, P]) String() string {
	p := P(&b.content)
	var sb strings.Builder
	fmt.Fprintf(&sb, "-----BEGIN %s-----\n", p.PlateTitle())
	fmt.Fprintf(&sb, "Id: %s\n", b.id)
	if m := p.BindleMnemonic(); m != "" {
		fmt.Fprintf(&sb, "Mnemonic: %s\n", m)
	}
	headers := p.BindleHeaders()
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, headers[k])
	}
	for i := range b.sigs {
		fmt.Fprintf(&sb, "Signed-By: %s\n", b.sigs[i].Identity().Key)
	}
	sb.WriteByte('\n')

	data, err := b.contentBytes()
	if err != nil {
		// Content already confined at construction; re-encoding it cannot
		// grow past the bound.
		panic(err)
	}
	body := encodeBase85(data)
	for len(body) > armorWidth {
		sb.WriteString(body[:armorWidth])
		sb.WriteByte('\n')
		body = body[armorWidth:]
	}
	sb.WriteString(body)
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, "\n-----END %s-----\n", p.PlateTitle())
	return sb.String()
}

// Parse reads the ASCII-armored text form back. Attached signatures are
// not reconstructed on this path; the binary form carries them.
func Parse[C any, P ContentPtr[C]](text string) (*Bindle[C, P], error) {
	var content C
	p := P(&content)

	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	first := fmt.Sprintf("-----BEGIN %s-----", p.PlateTitle())
	last := fmt.Sprintf("-----END %s-----", p.PlateTitle())
	if len(lines) < 3 || lines[0] != first || lines[len(lines)-1] != last {
		return nil, ErrArmorStructure
	}
	lines = lines[1 : len(lines)-1]

	var headerID algo.PubKey
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}
		if v, ok := strings.CutPrefix(line, "Id: "); ok {
			pk, err := algo.ParsePubKey(v)
			if err != nil {
				return nil, &IDHeaderError{Value: v, Err: err}
			}
			headerID = pk
		}
	}

	var armor strings.Builder
	for ; i < len(lines); i++ {
		if lines[i] != "" {
			armor.WriteString(lines[i])
		}
	}
	data, err := decodeBase85(armor.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBase85, err)
	}
	if len(data) > strict.MaxConfined {
		return nil, strict.ErrSizeExceeded
	}

	r := strict.NewReader(data)
	if err := p.DecodeStrict(r); err != nil {
		return nil, &DeserializeError{Err: err}
	}
	if err := r.Done(); err != nil {
		return nil, &DeserializeError{Err: err}
	}

	id := p.BindleID()
	if headerID != nil && !algo.Equal(id, headerID) {
		return nil, &MismatchedIDError{Actual: id, Expected: headerID}
	}
	return &Bindle[C, P]{id: id, content: content}, nil
}

func encodeBase85(data []byte) string {
	out := make([]byte, ascii85.MaxEncodedLen(len(data)))
	n := ascii85.Encode(out, data)
	return string(out[:n])
}

func decodeBase85(s string) ([]byte, error) {
	// 'z' groups expand to four bytes each, so size for the worst case.
	out := make([]byte, 4*len(s)+4)
	ndst, _, err := ascii85.Decode(out, []byte(s), true)
	if err != nil {
		return nil, err
	}
	return out[:ndst], nil
}
