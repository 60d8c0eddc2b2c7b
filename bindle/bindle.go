// Package bindle wraps binary content in a generic, identified,
// optionally-signed envelope that can be persisted as a magic-prefixed
// binary file or exchanged as ASCII-armored text.
//
// The container is generic over any content supplying the Content
// capability (produce its own id, its armor title, its file magic, and a
// strict serialization); it carries no content-specific logic of its own.
package bindle

import (
	"crypto/sha256"
	"io"
	"os"

	"github.com/pkg/errors"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/strict"
)

// Content is the identity-bearing capability bindle content must supply.
type Content interface {
	// BindleMagic is the 4-byte file magic of this content type.
	BindleMagic() [4]byte
	// PlateTitle is the ASCII armor BEGIN/END title.
	PlateTitle() string
	// BindleID is the content's self-declared id.
	BindleID() algo.PubKey
	// BindleMnemonic is the optional Mnemonic armor header ("" for none).
	BindleMnemonic() string
	// BindleHeaders supplies extra armor headers.
	BindleHeaders() map[string]string
	EncodeStrict(w *strict.Writer) error
}

// ContentPtr constrains a pointer to content that can also decode itself.
type ContentPtr[C any] interface {
	*C
	Content
	DecodeStrict(r *strict.Reader) error
}

// Bindle is an immutable (id, content, signatures) triple. The id always
// equals the content's self-declared bindle id; attaching a signature
// produces a new Bindle.
type Bindle[C any, P ContentPtr[C]] struct {
	id      algo.PubKey
	content C
	sigs    []ssid.SigCert
}

// New wraps content in an unsigned bindle.
func New[C any, P ContentPtr[C]](content C) *Bindle[C, P] {
	return &Bindle[C, P]{id: P(&content).BindleID(), content: content}
}

// ID is the content's self-declared id.
func (b *Bindle[C, P]) ID() algo.PubKey { return b.id }

// Unbindle returns the wrapped content.
func (b *Bindle[C, P]) Unbindle() C { return b.content }

// Sigs returns the attached signature certificates in attachment order.
func (b *Bindle[C, P]) Sigs() []ssid.SigCert {
	return append([]ssid.SigCert{}, b.sigs...)
}

func (b *Bindle[C, P]) contentBytes() ([]byte, error) {
	w := strict.NewWriter()
	if err := P(&b.content).EncodeStrict(w); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// SignWith signs the content digest with the holder's current key and
// returns a new bindle carrying the additional attachment.
func (b *Bindle[C, P]) SignWith(rand io.Reader, signer *ssid.Ssi) (*Bindle[C, P], error) {
	data, err := b.contentBytes()
	if err != nil {
		return nil, err
	}
	sc, err := ssid.NewSigCert(rand, signer, sha256.Sum256(data))
	if err != nil {
		return nil, err
	}
	next := &Bindle[C, P]{id: b.id, content: b.content}
	next.sigs = append(append([]ssid.SigCert{}, b.sigs...), sc)
	return next, nil
}

// Encode renders the binary file form: the content-type magic followed by
// the strict serialization of the (id, content, signatures) triple.
func (b *Bindle[C, P]) Encode() ([]byte, error) {
	w := strict.NewWriter()
	w.Raw(b.id.Encode())
	if err := P(&b.content).EncodeStrict(w); err != nil {
		return nil, err
	}
	w.TinyLen(len(b.sigs))
	for i := range b.sigs {
		if err := b.sigs[i].EncodeStrict(w); err != nil {
			return nil, err
		}
	}
	body, err := w.Bytes()
	if err != nil {
		return nil, err
	}
	magic := P(&b.content).BindleMagic()
	return append(magic[:], body...), nil
}

// Decode parses the binary file form. The magic is validated byte-for-byte
// before any structural decode is attempted.
func Decode[C any, P ContentPtr[C]](data []byte) (*Bindle[C, P], error) {
	var content C
	p := P(&content)
	magic := p.BindleMagic()
	if len(data) < len(magic) || string(data[:len(magic)]) != string(magic[:]) {
		return nil, ErrMagic
	}
	body := data[len(magic):]
	if len(body) > strict.MaxConfined {
		return nil, strict.ErrSizeExceeded
	}
	r := strict.NewReader(body)
	id, err := algo.ReadPubKey(r)
	if err != nil {
		return nil, &DeserializeError{Err: err}
	}
	if err := p.DecodeStrict(r); err != nil {
		return nil, &DeserializeError{Err: err}
	}
	nsigs, err := r.TinyLen()
	if err != nil {
		return nil, &DeserializeError{Err: err}
	}
	var sigs []ssid.SigCert
	if nsigs > 0 {
		sigs = make([]ssid.SigCert, nsigs)
		for i := range sigs {
			if err := sigs[i].DecodeStrict(r); err != nil {
				return nil, &DeserializeError{Err: err}
			}
		}
	}
	if err := r.Done(); err != nil {
		return nil, &DeserializeError{Err: err}
	}
	actual := p.BindleID()
	if !algo.Equal(actual, id) {
		return nil, &MismatchedIDError{Actual: actual, Expected: id}
	}
	return &Bindle[C, P]{id: actual, content: content, sigs: sigs}, nil
}

// Save writes the binary file form to path.
func (b *Bindle[C, P]) Save(path string) error {
	data, err := b.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "saving bindle")
	}
	return nil
}

// Load reads the binary file form from path.
func Load[C any, P ContentPtr[C]](path string) (*Bindle[C, P], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "loading bindle")
	}
	return Decode[C, P](data)
}
