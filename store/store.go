// Package store keeps identities in a data directory: each identity is an
// armored secret-key file named by fingerprint, with the certificate
// alongside it in "<fingerprint>_pub". Parsed certificates are cached.
package store

import (
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	ssid "github.com/cyphernet-dao/go-ssid"
	"github.com/cyphernet-dao/go-ssid/algo"
	"github.com/cyphernet-dao/go-ssid/algo/ristretto"
	"github.com/cyphernet-dao/go-ssid/bindle"
)

const pubSuffix = "_pub"

const cacheSize = 64

// ErrNotFound indicates no identity with the requested fingerprint.
var ErrNotFound = errors.New("store: identity not found")

// Store is a filesystem identity ring.
type Store struct {
	dir   string
	certs *lru.Cache[string, *ssid.IdCert]
}

// New opens (creating if needed) the identity ring at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	certs, err := lru.New[string, *ssid.IdCert](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, certs: certs}, nil
}

// Dir is the ring's data directory.
func (st *Store) Dir() string { return st.dir }

func (st *Store) skPath(fp string) string   { return filepath.Join(st.dir, fp) }
func (st *Store) certPath(fp string) string { return filepath.Join(st.dir, fp+pubSuffix) }

// SaveIdentity writes the holder's secret key and certificate as armored
// files named by the current fingerprint.
func (st *Store) SaveIdentity(s *ssid.Ssi) error {
	sk, ok := s.Sk.(ristretto.SecretKey)
	if !ok {
		return errors.Errorf("store: unsupported key algorithm %d", s.Sk.Code())
	}
	fp := s.Fingerprint().String()
	skb := bindle.New(sk)
	if err := os.WriteFile(st.skPath(fp), []byte(skb.String()), 0o600); err != nil {
		return errors.Wrap(err, "writing secret key")
	}
	certb := bindle.New(s.Cert)
	if err := os.WriteFile(st.certPath(fp), []byte(certb.String()), 0o644); err != nil {
		return errors.Wrap(err, "writing certificate")
	}
	st.certs.Add(fp, &s.Cert)
	return nil
}

// Fingerprints lists the fingerprints of all stored identities.
func (st *Store) Fingerprints() ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading data directory")
	}
	var fps []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, pubSuffix) {
			continue
		}
		fp := strings.TrimSuffix(name, pubSuffix)
		if _, err := algo.ParseFingerprint(fp); err != nil {
			continue
		}
		fps = append(fps, fp)
	}
	return fps, nil
}

// Cert loads the certificate stored under a fingerprint.
func (st *Store) Cert(fp string) (*ssid.IdCert, error) {
	if cert, ok := st.certs.Get(fp); ok {
		return cert, nil
	}
	data, err := os.ReadFile(st.certPath(fp))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading certificate")
	}
	b, err := bindle.Parse[ssid.IdCert](string(data))
	if err != nil {
		return nil, err
	}
	cert := b.Unbindle()
	st.certs.Add(fp, &cert)
	return &cert, nil
}

// Identity loads the full handle (secret key plus certificate) stored
// under a fingerprint.
func (st *Store) Identity(fp string) (*ssid.Ssi, error) {
	cert, err := st.Cert(fp)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(st.skPath(fp))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading secret key")
	}
	b, err := bindle.Parse[ristretto.SecretKey](string(data))
	if err != nil {
		return nil, err
	}
	return &ssid.Ssi{Sk: b.Unbindle(), Cert: *cert}, nil
}
