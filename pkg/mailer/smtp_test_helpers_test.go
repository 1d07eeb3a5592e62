package mailer_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"log"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/mailer"
)

type receivedMail struct {
	From string
	To   []string
	Data []byte
}

// testBackend accepts a single user and records every delivered message.
type testBackend struct {
	user, pass string

	mu    sync.Mutex
	mails []receivedMail
}

func (b *testBackend) Login(_ *smtp.ConnectionState, username, password string) (smtp.Session, error) {
	if username != b.user || password != b.pass {
		return nil, &smtp.SMTPError{Code: 535, EnhancedCode: smtp.EnhancedCode{5, 7, 8}, Message: "invalid credentials"}
	}
	return &testSession{backend: b}, nil
}

func (b *testBackend) AnonymousLogin(_ *smtp.ConnectionState) (smtp.Session, error) {
	return nil, smtp.ErrAuthRequired
}

func (b *testBackend) received() []receivedMail {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]receivedMail(nil), b.mails...)
}

type testSession struct {
	backend *testBackend
	cur     receivedMail
}

func (s *testSession) Reset()        { s.cur = receivedMail{} }
func (s *testSession) Logout() error { return nil }

func (s *testSession) Mail(from string, _ smtp.MailOptions) error {
	s.cur.From = from
	return nil
}

func (s *testSession) Rcpt(to string) error {
	s.cur.To = append(s.cur.To, to)
	return nil
}

func (s *testSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.cur.Data = data
	s.backend.mu.Lock()
	s.backend.mails = append(s.backend.mails, s.cur)
	s.backend.mu.Unlock()
	return nil
}

// startSMTPServer runs an in-process SMTP server on a random port.
// With withTLS the server advertises STARTTLS using a throwaway certificate.
func startSMTPServer(t *testing.T, be *testBackend, withTLS bool) (host string, port int) {
	t.Helper()

	srv := smtp.NewServer(be)
	srv.Domain = "localhost"
	srv.ReadTimeout = 5 * time.Second
	srv.WriteTimeout = 5 * time.Second
	srv.ErrorLog = log.New(io.Discard, "", 0)
	if withTLS {
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{selfSignedCert(t)}}
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(l) }()
	t.Cleanup(func() { _ = srv.Close() })

	h, p, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	port, err = strconv.Atoi(p)
	require.NoError(t, err)
	return h, port
}

func selfSignedCert(t *testing.T) tls.Certificate {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func testConfig(host string, port int) mailer.Config {
	return mailer.Config{
		Host:               host,
		Port:               port,
		Username:           "relay@example.com",
		Password:           "secret",
		StartTLS:           true,
		InsecureSkipVerify: true,
		Timeout:            5 * time.Second,
	}
}

func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func containsLine(data []byte, line string) bool {
	for _, l := range bytes.Split(data, []byte("\n")) {
		if string(bytes.TrimRight(l, "\r")) == line {
			return true
		}
	}
	return false
}
