package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// selfSigned returns a PEM encoded certificate and its private key
func selfSigned(t *testing.T) ([]byte, []byte) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDer, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDer})
}

func Test_Disabled(t *testing.T) {
	m := &ServerConfig{}
	require.False(t, m.Enabled())

	config, err := m.GetTlsConfig()
	require.NoError(t, err)
	require.Nil(t, config)
}

func Test_InlineCertificate(t *testing.T) {
	certPem, keyPem := selfSigned(t)
	m := &ServerConfig{
		Certificate: string(certPem),
		PrivateKey:  string(keyPem),
	}
	require.True(t, m.Enabled())

	config, err := m.GetTlsConfig()
	require.NoError(t, err)
	require.NotNil(t, config)
	require.Len(t, config.Certificates, 1)
}

func Test_CertificateFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "cert")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	certPem, keyPem := selfSigned(t)
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, ioutil.WriteFile(certFile, certPem, 0600))
	require.NoError(t, ioutil.WriteFile(keyFile, keyPem, 0600))

	m := &ServerConfig{
		CertificateFile: certFile,
		PrivateKeyFile:  keyFile,
	}
	config, err := m.GetTlsConfig()
	require.NoError(t, err)
	require.Len(t, config.Certificates, 1)
}

func Test_MissingKey(t *testing.T) {
	certPem, _ := selfSigned(t)
	m := &ServerConfig{
		Certificate: string(certPem),
	}
	_, err := m.GetTlsConfig()
	require.Error(t, err)
}

func Test_MissingFile(t *testing.T) {
	m := &ServerConfig{
		CertificateFile: "testdata/does-not-exist.pem",
	}
	_, err := m.GetTlsConfig()
	require.Error(t, err)
}

func Test_InvalidKey(t *testing.T) {
	m := &ServerConfig{
		PrivateKey: "not a pem block",
	}
	_, err := m.GetPrivateKey()
	require.Error(t, err)
}

func Test_PrivateKeyPassword(t *testing.T) {
	password := "secret"
	m := &ServerConfig{
		PrivateKeyPassword: &password,
	}
	p, err := m.GetPrivateKeyPassword()
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), p)

	m = &ServerConfig{
		PrivateKeyPasswordProgram: "echo secret",
	}
	p, err = m.GetPrivateKeyPassword()
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), p)

	_, err = (&ServerConfig{}).GetPrivateKeyPassword()
	require.Error(t, err)
}
