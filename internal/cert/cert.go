package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
	"io/ioutil"
	"os/exec"
	"strings"
)

// ServerConfig holds the certificate and key of the HTTP service. When neither is given, the
// service runs over plain HTTP.
type ServerConfig struct {
	Certificate               string  `json:"certificate"               long:"certificate"                  env:"CERTIFICATE"                  description:"PEM encoded server certificate (chain)"`
	CertificateFile           string  `json:"certificateFile"           long:"certificate-file"             env:"CERTIFICATE_FILE"             description:"File with the PEM encoded server certificate (chain)"`
	PrivateKey                string  `json:"privateKey"                long:"private-key"                  env:"PRIVATE_KEY"                  description:"PEM encoded private key"`
	PrivateKeyFile            string  `json:"privateKeyFile"            long:"private-key-file"             env:"PRIVATE_KEY_FILE"             description:"File with the PEM encoded private key"`
	PrivateKeyPassword        *string `json:"privateKeyPassword"        long:"private-key-password"         env:"PRIVATE_KEY_PASSWORD"         description:"Decryption password"`
	PrivateKeyPasswordProgram string  `json:"privateKeyPasswordProgram" long:"private-key-password-program" env:"PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption key"`
}

// Enabled returns true if any certificate or key was configured
func (m *ServerConfig) Enabled() bool {
	return m.Certificate != "" || m.CertificateFile != "" || m.PrivateKey != "" || m.PrivateKeyFile != ""
}

func (m *ServerConfig) GetCertificate() ([]byte, error) {
	if m.CertificateFile != "" {
		certPemBlock, err := ioutil.ReadFile(m.CertificateFile)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read certificate file: %s", m.CertificateFile)
		}
		return certPemBlock, nil
	} else if m.Certificate != "" {
		return []byte(strings.TrimSpace(m.Certificate)), nil
	}
	return nil, nil
}

// GetPrivateKey returns the PEM encoded private key, decrypting it first if needed. Both
// encrypted PKCS#8 and legacy encrypted PEM blocks are supported.
func (m *ServerConfig) GetPrivateKey() ([]byte, error) {
	var privateKeyPemBlock []byte
	if m.PrivateKeyFile != "" {
		var err error
		if privateKeyPemBlock, err = ioutil.ReadFile(m.PrivateKeyFile); err != nil {
			return nil, errors.Wrapf(err, "Could not read private key file: %s", m.PrivateKeyFile)
		}
	} else if m.PrivateKey != "" {
		privateKeyPemBlock = []byte(strings.TrimSpace(m.PrivateKey))
	}

	if len(privateKeyPemBlock) == 0 {
		return nil, nil
	}

	block, _ := pem.Decode(privateKeyPemBlock)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}

		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	} else if x509.IsEncryptedPEMBlock(block) {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		der, err := x509.DecryptPEMBlock(block, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return privateKeyPemBlock, nil
}

func (m *ServerConfig) GetPrivateKeyPassword() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := &bytes.Buffer{}
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined!")
}

// GetTlsConfig builds the server TLS configuration. It returns nil (and no error) when TLS is
// not configured.
func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	if !m.Enabled() {
		return nil, nil
	}

	certPemBlock, err := m.GetCertificate()
	if err != nil {
		return nil, err
	}
	privateKeyPemBlock, err := m.GetPrivateKey()
	if err != nil {
		return nil, err
	}
	if len(certPemBlock) == 0 || len(privateKeyPemBlock) == 0 {
		return nil, errors.Errorf("Both the certificate and the private key are required for TLS")
	}

	cert, err := tls.X509KeyPair(certPemBlock, privateKeyPemBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data!")
	}
	log.Debugf("TLS enabled")

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
