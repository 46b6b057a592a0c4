package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func post(t *testing.T, handler http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	data := make(map[string]interface{})
	require.NoErrorf(t, json.Unmarshal(rec.Body.Bytes(), &data), "Response is not JSON: %v", rec.Body.String())
	return rec, data
}

func Test_Encode(t *testing.T) {
	router := NewHttpServer("127.0.0.1:0").Router()

	rec, data := post(t, router, "/encode", `{"input": "my-passw0rd"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "lEsdklcFaOOjlbma", data["encoded"])

	rec, data = post(t, router, "/encode", `{"input": ""}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pjqtudckibycRKbj", data["encoded"])

	rec, data = post(t, router, "/encode", `{"input": "6d792d7061737377307264", "format": "hex"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "lEsdklcFaOOjlbma", data["encoded"])
}

func Test_Encode_BadRequest(t *testing.T) {
	router := NewHttpServer("127.0.0.1:0").Router()

	for _, body := range []string{
		`not json`,
		`{"input": "zz", "format": "hex"}`,
		`{"input": "x", "format": "rot13"}`,
		`{"input": "x", "unknown": true}`,
		`{"input": "a"}garbage`,
		`{"input": "a"}{"input": "b"}`,
	} {
		rec, data := post(t, router, "/encode", body)
		require.Equalf(t, http.StatusBadRequest, rec.Code, "Expected bad request for %v", body)
		require.NotEmpty(t, data["error"])
	}
}

func Test_Encode_BodyTooLarge(t *testing.T) {
	srv := NewHttpServer("127.0.0.1:0")
	srv.MaxBodySize = 32
	router := srv.Router()

	rec, _ := post(t, router, "/encode", `{"input": "`+strings.Repeat("x", 100)+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Verify(t *testing.T) {
	router := NewHttpServer("127.0.0.1:0").Router()

	rec, data := post(t, router, "/verify", `{"input": "my-passw0rd", "encoded": "lEsdklcFaOOjlbma"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, data["valid"])

	rec, data = post(t, router, "/verify", `{"input": "my-passw0rD", "encoded": "lEsdklcFaOOjlbma"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, data["valid"])

	rec, data = post(t, router, "/verify", `{"input": "bXktcGFzc3cwcmQ=", "format": "base64", "encoded": "lEsdklcFaOOjlbma"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, data["valid"])

	rec, _ = post(t, router, "/verify", `{"input": "my-passw0rd"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = post(t, router, "/verify", `{"input": "my-passw0rd", "encoded": "lEsdklcFaOOjlbma"} trailing`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, data = post(t, router, "/verify", "{\"input\": \"my-passw0rd\", \"encoded\": \"lEsdklcFaOOjlbma\"}\n")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, data["valid"])
}

func Test_Healthz(t *testing.T) {
	router := NewHttpServer("127.0.0.1:0").Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func Test_MethodNotAllowed(t *testing.T) {
	router := NewHttpServer("127.0.0.1:0").Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/encode", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func Test_StartupShutdown(t *testing.T) {
	srv := NewHttpServer("127.0.0.1:0")
	srv.MaxConnections = 4
	require.NoError(t, srv.Startup())
	defer func() {
		require.NoError(t, srv.Shutdown())
	}()

	resp, err := http.Post(srv.String()+"/encode", "application/json", strings.NewReader(`{"input": "my-passw0rd"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "lEsdklcFaOOjlbma")
}

func Test_Shutdown_NotStarted(t *testing.T) {
	require.NoError(t, NewHttpServer("127.0.0.1:0").Shutdown())
}

func selfSignedTls(t *testing.T) *tls.Config {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
	}
}

func Test_StartupShutdown_Tls(t *testing.T) {
	srv := NewHttpServer("127.0.0.1:0")
	srv.TLSConfig = selfSignedTls(t)
	require.NoError(t, srv.Startup())
	defer func() {
		require.NoError(t, srv.Shutdown())
	}()
	require.True(t, strings.HasPrefix(srv.String(), "https://"))

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	resp, err := client.Post(srv.String()+"/encode", "application/json", strings.NewReader(`{"input": "my-passw0rd"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "lEsdklcFaOOjlbma")
}
