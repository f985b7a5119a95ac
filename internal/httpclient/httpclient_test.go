package httpclient

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/beta6nine9/zabbix-rsm-sub001/internal/errcode"
)

func TestGetSucceedsAndCapturesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Host != "virtual.example.test" {
			t.Errorf("expected Host header override, got %q", r.Host)
		}
		w.Write([]byte(`{"ldhName":"example.test"}`))
	}))
	defer srv.Close()

	host, port, _ := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	url := "http://virtual.example.test:" + port + "/domain/example.test"

	res, herr := Get(context.Background(), url, "virtual.example.test", host, 2*time.Second, 5, true)
	if herr != (errcode.HTTPError{}) {
		t.Fatalf("expected success, got %+v", herr)
	}
	if !strings.Contains(string(res.Body), "ldhName") {
		t.Errorf("expected captured body, got %q", res.Body)
	}
}

func TestGetReportsNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	host, port, _ := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	url := "http://example.test:" + port + "/"

	_, herr := Get(context.Background(), url, "example.test", host, 2*time.Second, 5, false)
	if !herr.IsStatus || herr.Status != http.StatusNotFound {
		t.Errorf("expected a 404 status error, got %+v", herr)
	}
}

func TestGetTimesOutAgainstUnreachableHost(t *testing.T) {
	_, herr := Get(context.Background(), "http://example.test:80/", "example.test", "192.0.2.1", 200*time.Millisecond, 5, false)
	if herr == (errcode.HTTPError{}) {
		t.Fatal("expected an error dialing a non-routable TEST-NET-1 address")
	}
}
