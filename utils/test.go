package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequest(t *testing.T, method string, url string, body io.Reader, handler func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router := http.NewServeMux()

	router.HandleFunc(fmt.Sprintf("%s %s", method, url), handler)

	router.ServeHTTP(rr, req)

	return rr
}

func TestRequestWithQuery(t *testing.T, method string, url string, query string, handler func(http.ResponseWriter, *http.Request)) *httptest.ResponseRecorder {
	req, err := http.NewRequest(method, fmt.Sprintf("%s?%s", url, query), nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	router := http.NewServeMux()

	router.HandleFunc(fmt.Sprintf("%s %s", method, url), handler)

	router.ServeHTTP(rr, req)

	return rr
}
