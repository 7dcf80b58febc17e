package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL + "/"})
}

func TestDoAttachesBearerTokenFromContext(t *testing.T) {
	var gotAuth, gotQuery, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte(`{"pelada":{"id":7,"nome":"Pelada do Bairro"}}`))
	})

	ctx := ContextWithToken(context.Background(), "abc123")
	payload, err := client.Do(ctx, http.MethodPost, "/api/peladas/", map[string]any{"nome": "Pelada do Bairro"}, url.Values{"page": {"2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotQuery != "page=2" {
		t.Fatalf("expected query page=2, got %q", gotQuery)
	}
	if !strings.Contains(gotBody, `"nome":"Pelada do Bairro"`) {
		t.Fatalf("expected JSON body, got %s", gotBody)
	}
	if payload.Get("pelada.id").Int() != 7 {
		t.Fatalf("unexpected payload: %s", payload.Raw)
	}
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	})

	payload, err := client.Do(context.Background(), http.MethodGet, "/api/peladas/", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
	if !payload.IsObject() || len(payload.Map()) != 0 {
		t.Fatalf("expected empty body to parse as empty object, got %q", payload.Raw)
	}
}

func TestDoMapsErrorStatusToAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"erro":"Token expirado"}`))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/api/usuarios/me", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message() != "Token expirado" {
		t.Fatalf("unexpected message %q", apiErr.Message())
	}
	if !IsAuthFailure(err) {
		t.Fatalf("expected auth failure")
	}
}

func TestDoWrapsNonObjectErrorBodies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`["nome obrigatório"]`))
	})

	_, err := client.Do(context.Background(), http.MethodPost, "/api/peladas/", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message() != "Erro" {
		t.Fatalf("unexpected message %q", apiErr.Message())
	}
	if apiErr.Payload.Get("data.0").String() != "nome obrigatório" {
		t.Fatalf("expected original body under data, got %s", apiErr.Payload.Raw)
	}
}

func TestDoRejectsInvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway</html>`))
	})

	_, err := client.Do(context.Background(), http.MethodGet, "/api/peladas/", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusOK {
		t.Fatalf("expected upstream status to be kept, got %d", apiErr.StatusCode)
	}
	if apiErr.Message() != invalidResponseMessage {
		t.Fatalf("unexpected message %q", apiErr.Message())
	}
	if apiErr.Payload.Get("raw").String() != "<html>gateway</html>" {
		t.Fatalf("expected raw body in payload, got %s", apiErr.Payload.Raw)
	}
}

func TestDoMapsTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(Config{BaseURL: baseURL})
	_, err := client.Do(context.Background(), http.MethodGet, "/api/peladas/", nil, nil)
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Err == nil {
		t.Fatalf("expected wrapped transport error")
	}
}

func TestUploadSendsMultipartFieldsAndFiles(t *testing.T) {
	var gotName, gotFile, gotFilename, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		gotName = r.FormValue("nome")
		file, header, err := r.FormFile("logo")
		if err != nil {
			t.Errorf("form file: %v", err)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		gotFile = string(content)
		gotFilename = header.Filename
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"pelada":{"id":3}}`))
	})

	ctx := ContextWithToken(context.Background(), "tok")
	payload, err := client.Upload(ctx, http.MethodPost, "/api/peladas/", Form{
		Fields: map[string]string{"nome": "Racha", "cidade": "Recife"},
		Files: []File{{
			Field:       "logo",
			Filename:    "logo.png",
			ContentType: "image/png",
			Content:     strings.NewReader("png-bytes"),
		}},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Get("pelada.id").Int() != 3 {
		t.Fatalf("unexpected payload %s", payload.Raw)
	}
	if gotAuth != "Bearer tok" || gotName != "Racha" || gotFile != "png-bytes" || gotFilename != "logo.png" {
		t.Fatalf("unexpected upload: auth=%q name=%q file=%q filename=%q", gotAuth, gotName, gotFile, gotFilename)
	}
}

func TestFetchMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/static/uploads/logo.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "max-age=60")
		w.Write([]byte("png"))
	})

	media, err := client.FetchMedia(context.Background(), "/static/uploads/logo.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if media.ContentType != "image/png" || string(media.Body) != "png" || media.CacheControl != "max-age=60" {
		t.Fatalf("unexpected media %+v", media)
	}

	_, err = client.FetchMedia(context.Background(), "/static/missing.png")
	if !HasStatus(err, http.StatusNotFound) {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

type closeRecorder struct {
	*strings.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestFileCloseReleasesContent(t *testing.T) {
	content := &closeRecorder{Reader: strings.NewReader("png-bytes")}
	file := &File{Field: "foto", Filename: "ze.png", Content: content}
	if err := file.Close(); err != nil || !content.closed {
		t.Fatalf("expected content closed, got closed=%v err=%v", content.closed, err)
	}

	var missing *File
	if err := missing.Close(); err != nil {
		t.Fatalf("expected nil file close to be a no-op, got %v", err)
	}
	plain := &File{Content: strings.NewReader("x")}
	if err := plain.Close(); err != nil {
		t.Fatalf("expected non-closable content to be ignored, got %v", err)
	}
}
