package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/google/uuid"
	"github.com/rejdeboer/notes-relay/internal/routes"
	"github.com/rejdeboer/notes-relay/tests/helpers"
)

type noteContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func saveDocument(t *testing.T, docID string, content noteContent) *httptest.ResponseRecorder {
	t.Helper()
	testApp := helpers.GetTestApp()

	bodyBytes, err := json.Marshal(content)
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, "/api/documents/"+docID+"/save", bytes.NewReader(bodyBytes))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	testApp.Handler.ServeHTTP(rr, req)
	return rr
}

func TestSaveAndGetDocument(t *testing.T) {
	testApp := helpers.GetTestApp()
	docID := "doc-" + uuid.New().String()
	content := noteContent{
		Title: gofakeit.Sentence(3),
		Body:  gofakeit.Sentence(10),
	}

	rr := saveDocument(t, docID, content)

	status := rr.Result().StatusCode
	if status != 200 {
		t.Errorf("expected %d got %d", 200, rr.Result().StatusCode)
	}

	var saved routes.DocumentStatusResponse
	err := json.NewDecoder(rr.Body).Decode(&saved)
	if err != nil {
		t.Errorf("error decoding json response: %v", err)
	}
	if saved.Status != "saved" {
		t.Errorf("expected status saved, got %v", saved.Status)
	}
	if saved.DocID != docID {
		t.Errorf("doc_id mismatch; expected %v; got %v", docID, saved.DocID)
	}

	req, err := http.NewRequest(http.MethodGet, "/api/documents/"+docID, nil)
	if err != nil {
		t.Fatal(err)
	}

	rr = httptest.NewRecorder()
	testApp.Handler.ServeHTTP(rr, req)

	status = rr.Result().StatusCode
	if status != 200 {
		t.Errorf("expected %d got %d", 200, rr.Result().StatusCode)
	}

	var response routes.DocumentResponse
	err = json.NewDecoder(rr.Body).Decode(&response)
	if err != nil {
		t.Errorf("error decoding json response: %v", err)
	}

	if response.ID != docID {
		t.Errorf("id mismatch; expected %v; got %v", docID, response.ID)
	}
	if response.UpdatedAt.IsZero() {
		t.Error("expected updated_at to be set")
	}

	var fetched noteContent
	if err := json.Unmarshal(response.Content, &fetched); err != nil {
		t.Fatalf("error decoding document content: %v", err)
	}
	if fetched != content {
		t.Errorf("content mismatch; expected %v; got %v", content, fetched)
	}
}

func TestSaveDocumentOverwrites(t *testing.T) {
	testApp := helpers.GetTestApp()
	docID := "doc-" + uuid.New().String()

	saveDocument(t, docID, noteContent{Title: "first", Body: gofakeit.Sentence(5)})

	updated := noteContent{Title: "second", Body: gofakeit.Sentence(5)}
	rr := saveDocument(t, docID, updated)
	if status := rr.Result().StatusCode; status != 200 {
		t.Errorf("expected %d got %d", 200, status)
	}

	req, err := http.NewRequest(http.MethodGet, "/api/documents/"+docID, nil)
	if err != nil {
		t.Fatal(err)
	}

	rr = httptest.NewRecorder()
	testApp.Handler.ServeHTTP(rr, req)

	var response routes.DocumentResponse
	err = json.NewDecoder(rr.Body).Decode(&response)
	if err != nil {
		t.Errorf("error decoding json response: %v", err)
	}

	var fetched noteContent
	if err := json.Unmarshal(response.Content, &fetched); err != nil {
		t.Fatalf("error decoding document content: %v", err)
	}
	if fetched != updated {
		t.Errorf("content mismatch; expected %v; got %v", updated, fetched)
	}
}

func TestSaveDocumentInvalidBody(t *testing.T) {
	testApp := helpers.GetTestApp()

	req, err := http.NewRequest(http.MethodPost, "/api/documents/doc-malformed/save", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	testApp.Handler.ServeHTTP(rr, req)

	status := rr.Result().StatusCode
	if status != 400 {
		t.Errorf("expected %d got %d", 400, rr.Result().StatusCode)
	}
}

func TestGetDocumentNotFound(t *testing.T) {
	testApp := helpers.GetTestApp()

	req, err := http.NewRequest(http.MethodGet, "/api/documents/doc-"+uuid.New().String(), nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	testApp.Handler.ServeHTTP(rr, req)

	status := rr.Result().StatusCode
	if status != 404 {
		t.Errorf("expected %d got %d", 404, rr.Result().StatusCode)
	}
}

func TestDeleteDocument(t *testing.T) {
	testApp := helpers.GetTestApp()
	docID := "doc-" + uuid.New().String()

	saveDocument(t, docID, noteContent{Title: gofakeit.Sentence(3), Body: gofakeit.Sentence(5)})

	t.Run("success response", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, "/api/documents/"+docID, nil)
		if err != nil {
			t.Fatal(err)
		}

		rr := httptest.NewRecorder()
		testApp.Handler.ServeHTTP(rr, req)

		status := rr.Result().StatusCode
		if status != 200 {
			t.Errorf("expected %d got %d", 200, rr.Result().StatusCode)
		}

		var response routes.DocumentStatusResponse
		err = json.NewDecoder(rr.Body).Decode(&response)
		if err != nil {
			t.Errorf("error decoding json response: %v", err)
		}
		if response.Status != "deleted" {
			t.Errorf("expected status deleted, got %v", response.Status)
		}
	})

	t.Run("document is gone", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/api/documents/"+docID, nil)
		if err != nil {
			t.Fatal(err)
		}

		rr := httptest.NewRecorder()
		testApp.Handler.ServeHTTP(rr, req)

		status := rr.Result().StatusCode
		if status != 404 {
			t.Errorf("expected %d got %d", 404, rr.Result().StatusCode)
		}
	})

	t.Run("document not found", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, "/api/documents/"+docID, nil)
		if err != nil {
			t.Fatal(err)
		}

		rr := httptest.NewRecorder()
		testApp.Handler.ServeHTTP(rr, req)

		status := rr.Result().StatusCode
		if status != 404 {
			t.Errorf("expected %d got %d", 404, rr.Result().StatusCode)
		}
	})
}
