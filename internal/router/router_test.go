package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"person-pet-registry/internal/domain/users"
	"person-pet-registry/internal/platform/logger"
	"person-pet-registry/internal/router"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("bcrypt: %v", err)
		}
		return string(h)
	}

	r := router.New(router.Options{
		Log: logger.New(logger.Options{Level: logger.Error}),
		SeedUsers: []users.User{
			{
				ID: uuid.New(), Username: "admin", PasswordHash: hash("secret"),
				Roles: []users.Role{users.RoleUser, users.RoleAdmin}, Enabled: true,
			},
			{
				ID: uuid.New(), Username: "user", PasswordHash: hash("secret"),
				Roles: []users.Role{users.RoleUser}, Enabled: true,
			},
		},
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doReq(t *testing.T, baseURL, method, path, username string, body any) (int, []byte, http.Header) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.SetBasicAuth(username, "secret")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody, res.Header
}

func harmRequest() map[string]any {
	return map[string]any{
		"firstName":   "Harm",
		"lastName":    "van der Wal",
		"dateOfBirth": "1985-03-12",
		"street":      "Dorpsstraat",
		"houseNumber": 12,
		"postalCode":  "1234AB",
		"city":        "Utrecht",
		"country":     "Netherlands",
	}
}

func createPerson(t *testing.T, baseURL string) string {
	t.Helper()

	st, body, hdr := doReq(t, baseURL, http.MethodPost, "/v1/person", "user", harmRequest())
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create person, got %d body=%s", st, string(body))
	}

	loc := hdr.Get("Location")
	if loc == "" {
		t.Fatalf("create person: missing Location header")
	}
	raw := strings.TrimPrefix(loc, "/v1/person/")
	if _, err := uuid.Parse(raw); err != nil {
		t.Fatalf("Location %q does not end in a UUID: %v", loc, err)
	}
	return raw
}

func TestHTTP_CreatePerson_ThenGetEchoesFields(t *testing.T) {
	ts := newServer(t)

	id := createPerson(t, ts.URL)

	st, body, _ := doReq(t, ts.URL, http.MethodGet, "/v1/person/"+id, "user", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get person, got %d body=%s", st, string(body))
	}

	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("bad response json: %v", err)
	}
	if resp["id"] != id {
		t.Fatalf("expected id %s, got %v", id, resp["id"])
	}
	for k, want := range harmRequest() {
		got := resp[k]
		// los números JSON llegan como float64
		if f, ok := got.(float64); ok {
			got = int(f)
		}
		if got != want {
			t.Errorf("field %s: expected %v, got %v", k, want, got)
		}
	}
	if resp["houseNumberAdditions"] != nil {
		t.Errorf("expected null houseNumberAdditions, got %v", resp["houseNumberAdditions"])
	}
}

func TestHTTP_CreatePerson_Duplicate_Conflict(t *testing.T) {
	ts := newServer(t)

	createPerson(t, ts.URL)

	st, body, _ := doReq(t, ts.URL, http.MethodPost, "/v1/person", "user", harmRequest())
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate name, got %d body=%s", st, string(body))
	}

	var resp struct {
		Status   int      `json:"status"`
		Error    string   `json:"error"`
		Messages []string `json:"messages"`
		Path     string   `json:"path"`
		Trace    string   `json:"trace"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("bad error body: %v", err)
	}
	if resp.Status != http.StatusConflict || len(resp.Messages) == 0 || resp.Path == "" || resp.Trace == "" {
		t.Fatalf("incomplete error body: %s", string(body))
	}
}

func TestHTTP_SearchPerson(t *testing.T) {
	ts := newServer(t)

	id := createPerson(t, ts.URL)

	// por firstName solo y por lastName solo
	for _, q := range []string{"?firstName=Harm", "?lastName=van+der+Wal"} {
		st, body, _ := doReq(t, ts.URL, http.MethodGet, "/v1/person/search"+q, "user", nil)
		if st != http.StatusOK {
			t.Fatalf("search %s: expected 200, got %d body=%s", q, st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID != id {
			t.Fatalf("search %s: expected %s, got %s", q, id, resp.ID)
		}
	}

	// sin parámetros → 400
	st, _, _ := doReq(t, ts.URL, http.MethodGet, "/v1/person/search", "user", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without search params, got %d", st)
	}

	// sin match → 404
	st, _, _ = doReq(t, ts.URL, http.MethodGet, "/v1/person/search?firstName=Nobody", "user", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown name, got %d", st)
	}
}

func TestHTTP_CreatePerson_ValidationBatches(t *testing.T) {
	ts := newServer(t)

	bad := harmRequest()
	bad["postalCode"] = "not-a-postal-code"
	bad["firstName"] = ""

	st, body, _ := doReq(t, ts.URL, http.MethodPost, "/v1/person", "user", bad)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}

	var resp struct {
		Messages []string `json:"messages"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Messages) != 2 {
		t.Fatalf("expected both field errors batched, got %v", resp.Messages)
	}
}

func TestHTTP_UpdateAddress_RoleGate(t *testing.T) {
	ts := newServer(t)

	id := createPerson(t, ts.URL)

	update := map[string]any{
		"street":      "Nieuwe Gracht",
		"houseNumber": 7,
		"postalCode":  "9876 ZX",
		"city":        "Haarlem",
		"country":     "Netherlands",
	}

	// no-admin → 403 y sin mutación
	st, body, _ := doReq(t, ts.URL, http.MethodPut, "/v1/person/"+id, "user", update)
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d body=%s", st, string(body))
	}

	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/v1/person/"+id, "user", nil)
	if st != http.StatusOK {
		t.Fatalf("get after forbidden put: %d", st)
	}
	var unchanged struct {
		Street string `json:"street"`
	}
	_ = json.Unmarshal(body, &unchanged)
	if unchanged.Street != "Dorpsstraat" {
		t.Fatalf("forbidden update must not mutate the store, street=%s", unchanged.Street)
	}

	// admin → 200 y solo cambia la dirección
	st, body, _ = doReq(t, ts.URL, http.MethodPut, "/v1/person/"+id, "admin", update)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for admin update, got %d body=%s", st, string(body))
	}

	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/v1/person/"+id, "user", nil)
	if st != http.StatusOK {
		t.Fatalf("get after admin put: %d", st)
	}
	var after struct {
		FirstName   string `json:"firstName"`
		DateOfBirth string `json:"dateOfBirth"`
		Street      string `json:"street"`
		City        string `json:"city"`
	}
	_ = json.Unmarshal(body, &after)
	if after.Street != "Nieuwe Gracht" || after.City != "Haarlem" {
		t.Fatalf("address not updated: %s", string(body))
	}
	if after.FirstName != "Harm" || after.DateOfBirth != "1985-03-12" {
		t.Fatalf("non-address fields must survive: %s", string(body))
	}
}

func TestHTTP_Unauthenticated(t *testing.T) {
	ts := newServer(t)

	st, body, hdr := doReq(t, ts.URL, http.MethodGet, "/v1/person", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d body=%s", st, string(body))
	}
	if hdr.Get("WWW-Authenticate") == "" {
		t.Fatalf("expected WWW-Authenticate challenge")
	}

	// el allow-list pasa sin credenciales
	st, _, _ = doReq(t, ts.URL, http.MethodGet, "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on /health without credentials, got %d", st)
	}
	st, _, _ = doReq(t, ts.URL, http.MethodGet, "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 on /metrics without credentials, got %d", st)
	}
}

func TestHTTP_PetFlow(t *testing.T) {
	ts := newServer(t)

	personID := createPerson(t, ts.URL)

	// dueño inexistente → 400
	st, body, _ := doReq(t, ts.URL, http.MethodPost, "/v1/pet", "user", map[string]any{
		"name": "Ghost", "age": 1, "personId": uuid.NewString(),
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown owner, got %d body=%s", st, string(body))
	}

	// con dueño válido → 201 + Location
	st, body, hdr := doReq(t, ts.URL, http.MethodPost, "/v1/pet", "user", map[string]any{
		"name": "Rex", "age": 3, "personId": personID,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	petID := strings.TrimPrefix(hdr.Get("Location"), "/v1/pet/")
	if _, err := uuid.Parse(petID); err != nil {
		t.Fatalf("pet Location header: %v", err)
	}

	// sin dueño también → 201
	st, body, _ = doReq(t, ts.URL, http.MethodPost, "/v1/pet", "user", map[string]any{
		"name": "Stray", "age": 2,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 ownerless pet, got %d body=%s", st, string(body))
	}

	// filtro por dueño
	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/v1/pet?personId="+personID, "user", nil)
	if st != http.StatusOK {
		t.Fatalf("list by owner: %d", st)
	}
	var byOwner []struct {
		Name string `json:"name"`
	}
	_ = json.Unmarshal(body, &byOwner)
	if len(byOwner) != 1 || byOwner[0].Name != "Rex" {
		t.Fatalf("expected only Rex for owner filter, got %s", string(body))
	}

	// lista completa
	st, body, _ = doReq(t, ts.URL, http.MethodGet, "/v1/pet", "user", nil)
	if st != http.StatusOK {
		t.Fatalf("list all pets: %d", st)
	}
	var all []json.RawMessage
	_ = json.Unmarshal(body, &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 pets, got %d", len(all))
	}

	// update total, incluso con personId colgante (no se re-valida)
	st, body, _ = doReq(t, ts.URL, http.MethodPut, "/v1/pet/"+petID, "user", map[string]any{
		"name": "Rexy", "age": 4, "personId": uuid.NewString(),
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 update pet, got %d body=%s", st, string(body))
	}

	// delete y verificación
	st, _, _ = doReq(t, ts.URL, http.MethodDelete, "/v1/pet/"+petID, "user", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 delete pet, got %d", st)
	}
	st, _, _ = doReq(t, ts.URL, http.MethodGet, "/v1/pet/"+petID, "user", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
	st, _, _ = doReq(t, ts.URL, http.MethodDelete, "/v1/pet/"+petID, "user", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", st)
	}
}

func TestHTTP_PetValidation(t *testing.T) {
	ts := newServer(t)

	// sin age → 400 (age es obligatorio)
	st, body, _ := doReq(t, ts.URL, http.MethodPost, "/v1/pet", "user", map[string]any{
		"name": "Rex",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 without age, got %d body=%s", st, string(body))
	}

	// age negativo → 400
	st, body, _ = doReq(t, ts.URL, http.MethodPost, "/v1/pet", "user", map[string]any{
		"name": "Rex", "age": -1,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative age, got %d body=%s", st, string(body))
	}
}
