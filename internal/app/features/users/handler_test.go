package users

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/domain/models"
	"github.com/showroomhq/showroomhub/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(userstore.New(db), zap.NewNop())
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := testutil.WithUser(
		httptest.NewRequest("POST", "/api/user/accounts", strings.NewReader(body)),
		testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.ServeCreate(rec, req)
	return rec
}

func TestCreateAccount(t *testing.T) {
	h := newTestHandler(t)

	rec := post(h, `{"full_name":"Gulshan Terminal","login_id":"gulshan@hq.com","password":"secret123","role":"showroom","showroom":"Gulshan"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var u models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if u.Role != "showroom" || u.Showroom != "Gulshan" {
		t.Errorf("user: %+v", u)
	}
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("response leaks password hash")
	}

	// The stored hash must verify against the original password.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	stored, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")) != nil {
		t.Error("stored hash does not match password")
	}
}

func TestCreateValidation(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing login", `{"password":"secret123","role":"admin"}`, 400},
		{"short password", `{"login_id":"a@b.c","password":"short","role":"admin"}`, 400},
		{"bad role", `{"login_id":"a@b.c","password":"secret123","role":"wizard"}`, 400},
		{"showroom without branch", `{"login_id":"a@b.c","password":"secret123","role":"showroom"}`, 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec := post(h, tc.body); rec.Code != tc.want {
				t.Errorf("status: got %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestCreateDuplicateLoginID(t *testing.T) {
	h := newTestHandler(t)

	body := `{"login_id":"dup@hq.com","password":"secret123","role":"admin"}`
	if rec := post(h, body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", rec.Code)
	}
	if rec := post(h, body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate: got %d, want 409", rec.Code)
	}
}

func TestListByRole(t *testing.T) {
	h := newTestHandler(t)

	post(h, `{"login_id":"oa@hq.com","password":"secret123","role":"officeadmin"}`)
	post(h, `{"login_id":"sr@hq.com","password":"secret123","role":"showroom","showroom":"Banani"}`)

	req := testutil.WithUser(
		httptest.NewRequest("GET", "/api/user/accounts?role=officeadmin", nil),
		testutil.AdminUser())
	rec := httptest.NewRecorder()
	h.ServeList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Items []models.User `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].LoginID != "oa@hq.com" {
		t.Errorf("items: %+v", resp.Items)
	}

	noRole := testutil.WithUser(
		httptest.NewRequest("GET", "/api/user/accounts", nil),
		testutil.AdminUser())
	rec2 := httptest.NewRecorder()
	h.ServeList(rec2, noRole)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("missing role: got %d, want 400", rec2.Code)
	}
}

func TestSetStatus(t *testing.T) {
	h := newTestHandler(t)

	rec := post(h, `{"login_id":"x@hq.com","password":"secret123","role":"admin"}`)
	var u models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}

	put := func(id, body string) *httptest.ResponseRecorder {
		req := testutil.WithUser(
			httptest.NewRequest("PUT", "/api/user/accounts/"+id+"/status", strings.NewReader(body)),
			testutil.AdminUser())
		req = testutil.WithChiURLParam(req, "id", id)
		rec := httptest.NewRecorder()
		h.ServeSetStatus(rec, req)
		return rec
	}

	if rec := put(u.ID.Hex(), `{"status":"disabled"}`); rec.Code != http.StatusOK {
		t.Fatalf("disable: got %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := put(u.ID.Hex(), `{"status":"frozen"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad status: got %d, want 400", rec.Code)
	}
	if rec := put("aaaaaaaaaaaaaaaaaaaaaaaa", `{"status":"active"}`); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rec.Code)
	}
}
