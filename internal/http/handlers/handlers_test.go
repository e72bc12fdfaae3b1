package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"codestake/internal/service"
	"codestake/internal/store"
	"codestake/internal/ws"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	service.InitJWT("test-secret")
	os.Exit(m.Run())
}

func newTestRouter() (*gin.Engine, *Handler) {
	h := NewHandler(store.NewMemStore(), ws.NewHub())

	r := gin.New()
	r.POST("/api/auth/github", h.GithubAuth)
	r.GET("/api/me", authAs(h), h.Me)
	r.POST("/api/users/wallet", authAs(h), h.ConnectWallet)
	r.POST("/api/challenges", h.CreateChallenge)
	r.GET("/api/challenges", h.ListChallenges)
	r.GET("/api/challenges/:id", h.GetChallenge)
	r.GET("/api/users/:id/challenges", h.ListUserChallenges)
	r.GET("/api/users/:id/stats", h.GetUserStats)
	r.POST("/api/progress", h.RecordProgress)
	r.GET("/api/progress/:challengeId/:userId", h.GetProgress)
	return r, h
}

// authAs stands in for the JWT middleware: trusts X-Test-User.
func authAs(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := c.GetHeader("X-Test-User"); v != "" {
			var id int64
			for _, ch := range v {
				id = id*10 + int64(ch-'0')
			}
			c.Set("user_id", id)
		}
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validChallenge = `{
	"creatorId": 1,
	"title": "30-day streak",
	"description": "Commit every day",
	"platform": "github",
	"stakingAmount": 0.1,
	"durationDays": 30,
	"startDate": "2026-03-01T00:00:00Z"
}`

func TestCreateChallengeOK(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/api/challenges", validChallenge, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["id"].(float64) != 1 {
		t.Errorf("id = %v, want 1", got["id"])
	}
	if got["isActive"] != true {
		t.Errorf("isActive = %v, want true", got["isActive"])
	}
	if got["rewardMultiplier"].(float64) != 100 {
		t.Errorf("rewardMultiplier = %v, want 100", got["rewardMultiplier"])
	}

	// fetch it back
	w = doJSON(t, r, "GET", "/api/challenges/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
}

func TestCreateChallengeInvalid(t *testing.T) {
	r, _ := newTestRouter()

	cases := map[string]string{
		"stake too low":      strings.Replace(validChallenge, `"stakingAmount": 0.1`, `"stakingAmount": 0.0001`, 1),
		"stake too high":     strings.Replace(validChallenge, `"stakingAmount": 0.1`, `"stakingAmount": 150`, 1),
		"duration too long":  strings.Replace(validChallenge, `"durationDays": 30`, `"durationDays": 500`, 1),
		"duration zero":      strings.Replace(validChallenge, `"durationDays": 30`, `"durationDays": 0`, 1),
		"unknown platform":   strings.Replace(validChallenge, `"platform": "github"`, `"platform": "gitlab"`, 1),
		"empty title":        strings.Replace(validChallenge, `"title": "30-day streak"`, `"title": ""`, 1),
		"missing creator":    strings.Replace(validChallenge, `"creatorId": 1`, `"creatorId": 0`, 1),
		"not json":           `{`,
	}

	for name, body := range cases {
		w := doJSON(t, r, "POST", "/api/challenges", body, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400 (body %s)", name, w.Code, w.Body)
		}
		var resp map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["message"] == "" {
			t.Errorf("%s: missing message field", name)
		}
	}
}

func TestGetChallengeNotFound(t *testing.T) {
	r, _ := newTestRouter()
	w := doJSON(t, r, "GET", "/api/challenges/999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestListChallengesActiveOnly(t *testing.T) {
	r, _ := newTestRouter()

	for i := 0; i < 2; i++ {
		if w := doJSON(t, r, "POST", "/api/challenges", validChallenge, nil); w.Code != http.StatusOK {
			t.Fatalf("create %d failed: %d", i, w.Code)
		}
	}

	w := doJSON(t, r, "GET", "/api/challenges", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	for _, c := range list {
		if c["isActive"] != true {
			t.Errorf("inactive challenge in active list: %v", c)
		}
	}
}

func TestGithubAuth(t *testing.T) {
	r, _ := newTestRouter()

	// missing code
	w := doJSON(t, r, "POST", "/api/auth/github", `{}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing code: status = %d, want 400", w.Code)
	}

	// first auth creates the user
	w = doJSON(t, r, "POST", "/api/auth/github", `{"code":"abc"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var first struct {
		Token string `json:"token"`
		User  struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatal(err)
	}
	if first.Token == "" {
		t.Error("expected session token")
	}
	if first.User.ID != 1 || first.User.Username != "mockuser" {
		t.Errorf("user = %+v", first.User)
	}

	// second auth with the same external id returns the same user
	w = doJSON(t, r, "POST", "/api/auth/github", `{"code":"xyz"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second auth status = %d", w.Code)
	}
	var second struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatal(err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("duplicate user created: %d != %d", second.User.ID, first.User.ID)
	}

	// the access token must never leak
	if strings.Contains(w.Body.String(), "mock_token") {
		t.Error("access token leaked in response")
	}
}

func TestProgressRoundtrip(t *testing.T) {
	r, _ := newTestRouter()

	body := `{"userId":1,"challengeId":1,"date":"2026-03-01T00:00:00Z","commitCount":3}`
	w := doJSON(t, r, "POST", "/api/progress", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created["problemsSolved"].(float64) != 0 {
		t.Errorf("problemsSolved default = %v, want 0", created["problemsSolved"])
	}

	// second record for another pair must not show up in the query
	other := `{"userId":2,"challengeId":1,"date":"2026-03-01T00:00:00Z"}`
	if w := doJSON(t, r, "POST", "/api/progress", other, nil); w.Code != http.StatusOK {
		t.Fatalf("second create: %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/api/progress/1/1", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1", len(list))
	}

	// no matches is an empty array, not null
	w = doJSON(t, r, "GET", "/api/progress/9/9", "", nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty query body = %s, want []", w.Body)
	}
}

func TestProgressInvalid(t *testing.T) {
	r, _ := newTestRouter()

	w := doJSON(t, r, "POST", "/api/progress", `{"userId":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUserStats(t *testing.T) {
	r, _ := newTestRouter()

	// unknown user
	w := doJSON(t, r, "GET", "/api/users/42/stats", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	// create a user via auth, then a challenge and progress
	if w := doJSON(t, r, "POST", "/api/auth/github", `{"code":"abc"}`, nil); w.Code != http.StatusOK {
		t.Fatal("auth failed")
	}
	// start date far enough out that the challenge cannot count as
	// completed while the test runs
	running := strings.Replace(validChallenge, "2026-03-01T00:00:00Z", "2100-01-01T00:00:00Z", 1)
	if w := doJSON(t, r, "POST", "/api/challenges", running, nil); w.Code != http.StatusOK {
		t.Fatal("create challenge failed")
	}
	body := `{"userId":1,"challengeId":1,"date":"2026-03-01T00:00:00Z","commitCount":2,"problemsSolved":1}`
	if w := doJSON(t, r, "POST", "/api/progress", body, nil); w.Code != http.StatusOK {
		t.Fatal("record progress failed")
	}

	w = doJSON(t, r, "GET", "/api/users/1/stats", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body = %s", w.Code, w.Body)
	}
	var stats map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	// 2 commits + 1 problem + single-day streak bonus
	if want := float64(2*10 + 20 + 5); stats["totalXp"].(float64) != want {
		t.Errorf("totalXp = %v, want %v", stats["totalXp"], want)
	}
	if stats["rank"] != "Novice" {
		t.Errorf("rank = %v, want Novice", stats["rank"])
	}
}

func TestMeAndWallet(t *testing.T) {
	r, _ := newTestRouter()

	if w := doJSON(t, r, "POST", "/api/auth/github", `{"code":"abc"}`, nil); w.Code != http.StatusOK {
		t.Fatal("auth failed")
	}

	hdr := map[string]string{"X-Test-User": "1"}

	w := doJSON(t, r, "GET", "/api/me", "", hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}

	w = doJSON(t, r, "POST", "/api/users/wallet", `{"walletAddress":"0xabc"}`, hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("wallet status = %d, body = %s", w.Code, w.Body)
	}
	var u map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
		t.Fatal(err)
	}
	if u["walletAddress"] != "0xabc" {
		t.Errorf("walletAddress = %v", u["walletAddress"])
	}

	// unauthenticated
	w = doJSON(t, r, "GET", "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated me status = %d, want 401", w.Code)
	}
}
