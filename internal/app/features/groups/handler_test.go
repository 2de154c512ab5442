package groups_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	membershipengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/membership"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/groups"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/shared/actor"
	groupstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/groups"
	joinrequeststore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/joinrequests"
	membershipstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/memberships"
	userstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/users"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/keylock"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/notify"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/txn"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// newTestRouter wires the groups feature over a real test database and
// mounts it the way bootstrap does.
func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	engine := membershipengine.New(
		groupstore.New(db),
		membershipstore.New(db),
		joinrequeststore.New(db),
		userstore.New(db),
		&notify.LogNotifier{Log: logger},
		txn.NewRunner(db.Client()),
		keylock.New(),
		logger,
	)

	r := chi.NewRouter()
	r.Mount("/groups", groups.Routes(groups.NewHandler(engine, logger)))
	return r, testutil.NewFixtures(t, db)
}

func doJSON(t *testing.T, router chi.Router, method, target, actorHex, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if actorHex != "" {
		req.Header.Set(actor.Header, actorHex)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate_Success(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator")

	rec := doJSON(t, router, "POST", "/groups", creator.ID.Hex(),
		`{"name":"Algorithms","description":"Weekly practice","require_approval":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body)
	}

	var group models.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &group); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if group.Name != "Algorithms" {
		t.Errorf("expected name %q, got %q", "Algorithms", group.Name)
	}
	if group.OwnerID != creator.ID {
		t.Errorf("expected owner %s, got %s", creator.ID.Hex(), group.OwnerID.Hex())
	}

	// The creator must come out of creation as the group's first admin.
	count, err := fixtures.DB().Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": group.ID,
		"user_id":  creator.ID,
		"role":     models.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected creator admin membership, got %d rows", count)
	}
}

func TestHandleCreate_MissingActor(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, "POST", "/groups", "", `{"name":"Algorithms"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestHandleCreate_InvalidName(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator")

	rec := doJSON(t, router, "POST", "/groups", creator.ID.Hex(), `{"name":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d: %s", http.StatusBadRequest, rec.Code, rec.Body)
	}
}

func TestHandleJoin_OpenGroup(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Open Group", owner.ID, false)
	joiner := fixtures.CreateUser(ctx, "joiner")

	rec := doJSON(t, router, "POST", "/groups/"+group.ID.Hex()+"/join", joiner.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
	}

	var resp struct {
		Joined  bool `json:"joined"`
		Pending bool `json:"pending"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Joined || resp.Pending {
		t.Errorf("expected immediate join, got %+v", resp)
	}
}

func TestHandleJoin_ApprovalGated(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Gated Group", owner.ID, true)
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)
	joiner := fixtures.CreateUser(ctx, "joiner")

	rec := doJSON(t, router, "POST", "/groups/"+group.ID.Hex()+"/join", joiner.ID.Hex(), "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d: %s", http.StatusAccepted, rec.Code, rec.Body)
	}

	var resp struct {
		Pending bool   `json:"pending"`
		Ref     string `json:"ref"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Pending || resp.Ref == "" {
		t.Fatalf("expected pending request with ref, got %+v", resp)
	}

	// The owner approves through the request endpoint; the joiner gains
	// membership.
	var stored models.JoinRequest
	err := fixtures.DB().Collection("join_requests").
		FindOne(ctx, bson.M{"ref": resp.Ref}).Decode(&stored)
	if err != nil {
		t.Fatalf("load join request: %v", err)
	}

	rec = doJSON(t, router, "POST", "/groups/requests/"+stored.ID.Hex()+"/approve", owner.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
	}

	count, err := fixtures.DB().Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": group.ID,
		"user_id":  joiner.ID,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected joiner membership after approval, got %d rows", count)
	}
}

func TestHandlePromote(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)
	member := fixtures.CreateUser(ctx, "member")
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)
	outsider := fixtures.CreateUser(ctx, "outsider")

	base := "/groups/" + group.ID.Hex() + "/members/"

	rec := doJSON(t, router, "POST", base+member.ID.Hex()+"/promote", owner.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
	}
	var resp struct {
		Changed bool `json:"changed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Changed {
		t.Error("expected promotion to report changed")
	}

	// Promoting a non-member is the soft no-op, not an error.
	rec = doJSON(t, router, "POST", base+outsider.ID.Hex()+"/promote", owner.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Changed {
		t.Error("expected non-member promotion to report unchanged")
	}
}

func TestHandleRemoveMember_OwnerImmovable(t *testing.T) {
	router, fixtures := newTestRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)
	admin := fixtures.CreateUser(ctx, "admin")
	fixtures.CreateMembership(ctx, group.ID, admin.ID, models.RoleAdmin)

	rec := doJSON(t, router, "DELETE",
		"/groups/"+group.ID.Hex()+"/members/"+owner.ID.Hex(), admin.ID.Hex(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body)
	}
	var resp struct {
		Changed bool `json:"changed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Changed {
		t.Error("expected owner removal to report unchanged")
	}
}
