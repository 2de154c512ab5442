package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/groups"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/indexes"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")

	created, err := store.Create(ctx, models.Group{
		Name:        "Algorithms",
		Description: "Weekly algorithms practice",
		OwnerID:     owner.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be set")
	}
	if created.NameCI != "algorithms" {
		t.Errorf("expected folded name_ci %q, got %q", "algorithms", created.NameCI)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected group, got nil")
	}
	if got.Name != "Algorithms" {
		t.Errorf("expected name %q, got %q", "Algorithms", got.Name)
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)

	owner := fixtures.CreateUser(ctx, "owner")

	if _, err := store.Create(ctx, models.Group{Name: "Algorithms", OwnerID: owner.ID}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Same name with different casing hits the unique name_ci index.
	_, err := store.Create(ctx, models.Group{Name: "ALGORITHMS", OwnerID: owner.ID})
	if !errors.Is(err, groupstore.ErrDuplicateGroupName) {
		t.Errorf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown group, got %+v", got)
	}
}

func TestStore_UpdateInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Old Name", owner.ID, false)

	if err := store.UpdateInfo(ctx, group.ID, "New Name", "new description"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}

	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "New Name" {
		t.Errorf("expected name %q, got %q", "New Name", got.Name)
	}
	if got.NameCI != "new name" {
		t.Errorf("expected name_ci %q, got %q", "new name", got.NameCI)
	}
	if got.Description != "new description" {
		t.Errorf("expected description updated, got %q", got.Description)
	}
}

func TestStore_UpdateInfo_BlankNameKeepsCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Keep Me", owner.ID, false)

	if err := store.UpdateInfo(ctx, group.ID, "  ", "only the description changes"); err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}

	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Keep Me" {
		t.Errorf("expected name unchanged, got %q", got.Name)
	}
	if got.Description != "only the description changes" {
		t.Errorf("expected description updated, got %q", got.Description)
	}
}

func TestStore_UpdateInfo_DuplicateRename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)

	owner := fixtures.CreateUser(ctx, "owner")
	fixtures.CreateGroup(ctx, "Taken", owner.ID, false)
	group := fixtures.CreateGroup(ctx, "Rename Me", owner.ID, false)

	err := store.UpdateInfo(ctx, group.ID, "taken", "desc")
	if !errors.Is(err, groupstore.ErrDuplicateGroupName) {
		t.Errorf("expected ErrDuplicateGroupName, got %v", err)
	}
}

func TestStore_SetRequireApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Open Group", owner.ID, false)

	if err := store.SetRequireApproval(ctx, group.ID, true); err != nil {
		t.Fatalf("SetRequireApproval failed: %v", err)
	}

	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.RequireApproval {
		t.Error("expected require_approval to be true")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Doomed", owner.ID, false)

	n, err := store.Delete(ctx, group.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	n, err = store.Delete(ctx, group.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", n)
	}
}

func TestStore_ListByIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	a := fixtures.CreateGroup(ctx, "Group A", owner.ID, false)
	b := fixtures.CreateGroup(ctx, "Group B", owner.ID, false)
	fixtures.CreateGroup(ctx, "Group C", owner.ID, false)

	groups, err := store.ListByIDs(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	groups, err = store.ListByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListByIDs with no ids failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected empty result for no ids, got %d", len(groups))
	}
}
