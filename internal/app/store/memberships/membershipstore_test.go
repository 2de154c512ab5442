package membershipstore_test

import (
	"testing"

	membershipstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/memberships"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/indexes"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Add(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	member := fixtures.CreateUser(ctx, "member")

	err := store.Add(ctx, group.ID, member.ID, models.RoleMember)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	count, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": group.ID,
		"user_id":  member.ID,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 membership, got %d", count)
	}
}

func TestStore_Add_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	member := fixtures.CreateUser(ctx, "member")

	if err := store.Add(ctx, group.ID, member.ID, models.RoleMember); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	// Repeat add is absorbed by the unique index, not an error.
	if err := store.Add(ctx, group.ID, member.ID, models.RoleMember); err != nil {
		t.Fatalf("repeat Add should be a no-op, got %v", err)
	}

	count, err := db.Collection("group_memberships").CountDocuments(ctx, bson.M{
		"group_id": group.ID,
		"user_id":  member.ID,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 membership after repeat add, got %d", count)
	}
}

func TestStore_Add_InvalidRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Add(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "owner")
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_RoleOf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)

	role, err := store.RoleOf(ctx, group.ID, owner.ID)
	if err != nil {
		t.Fatalf("RoleOf failed: %v", err)
	}
	if role != models.RoleAdmin {
		t.Errorf("role: got %q, want %q", role, models.RoleAdmin)
	}

	// Non-member reads as empty, not an error.
	role, err = store.RoleOf(ctx, group.ID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("RoleOf failed: %v", err)
	}
	if role != "" {
		t.Errorf("non-member role: got %q, want empty", role)
	}
}

func TestStore_SetRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	member := fixtures.CreateUser(ctx, "member")
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)

	matched, err := store.SetRole(ctx, group.ID, member.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if !matched {
		t.Fatal("SetRole should match an existing membership")
	}

	role, _ := store.RoleOf(ctx, group.ID, member.ID)
	if role != models.RoleAdmin {
		t.Errorf("role after SetRole: got %q, want %q", role, models.RoleAdmin)
	}

	// No membership: no match.
	matched, err = store.SetRole(ctx, group.ID, primitive.NewObjectID(), models.RoleAdmin)
	if err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if matched {
		t.Error("SetRole should not match a non-member")
	}
}

func TestStore_Remove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	member := fixtures.CreateUser(ctx, "member")
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)

	removed, err := store.Remove(ctx, group.ID, member.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Fatal("Remove should report true")
	}

	removed, err = store.Remove(ctx, group.ID, member.ID)
	if err != nil {
		t.Fatalf("second Remove failed: %v", err)
	}
	if removed {
		t.Error("second Remove should report false")
	}
}

func TestStore_ListByGroup_RoleFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Test Group", owner.ID, false)
	member := fixtures.CreateUser(ctx, "member")
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)
	fixtures.CreateMembership(ctx, group.ID, member.ID, models.RoleMember)

	all, err := store.ListByGroup(ctx, group.ID, "")
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all members: got %d, want 2", len(all))
	}

	admins, err := store.ListByGroup(ctx, group.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("ListByGroup failed: %v", err)
	}
	if len(admins) != 1 || admins[0].UserID != owner.ID {
		t.Errorf("admins: got %d, want just the owner", len(admins))
	}
}

func TestStore_DeleteByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateUser(ctx, "owner")
	group := fixtures.CreateGroup(ctx, "Doomed", owner.ID, false)
	other := fixtures.CreateGroup(ctx, "Survivor", owner.ID, false)
	fixtures.CreateMembership(ctx, group.ID, owner.ID, models.RoleAdmin)
	fixtures.CreateMembership(ctx, other.ID, owner.ID, models.RoleAdmin)

	n, err := store.DeleteByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("DeleteByGroup failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}

	ids, err := store.ListGroupIDsByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListGroupIDsByUser failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != other.ID {
		t.Errorf("expected only the surviving group's membership, got %v", ids)
	}
}
