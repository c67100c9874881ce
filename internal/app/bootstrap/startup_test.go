package bootstrap

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/letkeeper/letkeeper/internal/domain/models"
	"github.com/letkeeper/letkeeper/internal/testutil"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureMasterAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	acct := fixtures.CreateAccount(ctx, "Ada", "Admin", "ada@example.com", models.RoleUser)

	deps := DBDeps{LetKeeperMongoDatabase: db}
	if err := ensureMasterAdmin(ctx, deps, "ada@example.com", testLogger()); err != nil {
		t.Fatalf("ensureMasterAdmin failed: %v", err)
	}

	var got models.Account
	if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": acct.ID}).Decode(&got); err != nil {
		t.Fatalf("find account: %v", err)
	}
	if got.Role != models.RoleMasterAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleMasterAdmin)
	}
}

func TestEnsureMasterAdmin_AlreadyMasterAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	acct := fixtures.CreateAccount(ctx, "Ada", "Admin", "ada@example.com", models.RoleMasterAdmin)

	deps := DBDeps{LetKeeperMongoDatabase: db}
	if err := ensureMasterAdmin(ctx, deps, "ada@example.com", testLogger()); err != nil {
		t.Fatalf("ensureMasterAdmin failed: %v", err)
	}

	var got models.Account
	if err := db.Collection("accounts").FindOne(ctx, bson.M{"_id": acct.ID}).Decode(&got); err != nil {
		t.Fatalf("find account: %v", err)
	}
	if got.Role != models.RoleMasterAdmin {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleMasterAdmin)
	}
}

func TestEnsureMasterAdmin_MissingAccountIsNotFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{LetKeeperMongoDatabase: db}
	if err := ensureMasterAdmin(ctx, deps, "nobody@example.com", testLogger()); err != nil {
		t.Fatalf("missing account should not fail startup: %v", err)
	}
}
