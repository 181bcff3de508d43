// internal/domain/audit/service_test.go
package audit_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/testutil"
	"gorm.io/gorm"
)

func newAuditFixture(t *testing.T) (*audit.Service, *gorm.DB) {
	db := testutil.NewDB(t)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return audit.NewService(db, testutil.NewConfig(), logger), db
}

func TestRecordAndList(t *testing.T) {
	svc, db := newAuditFixture(t)

	u := user.User{Username: "bea", Password: "x", Role: "buyer"}
	require.NoError(t, db.Create(&u).Error)

	svc.RecordFor(u.ID, audit.ActionLogin, "logged in")
	svc.RecordFor(u.ID, audit.ActionCartAdd, "added %d x product %d to cart", 2, 7)
	svc.Record(nil, audit.ActionLogin, "failed login attempt")

	entries, err := svc.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first; the anonymous entry has no username
	assert.Equal(t, "failed login attempt", entries[0].Description)
	assert.Nil(t, entries[0].UserID)
	assert.Empty(t, entries[0].Username)

	assert.Equal(t, "added 2 x product 7 to cart", entries[1].Description)
	assert.Equal(t, "bea", entries[1].Username)
}

func TestListRespectsLimit(t *testing.T) {
	svc, _ := newAuditFixture(t)

	for i := 0; i < 5; i++ {
		svc.Record(nil, audit.ActionLogin, "event %d", i)
	}

	entries, err := svc.List(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "event 4", entries[0].Description)
}

func TestEntriesSurviveUserDeletion(t *testing.T) {
	svc, db := newAuditFixture(t)

	u := user.User{Username: "gone", Password: "x", Role: "buyer"}
	require.NoError(t, db.Create(&u).Error)
	svc.RecordFor(u.ID, audit.ActionLogin, "logged in")

	require.NoError(t, db.Delete(&u).Error)

	entries, err := svc.List(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].Username)
}
