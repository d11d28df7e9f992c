//go:build unit

package repository_test

import (
	"context"
	"testing"

	"staybook/internal/infra"
	"staybook/internal/infra/repository"
	"staybook/internal/usecase/shared"
	dbmock "staybook/tests/mock/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuditRepositoryTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	mockTx   *dbmock.MockDBTX
	repo     *repository.AuditRepository
}

func (s *AuditRepositoryTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockTx = dbmock.NewMockDBTX(s.mockCtrl)
	s.repo = repository.NewAuditRepository()
}

func (s *AuditRepositoryTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuditRepositorySuite(t *testing.T) {
	suite.Run(t, new(AuditRepositoryTestSuite))
}

func (s *AuditRepositoryTestSuite) entry() shared.AuditEntry {
	id := uuid.New()
	return shared.AuditEntry{
		BookingID:     id,
		Action:        shared.AuditActionUpdate,
		EntityType:    shared.AuditEntityBooking,
		EntityID:      id,
		OldValues:     map[string]any{"status": "pending"},
		NewValues:     map[string]any{"status": "confirmed"},
		ChangedFields: []string{"status"},
	}
}

func (s *AuditRepositoryTestSuite) TestRecord() {
	ctx := context.Background()
	ok := pgconn.CommandTag{}

	s.Run("success: insert runs between savepoint and release", func() {
		gomock.InOrder(
			s.mockTx.EXPECT().Exec(gomock.Any(), "SAVEPOINT audit_record").Return(ok, nil),
			s.mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).Return(ok, nil),
			s.mockTx.EXPECT().Exec(gomock.Any(), "RELEASE SAVEPOINT audit_record").Return(ok, nil),
		)

		err := s.repo.Record(ctx, s.mockTx, s.entry())
		s.Require().NoError(err)
	})

	s.Run("error: failed insert rolls back to the savepoint", func() {
		insertErr := &pgconn.PgError{Code: "23503", Message: "fk violated"}
		gomock.InOrder(
			s.mockTx.EXPECT().Exec(gomock.Any(), "SAVEPOINT audit_record").Return(ok, nil),
			s.mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any()).Return(ok, insertErr),
			s.mockTx.EXPECT().Exec(gomock.Any(), "ROLLBACK TO SAVEPOINT audit_record").Return(ok, nil),
		)

		err := s.repo.Record(ctx, s.mockTx, s.entry())
		s.Require().Error(err)
		s.True(infra.IsKind(err, infra.KindForeignKeyViolated))
	})
}
