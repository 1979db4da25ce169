package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"bookstore/internal/domain/repository"
	mockRepo "bookstore/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// txFixture wires transaction manager expectations shared by the service tests.
// onExecute registers one Execute expectation that runs the transactional
// closure against a fresh repository factory mock and returns result.
type txFixture struct {
	t         *testing.T
	txManager *mockRepo.MockTransactionManager
}

func (fx txFixture) onExecute(ctx context.Context, result error, setup func(factory *mockRepo.MockRepositoryFactory)) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(fx.t)
			setup(factory)

			_ = fn(factory)
		}).
		Return(result)
}
