package worker_test

import (
	"context"
	"fmt"
	"sync"

	"invoicely.app/api/internal/mailer"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
)

type mockConsumer struct {
	mu       sync.Mutex
	acked    []string
	requeued []string
	dlq      []string
	readFn   func(ctx context.Context) ([]queue.Message, error)
}

func (m *mockConsumer) Read(ctx context.Context) ([]queue.Message, error) {
	if m.readFn != nil {
		return m.readFn(ctx)
	}
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acked = append(m.acked, msg.ID)
	return nil
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dlq = append(m.dlq, msg.ID)
	return nil
}

type mockProcessor struct {
	processFn func(ctx context.Context, msg queue.Message) error
}

func (m *mockProcessor) Process(ctx context.Context, msg queue.Message) error {
	if m.processFn != nil {
		return m.processFn(ctx, msg)
	}
	return nil
}

type mockSender struct {
	mu     sync.Mutex
	sent   []mailer.Message
	sendFn func(ctx context.Context, msg mailer.Message) error
}

func (m *mockSender) Send(ctx context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendFn != nil {
		if err := m.sendFn(ctx, msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

// mockOrganizationStore only implements the reads the dispatcher performs.
type mockOrganizationStore struct {
	store.OrganizationStore
	getByIDFn func(ctx context.Context, id int64) (*model.Organization, error)
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &model.Organization{ID: id, Name: "Acme", Status: model.OrganizationStatusActive}, nil
}

type mockMembershipStore struct {
	store.MembershipStore
	members []model.Member
}

func (m *mockMembershipStore) ListActiveMembers(context.Context, int64) ([]model.Member, error) {
	return m.members, nil
}

type mockNotificationStore struct {
	mu      sync.Mutex
	created []*model.Notification
	err     error
}

func (m *mockNotificationStore) Create(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, n)
	return nil
}

type mockStoreProvider struct {
	notifications *mockNotificationStore
}

func (m *mockStoreProvider) Users() store.UserStore                 { return nil }
func (m *mockStoreProvider) Organizations() store.OrganizationStore { return nil }
func (m *mockStoreProvider) Memberships() store.MembershipStore     { return nil }
func (m *mockStoreProvider) Notifications() store.NotificationStore { return m.notifications }

type mockTxRunner struct {
	provider *mockStoreProvider
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores service.StoreProvider) error) error {
	return fn(m.provider)
}

type mockInvitationService struct {
	service.InvitationService
	cleanupAllFn func(ctx context.Context) (int, error)
}

func (m *mockInvitationService) CleanupExpiredAll(ctx context.Context) (int, error) {
	return m.cleanupAllFn(ctx)
}

func member(id int64, role model.Role) model.Member {
	uid := id
	return model.Member{
		OrganizationUser: model.OrganizationUser{
			ID:     id + 100,
			UserID: &uid,
			Email:  fmt.Sprintf("user%d@example.com", id),
			Role:   role,
			Status: model.MembershipStatusActive,
		},
	}
}
