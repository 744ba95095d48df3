package service

import (
	"time"

	"invoicely.app/api/core/config"
	"invoicely.app/api/internal/store"
)

type Services struct {
	stores         *store.Stores
	txRunner       TxRunner
	notifier       Notifier
	invitationsCfg config.InvitationsConfig
	now            func() time.Time
}

func NewServices(stores *store.Stores, txRunner TxRunner, notifier Notifier, invitationsCfg config.InvitationsConfig) *Services {
	return &Services{
		stores:         stores,
		txRunner:       txRunner,
		notifier:       notifier,
		invitationsCfg: invitationsCfg,
		now:            time.Now,
	}
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Organizations())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.stores.Sessions())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(
		s.stores.Organizations(),
		s.stores.Memberships(),
		s.txRunner,
		s.notifier,
	)
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.stores.Memberships(),
		s.stores.Organizations(),
		s.txRunner,
		s.notifier,
		s.invitationsCfg.Expiry(),
		s.now,
	)
}

func (s *Services) Analytics() AnalyticsService {
	return NewAnalyticsService(s.stores.Analytics(), s.stores.Memberships(), s.now)
}
