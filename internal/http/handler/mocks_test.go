package handler_test

import (
	"context"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/report"
	"invoicely.app/api/internal/service"
)

type mockServices struct {
	users         *mockUserService
	auth          *mockAuthService
	organizations *mockOrganizationService
	invitations   *mockInvitationService
	analytics     *mockAnalyticsService
}

func newMockServices() *mockServices {
	return &mockServices{
		users:         &mockUserService{},
		auth:          &mockAuthService{},
		organizations: &mockOrganizationService{},
		invitations:   &mockInvitationService{},
		analytics:     &mockAnalyticsService{},
	}
}

func (m *mockServices) Users() service.UserService                 { return m.users }
func (m *mockServices) Auth() service.AuthService                  { return m.auth }
func (m *mockServices) Organizations() service.OrganizationService { return m.organizations }
func (m *mockServices) Invitations() service.InvitationService     { return m.invitations }
func (m *mockServices) Analytics() service.AnalyticsService        { return m.analytics }

type mockUserService struct {
	profileFn func(ctx context.Context, userID int64) (*model.User, []model.UserOrganization, error)
}

func (m *mockUserService) Profile(ctx context.Context, userID int64) (*model.User, []model.UserOrganization, error) {
	if m.profileFn != nil {
		return m.profileFn(ctx, userID)
	}
	return &model.User{ID: userID}, nil, nil
}

type mockAuthService struct {
	authenticateFn func(ctx context.Context, rawSessionID string) (*model.Principal, error)
	logoutFn       func(ctx context.Context, userID, sessionID int64) error
}

func (m *mockAuthService) Authenticate(ctx context.Context, rawSessionID string) (*model.Principal, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, rawSessionID)
	}
	return nil, service.ErrSessionExpired
}

func (m *mockAuthService) Logout(ctx context.Context, userID, sessionID int64) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID, sessionID)
	}
	return nil
}

type mockOrganizationService struct {
	createFn         func(ctx context.Context, creatorID int64, params service.CreateOrganizationParams) (*model.Organization, error)
	listForUserFn    func(ctx context.Context, userID int64) ([]model.UserOrganization, error)
	getFn            func(ctx context.Context, orgID int64) (*model.Organization, error)
	updateFn         func(ctx context.Context, orgID int64, params service.UpdateOrganizationParams) (*model.Organization, error)
	deleteFn         func(ctx context.Context, orgID int64) error
	listMembersFn    func(ctx context.Context, orgID int64) ([]model.Member, error)
	updateMemberFn   func(ctx context.Context, orgID, userID int64, patch model.MemberPatch) (*model.OrganizationUser, error)
	removeMemberFn   func(ctx context.Context, orgID, userID int64) error
	membershipForFn  func(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error)
	getSettingsFn    func(ctx context.Context, orgID int64) (model.Settings, error)
	updateSettingsFn func(ctx context.Context, orgID int64, incoming model.Settings) (model.Settings, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, creatorID int64, params service.CreateOrganizationParams) (*model.Organization, error) {
	if m.createFn != nil {
		return m.createFn(ctx, creatorID, params)
	}
	return nil, nil
}

func (m *mockOrganizationService) ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID)
	}
	return &model.Organization{ID: orgID}, nil
}

func (m *mockOrganizationService) Update(ctx context.Context, orgID int64, params service.UpdateOrganizationParams) (*model.Organization, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, orgID, params)
	}
	return &model.Organization{ID: orgID}, nil
}

func (m *mockOrganizationService) Delete(ctx context.Context, orgID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, orgID)
	}
	return nil
}

func (m *mockOrganizationService) ListMembers(ctx context.Context, orgID int64) ([]model.Member, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrganizationService) UpdateMember(ctx context.Context, orgID, userID int64, patch model.MemberPatch) (*model.OrganizationUser, error) {
	if m.updateMemberFn != nil {
		return m.updateMemberFn(ctx, orgID, userID, patch)
	}
	return nil, nil
}

func (m *mockOrganizationService) RemoveMember(ctx context.Context, orgID, userID int64) error {
	if m.removeMemberFn != nil {
		return m.removeMemberFn(ctx, orgID, userID)
	}
	return nil
}

func (m *mockOrganizationService) MembershipFor(ctx context.Context, orgID, userID int64) (*model.OrganizationUser, error) {
	if m.membershipForFn != nil {
		return m.membershipForFn(ctx, orgID, userID)
	}
	return nil, service.ErrMemberNotFound
}

func (m *mockOrganizationService) GetSettings(ctx context.Context, orgID int64) (model.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrganizationService) UpdateSettings(ctx context.Context, orgID int64, incoming model.Settings) (model.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, orgID, incoming)
	}
	return incoming, nil
}

type mockInvitationService struct {
	createFn               func(ctx context.Context, params service.InviteParams) (*model.OrganizationUser, error)
	validateFn             func(ctx context.Context, token string) (*model.OrganizationUser, error)
	detailsFn              func(ctx context.Context, token string) (*model.Invitation, error)
	acceptFn               func(ctx context.Context, token string, userID int64) (*model.OrganizationUser, error)
	cancelFn               func(ctx context.Context, orgID, invitationID int64) (bool, error)
	resendFn               func(ctx context.Context, params service.InviteParams) (*model.OrganizationUser, error)
	cleanupExpiredFn       func(ctx context.Context, token string) error
	cleanupExpiredForOrgFn func(ctx context.Context, orgID int64) (int, error)
	cleanupExpiredAllFn    func(ctx context.Context) (int, error)
	listPendingFn          func(ctx context.Context, orgID int64) ([]model.OrganizationUser, error)
}

func (m *mockInvitationService) Create(ctx context.Context, params service.InviteParams) (*model.OrganizationUser, error) {
	if m.createFn != nil {
		return m.createFn(ctx, params)
	}
	return nil, nil
}

func (m *mockInvitationService) Validate(ctx context.Context, token string) (*model.OrganizationUser, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	return nil, service.ErrInvitationNotFound
}

func (m *mockInvitationService) Details(ctx context.Context, token string) (*model.Invitation, error) {
	if m.detailsFn != nil {
		return m.detailsFn(ctx, token)
	}
	return nil, service.ErrInvitationNotFound
}

func (m *mockInvitationService) Accept(ctx context.Context, token string, userID int64) (*model.OrganizationUser, error) {
	if m.acceptFn != nil {
		return m.acceptFn(ctx, token, userID)
	}
	return nil, service.ErrInvitationNotFound
}

func (m *mockInvitationService) Cancel(ctx context.Context, orgID, invitationID int64) (bool, error) {
	if m.cancelFn != nil {
		return m.cancelFn(ctx, orgID, invitationID)
	}
	return false, nil
}

func (m *mockInvitationService) Resend(ctx context.Context, params service.InviteParams) (*model.OrganizationUser, error) {
	if m.resendFn != nil {
		return m.resendFn(ctx, params)
	}
	return nil, nil
}

func (m *mockInvitationService) CleanupExpired(ctx context.Context, token string) error {
	if m.cleanupExpiredFn != nil {
		return m.cleanupExpiredFn(ctx, token)
	}
	return nil
}

func (m *mockInvitationService) CleanupExpiredForOrg(ctx context.Context, orgID int64) (int, error) {
	if m.cleanupExpiredForOrgFn != nil {
		return m.cleanupExpiredForOrgFn(ctx, orgID)
	}
	return 0, nil
}

func (m *mockInvitationService) CleanupExpiredAll(ctx context.Context) (int, error) {
	if m.cleanupExpiredAllFn != nil {
		return m.cleanupExpiredAllFn(ctx)
	}
	return 0, nil
}

func (m *mockInvitationService) ListPending(ctx context.Context, orgID int64) ([]model.OrganizationUser, error) {
	if m.listPendingFn != nil {
		return m.listPendingFn(ctx, orgID)
	}
	return nil, nil
}

type mockAnalyticsService struct {
	overviewFn     func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Overview, error)
	monthlyStatsFn func(ctx context.Context, orgID int64, tr model.TimeRange) ([]model.MonthlyStat, error)
	invoicesFn     func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.InvoiceReport, error)
	clientsFn      func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.ClientReport, error)
	documentsFn    func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.DocumentReport, error)
	teamFn         func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.TeamReport, error)
	paymentsFn     func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.PaymentReport, error)
	reportFn       func(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Report, error)
	exportFn       func(ctx context.Context, orgID int64, tr model.TimeRange, format string) (*report.Export, error)
}

func (m *mockAnalyticsService) Overview(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx, orgID, tr)
	}
	return &model.Overview{}, nil
}

func (m *mockAnalyticsService) MonthlyStats(ctx context.Context, orgID int64, tr model.TimeRange) ([]model.MonthlyStat, error) {
	if m.monthlyStatsFn != nil {
		return m.monthlyStatsFn(ctx, orgID, tr)
	}
	return []model.MonthlyStat{}, nil
}

func (m *mockAnalyticsService) Invoices(ctx context.Context, orgID int64, tr model.TimeRange) (*model.InvoiceReport, error) {
	if m.invoicesFn != nil {
		return m.invoicesFn(ctx, orgID, tr)
	}
	return &model.InvoiceReport{}, nil
}

func (m *mockAnalyticsService) Clients(ctx context.Context, orgID int64, tr model.TimeRange) (*model.ClientReport, error) {
	if m.clientsFn != nil {
		return m.clientsFn(ctx, orgID, tr)
	}
	return &model.ClientReport{}, nil
}

func (m *mockAnalyticsService) Documents(ctx context.Context, orgID int64, tr model.TimeRange) (*model.DocumentReport, error) {
	if m.documentsFn != nil {
		return m.documentsFn(ctx, orgID, tr)
	}
	return &model.DocumentReport{}, nil
}

func (m *mockAnalyticsService) Team(ctx context.Context, orgID int64, tr model.TimeRange) (*model.TeamReport, error) {
	if m.teamFn != nil {
		return m.teamFn(ctx, orgID, tr)
	}
	return &model.TeamReport{}, nil
}

func (m *mockAnalyticsService) Payments(ctx context.Context, orgID int64, tr model.TimeRange) (*model.PaymentReport, error) {
	if m.paymentsFn != nil {
		return m.paymentsFn(ctx, orgID, tr)
	}
	return &model.PaymentReport{}, nil
}

func (m *mockAnalyticsService) Report(ctx context.Context, orgID int64, tr model.TimeRange) (*model.Report, error) {
	if m.reportFn != nil {
		return m.reportFn(ctx, orgID, tr)
	}
	return &model.Report{}, nil
}

func (m *mockAnalyticsService) Export(ctx context.Context, orgID int64, tr model.TimeRange, format string) (*report.Export, error) {
	if m.exportFn != nil {
		return m.exportFn(ctx, orgID, tr, format)
	}
	return nil, nil
}
