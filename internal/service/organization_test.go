package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/common/id"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		svc         service.OrganizationService
		users       *mockUserStore
		orgs        *mockOrganizationStore
		memberships *fakeMembershipStore
		notifier    *recordingNotifier
		tx          *mockTxRunner
		ctx         context.Context
	)

	BeforeEach(func() {
		Expect(id.Init(1)).To(Succeed())

		ctx = context.Background()
		users = &mockUserStore{}
		orgs = &mockOrganizationStore{}
		memberships = newFakeMembershipStore()
		notifier = &recordingNotifier{}
		tx = &mockTxRunner{provider: &mockStoreProvider{users: users, orgs: orgs, memberships: memberships}}
		svc = service.NewOrganizationService(orgs, memberships, tx, notifier)
	})

	Describe("Create", func() {
		It("creates an active subscribed organization owned by the creator", func() {
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Email: "founder@example.com", AccountType: model.AccountTypeIndividual}, nil
			}
			users.setDefaultOrganizationFn = func(context.Context, int64, *int64) error {
				Fail("individual accounts keep their default organization")
				return nil
			}

			org, err := svc.Create(ctx, 10, service.CreateOrganizationParams{
				Name:     "  Acme Studio ",
				Industry: strPtr("design"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Name).To(Equal("Acme Studio"))
			Expect(org.Status).To(Equal(model.OrganizationStatusActive))
			Expect(org.IsSubscribed).To(BeTrue())
			Expect(org.CreatedBy).To(Equal(int64(10)))
			Expect(org.Settings).To(Equal(model.Settings{}))
			Expect(tx.calls).To(Equal(1))
			Expect(users.getForUpdateCalls).To(Equal(1))

			owner, err := memberships.GetActiveMembership(ctx, org.ID, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(owner.Role).To(Equal(model.RoleOwner))
			Expect(owner.Email).To(Equal("founder@example.com"))
		})

		It("limits business accounts to one organization", func() {
			const businessID = int64(20)
			var defaultOrg *int64
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Email: "ceo@example.com", AccountType: model.AccountTypeBusiness}, nil
			}
			users.countOwnedOrganizationsFn = func(ctx context.Context, userID int64) (int64, error) {
				var owned int64
				for _, m := range memberships.rows {
					if m.UserID != nil && *m.UserID == userID && m.Role == model.RoleOwner {
						owned++
					}
				}
				return owned, nil
			}
			users.setDefaultOrganizationFn = func(_ context.Context, userID int64, orgID *int64) error {
				Expect(userID).To(Equal(businessID))
				defaultOrg = orgID
				return nil
			}

			first, err := svc.Create(ctx, businessID, service.CreateOrganizationParams{Name: "First Co"})
			Expect(err).NotTo(HaveOccurred())
			Expect(defaultOrg).NotTo(BeNil())
			Expect(*defaultOrg).To(Equal(first.ID))

			_, err = svc.Create(ctx, businessID, service.CreateOrganizationParams{Name: "Second Co"})
			Expect(err).To(MatchError(service.ErrBusinessOrgLimit))
			Expect(err.Error()).To(Equal("business accounts can only have one organization"))
			Expect(orgs.createCalls).To(Equal(1))
		})

		It("reports a missing creator", func() {
			users.getForUpdateFn = func(context.Context, int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Create(ctx, 1, service.CreateOrganizationParams{Name: "Nobody"})

			Expect(err).To(MatchError(service.ErrUserNotFound))
			Expect(orgs.createCalls).To(BeZero())
		})

		It("requires a name", func() {
			_, err := svc.Create(ctx, 1, service.CreateOrganizationParams{Name: " "})
			Expect(err).To(MatchError(service.ErrNameRequired))
			Expect(tx.calls).To(BeZero())
		})

		It("propagates store failures from inside the transaction", func() {
			orgs.createFn = func(context.Context, *model.Organization) error {
				return errors.New("insert failed")
			}

			_, err := svc.Create(ctx, 1, service.CreateOrganizationParams{Name: "Broken"})

			Expect(err).To(MatchError(ContainSubstring("creating organization: insert failed")))
			Expect(memberships.count()).To(BeZero())
		})
	})

	Describe("Get", func() {
		It("maps missing and deleted organizations", func() {
			orgs.getByIDFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Get(ctx, 1)

			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})
	})

	Describe("Update", func() {
		It("applies only the provided fields", func() {
			orgs.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Name: "Old", Industry: strPtr("retail"), Size: strPtr("1-10")}, nil
			}
			var saved *model.Organization
			orgs.updateFn = func(_ context.Context, org *model.Organization) error {
				saved = org
				return nil
			}

			org, err := svc.Update(ctx, 5, service.UpdateOrganizationParams{
				Name: strPtr("New"),
				Size: strPtr("11-50"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Name).To(Equal("New"))
			Expect(*org.Industry).To(Equal("retail"))
			Expect(*org.Size).To(Equal("11-50"))
			Expect(saved).To(Equal(org))
		})
	})

	Describe("Delete", func() {
		It("maps an already deleted organization", func() {
			orgs.softDeleteFn = func(context.Context, int64) error {
				return store.ErrNotFound
			}

			Expect(svc.Delete(ctx, 5)).To(MatchError(service.ErrOrganizationNotFound))
		})
	})

	Describe("members", func() {
		const orgID = int64(42)

		BeforeEach(func() {
			memberships.put(model.OrganizationUser{
				ID: id.New(), OrganizationID: orgID, UserID: int64Ptr(1), Email: "owner@example.com",
				Role: model.RoleOwner, Status: model.MembershipStatusActive,
			})
			memberships.put(model.OrganizationUser{
				ID: id.New(), OrganizationID: orgID, UserID: int64Ptr(2), Email: "staff@example.com",
				Role: model.RoleMember, Status: model.MembershipStatusActive, Department: strPtr("Ops"),
			})
			memberships.names[1] = "Olivia Owner"
			memberships.names[2] = "Sam Staff"
		})

		It("lists active members with their names", func() {
			members, err := svc.ListMembers(ctx, orgID)

			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(2))
			names := []string{members[0].Name, members[1].Name}
			Expect(names).To(ConsistOf("Olivia Owner", "Sam Staff"))
		})

		It("patches a member and keeps omitted fields", func() {
			role := model.RoleManager

			member, err := svc.UpdateMember(ctx, orgID, 2, model.MemberPatch{Role: &role, Position: strPtr("Lead")})

			Expect(err).NotTo(HaveOccurred())
			Expect(member.Role).To(Equal(model.RoleManager))
			Expect(*member.Position).To(Equal("Lead"))
			Expect(*member.Department).To(Equal("Ops"))
		})

		It("allows demoting the only owner", func() {
			role := model.RoleViewer

			member, err := svc.UpdateMember(ctx, orgID, 1, model.MemberPatch{Role: &role})

			Expect(err).NotTo(HaveOccurred())
			Expect(member.Role).To(Equal(model.RoleViewer))
		})

		It("rejects unknown roles", func() {
			role := model.Role("CEO")

			_, err := svc.UpdateMember(ctx, orgID, 2, model.MemberPatch{Role: &role})

			Expect(err).To(MatchError(service.ErrInvalidRole))
		})

		It("reports unknown members", func() {
			_, err := svc.UpdateMember(ctx, orgID, 99, model.MemberPatch{})
			Expect(err).To(MatchError(service.ErrMemberNotFound))

			Expect(svc.RemoveMember(ctx, orgID, 99)).To(MatchError(service.ErrMemberNotFound))
		})

		It("removes a member and notifies the rest", func() {
			Expect(svc.RemoveMember(ctx, orgID, 2)).To(Succeed())

			_, err := svc.MembershipFor(ctx, orgID, 2)
			Expect(err).To(MatchError(service.ErrMemberNotFound))

			Expect(notifier.notifications).To(HaveLen(1))
			n := notifier.notifications[0]
			Expect(n.Type).To(Equal(model.NotificationMemberLeft))
			Expect(n.Data).To(HaveKeyWithValue("email", "staff@example.com"))
			Expect(n.ExcludeUserIDs).To(ConsistOf(int64(2)))
		})

		It("removes the member even when the notification cannot be enqueued", func() {
			notifier.err = errors.New("queue unavailable")

			Expect(svc.RemoveMember(ctx, orgID, 2)).To(Succeed())
			Expect(memberships.count()).To(Equal(1))
		})
	})

	Describe("settings", func() {
		It("merges shallowly so nested objects are replaced", func() {
			orgs.getSettingsForUpdateFn = func(context.Context, int64) (model.Settings, error) {
				return model.Settings{"a": map[string]any{"x": 1}, "b": 2}, nil
			}
			var written model.Settings
			orgs.updateSettingsFn = func(_ context.Context, _ int64, s model.Settings) (model.Settings, error) {
				written = s
				return s, nil
			}

			saved, err := svc.UpdateSettings(ctx, 1, model.Settings{"a": map[string]any{"y": 2}})

			Expect(err).NotTo(HaveOccurred())
			Expect(written).To(Equal(model.Settings{"a": map[string]any{"y": 2}, "b": 2}))
			Expect(saved).To(Equal(written))
			Expect(tx.calls).To(Equal(1))
		})

		It("maps a missing organization", func() {
			orgs.getSettingsForUpdateFn = func(context.Context, int64) (model.Settings, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.UpdateSettings(ctx, 1, model.Settings{"theme": "dark"})

			Expect(err).To(MatchError(service.ErrOrganizationNotFound))
		})

		It("reads settings from the organization", func() {
			orgs.getByIDFn = func(_ context.Context, id int64) (*model.Organization, error) {
				return &model.Organization{ID: id, Settings: model.Settings{"currency": "EUR"}}, nil
			}

			settings, err := svc.GetSettings(ctx, 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(settings).To(HaveKeyWithValue("currency", "EUR"))
		})
	})
})
