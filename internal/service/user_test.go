package service_test

import (
	"context"
	"errors"

	"github.com/brianvoe/gofakeit/v7"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc       service.UserService
		userStore *mockUserStore
		orgStore  *mockOrganizationStore
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		userStore = &mockUserStore{}
		orgStore = &mockOrganizationStore{}
		svc = service.NewUserService(userStore, orgStore)
	})

	Describe("Profile", func() {
		It("returns the user with their organizations", func() {
			name := gofakeit.Name()
			userStore.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, Name: name, Email: gofakeit.Email()}, nil
			}
			orgStore.listForUserFn = func(_ context.Context, userID int64) ([]model.UserOrganization, error) {
				Expect(userID).To(Equal(int64(5)))
				return []model.UserOrganization{
					{Organization: model.Organization{ID: 1, Name: "Acme"}, Role: model.RoleOwner, MemberStatus: model.MembershipStatusActive},
				}, nil
			}

			user, orgs, err := svc.Profile(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(user.Name).To(Equal(name))
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0].Role).To(Equal(model.RoleOwner))
		})

		It("lists the default organization first", func() {
			def := int64(2)
			userStore.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, DefaultOrganizationID: &def}, nil
			}
			orgStore.listForUserFn = func(context.Context, int64) ([]model.UserOrganization, error) {
				return []model.UserOrganization{
					{Organization: model.Organization{ID: 1, Name: "Acme"}},
					{Organization: model.Organization{ID: 2, Name: "Globex"}},
					{Organization: model.Organization{ID: 3, Name: "Initech"}},
				}, nil
			}

			user, orgs, err := svc.Profile(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(*user.DefaultOrganizationID).To(Equal(int64(2)))
			Expect([]int64{orgs[0].ID, orgs[1].ID, orgs[2].ID}).To(Equal([]int64{2, 1, 3}))
		})

		It("falls back to the first organization when the default was left", func() {
			stale := int64(99)
			userStore.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, DefaultOrganizationID: &stale}, nil
			}
			orgStore.listForUserFn = func(context.Context, int64) ([]model.UserOrganization, error) {
				return []model.UserOrganization{{Organization: model.Organization{ID: 1, Name: "Acme"}}}, nil
			}

			user, _, err := svc.Profile(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(*user.DefaultOrganizationID).To(Equal(int64(1)))
		})

		It("clears the default when the user has no organizations", func() {
			stale := int64(99)
			userStore.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, DefaultOrganizationID: &stale}, nil
			}

			user, orgs, err := svc.Profile(ctx, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(BeEmpty())
			Expect(user.DefaultOrganizationID).To(BeNil())
		})

		It("maps a missing user", func() {
			userStore.getByIDFn = func(context.Context, int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			_, _, err := svc.Profile(ctx, 5)

			Expect(err).To(MatchError(service.ErrUserNotFound))
		})

		It("wraps organization listing failures", func() {
			orgStore.listForUserFn = func(context.Context, int64) ([]model.UserOrganization, error) {
				return nil, errors.New("db down")
			}

			_, _, err := svc.Profile(ctx, 5)

			Expect(err).To(MatchError(ContainSubstring("listing organizations")))
		})
	})
})
