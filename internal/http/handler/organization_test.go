package handler_test

import (
	"context"
	"errors"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

var _ = Describe("OrganizationHandler", func() {
	var ts *testServer

	BeforeEach(func() {
		ts = newTestServer(false)
	})

	Describe("authentication", func() {
		It("rejects requests without a session", func() {
			w := ts.do(http.MethodGet, "/api/v1/organizations", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(w)["error"]).To(Equal("not authenticated"))
		})

		It("rejects expired sessions", func() {
			w := ts.do(http.MethodGet, "/api/v1/organizations", nil, "X-Session-ID", "1")
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(decode(w)["error"]).To(Equal("session expired"))
		})

		It("accepts the session cookie", func() {
			w := ts.do(http.MethodGet, "/api/v1/organizations", nil, "Cookie", "invoicely_session="+testSessionID)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("Create", func() {
		It("creates the organization for the caller", func() {
			var gotCreator int64
			var gotParams service.CreateOrganizationParams
			ts.services.organizations.createFn = func(_ context.Context, creatorID int64, params service.CreateOrganizationParams) (*model.Organization, error) {
				gotCreator, gotParams = creatorID, params
				return &model.Organization{ID: 555, Name: params.Name, Status: model.OrganizationStatusActive}, nil
			}

			w := ts.authed(http.MethodPost, "/api/v1/organizations", map[string]any{
				"name":     "Acme",
				"industry": "Consulting",
				"settings": map[string]any{"currency": "EUR"},
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(gotCreator).To(Equal(testUserID))
			Expect(gotParams.Name).To(Equal("Acme"))
			Expect(*gotParams.Industry).To(Equal("Consulting"))
			Expect(gotParams.Settings).To(HaveKeyWithValue("currency", "EUR"))

			org := decode(w)["organization"].(map[string]any)
			Expect(org["id"]).To(Equal("555"))
		})

		It("lists validation failures per field", func() {
			w := ts.authed(http.MethodPost, "/api/v1/organizations", map[string]any{"industry": "x"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			errs := decode(w)["errors"].([]any)
			Expect(errs).To(HaveLen(1))
			Expect(errs[0]).To(HaveKeyWithValue("field", "name"))
		})

		It("rejects malformed JSON", func() {
			w := ts.authed(http.MethodPost, "/api/v1/organizations", "{not json")
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("invalid request body"))
		})

		It("reports the business account limit", func() {
			ts.services.organizations.createFn = func(context.Context, int64, service.CreateOrganizationParams) (*model.Organization, error) {
				return nil, service.ErrBusinessOrgLimit
			}

			w := ts.authed(http.MethodPost, "/api/v1/organizations", map[string]any{"name": "Second"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("Business accounts can only have one organization"))
		})
	})

	Describe("ListMine", func() {
		It("returns an empty list rather than null", func() {
			w := ts.authed(http.MethodGet, "/api/v1/organizations", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"organizations": []}`))
		})

		It("exposes the caller's role on each organization", func() {
			ts.services.organizations.listForUserFn = func(_ context.Context, userID int64) ([]model.UserOrganization, error) {
				Expect(userID).To(Equal(testUserID))
				return []model.UserOrganization{{
					Organization: model.Organization{ID: testOrgID, Name: "Acme"},
					Role:         model.RoleAdmin,
					MemberStatus: model.MembershipStatusActive,
				}}, nil
			}

			w := ts.authed(http.MethodGet, "/api/v1/organizations", nil)

			orgs := decode(w)["organizations"].([]any)
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0]).To(HaveKeyWithValue("role", "ADMIN"))
			Expect(orgs[0]).To(HaveKeyWithValue("user_status", "ACTIVE"))
		})
	})

	Describe("role checks", func() {
		It("forbids non-members", func() {
			w := ts.authed(http.MethodGet, "/api/v1/organizations/999", nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("rejects a non-numeric organization id", func() {
			w := ts.authed(http.MethodGet, "/api/v1/organizations/acme", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("enforces the minimum role per route",
			func(role model.Role, method, path string, body any, expected int) {
				ts.role = role
				ts.services.invitations.listPendingFn = func(context.Context, int64) ([]model.OrganizationUser, error) {
					return nil, nil
				}
				w := ts.authed(method, path, body)
				Expect(w.Code).To(Equal(expected))
			},
			Entry("viewer reads the organization", model.RoleViewer, http.MethodGet, "/api/v1/organizations/100", nil, http.StatusOK),
			Entry("viewer cannot update", model.RoleViewer, http.MethodPut, "/api/v1/organizations/100", map[string]any{"name": "x"}, http.StatusForbidden),
			Entry("manager cannot update", model.RoleManager, http.MethodPut, "/api/v1/organizations/100", map[string]any{"name": "x"}, http.StatusForbidden),
			Entry("admin updates", model.RoleAdmin, http.MethodPut, "/api/v1/organizations/100", map[string]any{"name": "x"}, http.StatusOK),
			Entry("admin cannot delete", model.RoleAdmin, http.MethodDelete, "/api/v1/organizations/100", nil, http.StatusForbidden),
			Entry("owner deletes", model.RoleOwner, http.MethodDelete, "/api/v1/organizations/100", nil, http.StatusOK),
			Entry("member cannot list pending invitations", model.RoleMember, http.MethodGet, "/api/v1/organizations/100/invitations/pending", nil, http.StatusForbidden),
			Entry("admin lists pending invitations", model.RoleAdmin, http.MethodGet, "/api/v1/organizations/100/invitations/pending", nil, http.StatusOK),
			Entry("viewer reads settings", model.RoleViewer, http.MethodGet, "/api/v1/organizations/100/settings", nil, http.StatusOK),
			Entry("viewer cannot write settings", model.RoleViewer, http.MethodPut, "/api/v1/organizations/100/settings", map[string]any{"a": 1}, http.StatusForbidden),
		)
	})

	Describe("Get", func() {
		It("returns 404 for a deleted organization", func() {
			ts.services.organizations.getFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, service.ErrOrganizationNotFound
			}

			w := ts.authed(http.MethodGet, "/api/v1/organizations/100", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(decode(w)["error"]).To(Equal("organization not found"))
		})
	})

	Describe("Update", func() {
		It("passes only the supplied fields", func() {
			var got service.UpdateOrganizationParams
			ts.services.organizations.updateFn = func(_ context.Context, orgID int64, params service.UpdateOrganizationParams) (*model.Organization, error) {
				Expect(orgID).To(Equal(testOrgID))
				got = params
				return &model.Organization{ID: orgID, Name: *params.Name}, nil
			}

			w := ts.authed(http.MethodPut, "/api/v1/organizations/100", map[string]any{"name": "Renamed"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(*got.Name).To(Equal("Renamed"))
			Expect(got.Industry).To(BeNil())
			Expect(got.Size).To(BeNil())
		})
	})

	Describe("members", func() {
		It("lists members", func() {
			ts.services.organizations.listMembersFn = func(context.Context, int64) ([]model.Member, error) {
				return []model.Member{{Name: "Ada", OrganizationUser: model.OrganizationUser{Email: "ada@example.com", Role: model.RoleOwner}}}, nil
			}

			w := ts.authed(http.MethodGet, "/api/v1/organizations/100/members", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			members := decode(w)["members"].([]any)
			Expect(members[0]).To(HaveKeyWithValue("name", "Ada"))
		})

		It("normalizes the role on update", func() {
			var got model.MemberPatch
			ts.services.organizations.updateMemberFn = func(_ context.Context, _, userID int64, patch model.MemberPatch) (*model.OrganizationUser, error) {
				Expect(userID).To(Equal(int64(8)))
				got = patch
				return &model.OrganizationUser{ID: 2, Role: *patch.Role}, nil
			}

			w := ts.authed(http.MethodPut, "/api/v1/organizations/100/members/8", map[string]any{"role": "manager"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(*got.Role).To(Equal(model.RoleManager))
			Expect(got.Department).To(BeNil())
		})

		It("rejects unknown roles", func() {
			w := ts.authed(http.MethodPut, "/api/v1/organizations/100/members/8", map[string]any{"role": "emperor"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["errors"]).To(HaveLen(1))
		})

		It("returns 404 when removing a non-member", func() {
			ts.services.organizations.removeMemberFn = func(context.Context, int64, int64) error {
				return service.ErrMemberNotFound
			}

			w := ts.authed(http.MethodDelete, "/api/v1/organizations/100/members/8", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a bad user id", func() {
			w := ts.authed(http.MethodDelete, "/api/v1/organizations/100/members/abc", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("settings", func() {
		It("returns the merged settings", func() {
			ts.services.organizations.updateSettingsFn = func(_ context.Context, _ int64, incoming model.Settings) (model.Settings, error) {
				return model.Settings{"b": 2}.Merge(incoming), nil
			}

			w := ts.authed(http.MethodPut, "/api/v1/organizations/100/settings", map[string]any{"a": map[string]any{"y": 2}})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"settings": {"a": {"y": 2}, "b": 2}}`))
		})

		It("rejects a non-object body", func() {
			w := ts.authed(http.MethodPut, "/api/v1/organizations/100/settings", `[1,2]`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns an empty object when nothing is stored", func() {
			w := ts.authed(http.MethodGet, "/api/v1/organizations/100/settings", nil)
			Expect(w.Body.String()).To(MatchJSON(`{"settings": {}}`))
		})
	})

	Describe("internal errors", func() {
		It("includes the error text in development", func() {
			ts.services.organizations.getFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, errors.New("connection reset")
			}

			w := ts.authed(http.MethodGet, "/api/v1/organizations/100", nil)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)["error"]).To(Equal("failed to get organization: connection reset"))
		})

		It("hides the error text in production", func() {
			ts = newTestServer(true)
			ts.services.organizations.getFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, errors.New("connection reset")
			}

			w := ts.authed(http.MethodGet, "/api/v1/organizations/100", nil)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(decode(w)["error"]).To(Equal("failed to get organization"))
		})
	})
})
