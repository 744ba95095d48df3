package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"invoicely.app/api/internal/mailer"
	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/queue"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
	"invoicely.app/api/internal/worker"
)

func task(taskType queue.TaskType, body any) queue.Message {
	payload, err := json.Marshal(body)
	Expect(err).NotTo(HaveOccurred())
	return queue.Message{ID: "1-0", TaskType: taskType, OrganizationID: 7, Payload: payload, Attempt: 1}
}

var _ = Describe("Dispatcher", func() {
	var (
		orgs          *mockOrganizationStore
		memberships   *mockMembershipStore
		notifications *mockNotificationStore
		sender        *mockSender
		dispatcher    *worker.Dispatcher
		ctx           context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		orgs = &mockOrganizationStore{}
		memberships = &mockMembershipStore{}
		notifications = &mockNotificationStore{}
		sender = &mockSender{}

		metrics, err := worker.NewMetrics(nil)
		Expect(err).NotTo(HaveOccurred())

		dispatcher = worker.NewDispatcher(
			orgs,
			memberships,
			&mockTxRunner{provider: &mockStoreProvider{notifications: notifications}},
			sender,
			mailer.NewRenderer("https://app.invoicely.app", nil),
			metrics,
			worker.DispatcherConfig{DeliveryRetries: 2, Timeout: 10 * time.Second},
		)
	})

	Describe("invitation emails", func() {
		var email service.InvitationEmail

		BeforeEach(func() {
			email = service.InvitationEmail{
				Email:            "new@example.com",
				OrganizationID:   7,
				OrganizationName: "Acme",
				Role:             model.RoleMember,
				Token:            "tok-1",
				ExpiresAt:        time.Now().Add(7 * 24 * time.Hour),
			}
		})

		It("sends the rendered invitation", func() {
			Expect(dispatcher.Process(ctx, task(queue.TaskTypeInvitationEmail, email))).To(Succeed())

			Expect(sender.sent).To(HaveLen(1))
			Expect(sender.sent[0].To).To(Equal([]string{"new@example.com"}))
			Expect(sender.sent[0].Text).To(ContainSubstring("token=tok-1"))
		})

		It("skips invitations that already expired", func() {
			email.ExpiresAt = time.Now().Add(-time.Minute)

			Expect(dispatcher.Process(ctx, task(queue.TaskTypeInvitationEmail, email))).To(Succeed())
			Expect(sender.sent).To(BeEmpty())
		})

		It("retries transient SMTP failures", func() {
			failures := 1
			sender.sendFn = func(context.Context, mailer.Message) error {
				if failures > 0 {
					failures--
					return errors.New("421 try again later")
				}
				return nil
			}

			Expect(dispatcher.Process(ctx, task(queue.TaskTypeInvitationEmail, email))).To(Succeed())
			Expect(sender.sent).To(HaveLen(1))
		})

		It("gives up immediately on permanent SMTP failures", func() {
			calls := 0
			sender.sendFn = func(context.Context, mailer.Message) error {
				calls++
				return mailer.ErrPermanent
			}

			err := dispatcher.Process(ctx, task(queue.TaskTypeInvitationEmail, email))

			Expect(err).To(MatchError(worker.ErrPermanent))
			Expect(calls).To(Equal(1))
		})

		It("treats undecodable payloads as permanent", func() {
			msg := queue.Message{ID: "1-0", TaskType: queue.TaskTypeInvitationEmail, Payload: []byte("{")}

			Expect(dispatcher.Process(ctx, msg)).To(MatchError(worker.ErrPermanent))
		})
	})

	Describe("organization notifications", func() {
		BeforeEach(func() {
			memberships.members = []model.Member{
				member(1, model.RoleOwner),
				member(2, model.RoleAdmin),
				member(3, model.RoleMember),
				member(4, model.RoleViewer),
			}
		})

		It("writes one in-app notification per remaining member", func() {
			n := service.OrganizationNotification{
				OrganizationID: 7,
				Type:           model.NotificationMemberJoined,
				Data:           map[string]any{"email": "user3@example.com"},
				Channels:       []model.NotificationChannel{model.ChannelInApp},
				ExcludeRoles:   []model.Role{model.RoleViewer},
				ExcludeUserIDs: []int64{3},
			}

			Expect(dispatcher.Process(ctx, task(queue.TaskTypeOrganizationNotification, n))).To(Succeed())

			var userIDs []int64
			for _, created := range notifications.created {
				Expect(created.ID).NotTo(BeZero())
				Expect(created.Type).To(Equal(model.NotificationMemberJoined))
				userIDs = append(userIDs, created.UserID)
			}
			Expect(userIDs).To(ConsistOf(int64(1), int64(2)))
			Expect(sender.sent).To(BeEmpty())
		})

		It("emails members on the email channel", func() {
			n := service.OrganizationNotification{
				OrganizationID: 7,
				Type:           model.NotificationMemberLeft,
				Data:           map[string]any{"email": "gone@example.com"},
				Channels:       []model.NotificationChannel{model.ChannelEmail},
				ExcludeRoles:   []model.Role{model.RoleMember, model.RoleViewer},
			}

			Expect(dispatcher.Process(ctx, task(queue.TaskTypeOrganizationNotification, n))).To(Succeed())

			Expect(notifications.created).To(BeEmpty())
			Expect(sender.sent).To(HaveLen(2))
			Expect(sender.sent[0].Subject).To(Equal("A member left Acme"))
		})

		It("drops notifications for deleted organizations", func() {
			orgs.getByIDFn = func(context.Context, int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			n := service.OrganizationNotification{OrganizationID: 7, Type: model.NotificationMemberJoined}
			Expect(dispatcher.Process(ctx, task(queue.TaskTypeOrganizationNotification, n))).To(Succeed())
			Expect(notifications.created).To(BeEmpty())
		})

		It("surfaces store failures for a retry", func() {
			notifications.err = errors.New("deadlock detected")

			n := service.OrganizationNotification{OrganizationID: 7, Type: model.NotificationMemberJoined}
			err := dispatcher.Process(ctx, task(queue.TaskTypeOrganizationNotification, n))

			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(worker.ErrPermanent))
		})
	})
})

var _ = Describe("Recipients", func() {
	It("skips pending rows and exclusions", func() {
		pending := member(9, model.RoleMember)
		pending.Status = model.MembershipStatusPending
		invite := model.Member{OrganizationUser: model.OrganizationUser{Role: model.RoleMember, Status: model.MembershipStatusActive}}

		out := worker.Recipients(
			[]model.Member{member(1, model.RoleOwner), member(2, model.RoleAdmin), pending, invite},
			[]model.Role{model.RoleOwner},
			nil,
		)

		Expect(out).To(HaveLen(1))
		Expect(*out[0].UserID).To(Equal(int64(2)))
	})
})
