package model

type NotificationType string

const (
	NotificationMemberJoined NotificationType = "MEMBER_JOINED"
	NotificationMemberLeft   NotificationType = "MEMBER_LEFT"
)

type NotificationChannel string

const (
	ChannelInApp NotificationChannel = "in_app"
	ChannelEmail NotificationChannel = "email"
)

type Notification struct {
	ID             int64
	OrganizationID int64
	UserID         int64
	Type           NotificationType
	Data           map[string]any
}
