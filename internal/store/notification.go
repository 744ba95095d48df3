package store

import (
	"context"
	"encoding/json"
	"fmt"

	"invoicely.app/api/core/db/sqlc"
	"invoicely.app/api/internal/model"
)

type notificationStore struct {
	queries *sqlc.Queries
}

func newNotificationStore(queries *sqlc.Queries) NotificationStore {
	return &notificationStore{queries: queries}
}

func (s *notificationStore) Create(ctx context.Context, n *model.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("marshaling notification data: %w", err)
	}
	return mapError(s.queries.CreateNotification(ctx, sqlc.CreateNotificationParams{
		ID:             n.ID,
		OrganizationID: n.OrganizationID,
		UserID:         n.UserID,
		Type:           string(n.Type),
		Data:           data,
	}))
}
