package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rivalioo/internal/domain/entity"
	"rivalioo/internal/domain/repository"
	"rivalioo/pkg/errors"
)

const collectionProfiles = "profiles"

type firestoreProfileRepository struct {
	client *firestore.Client
}

func NewFirestoreProfileRepository(client *firestore.Client) repository.ProfileRepository {
	return &firestoreProfileRepository{
		client: client,
	}
}

func (r *firestoreProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	return getDoc[entity.Profile](ctx, r.client.Collection(collectionProfiles).Doc(id), "Profile")
}

func (r *firestoreProfileRepository) SetOnlineStatus(ctx context.Context, id string, online bool, at time.Time) error {
	_, err := r.client.Collection(collectionProfiles).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isOnline", Value: online},
		{Path: "lastSeenAt", Value: at},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Profile", err)
		}
		return errors.Internal("Failed to update online status", err)
	}
	return nil
}
