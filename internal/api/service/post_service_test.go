package service

import (
	"context"
	"ctchen222/blog-api/internal/api/models"
	"ctchen222/blog-api/internal/api/repository/mocks"
	"ctchen222/blog-api/pkg/proto"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCanMutate(t *testing.T) {
	post := &models.Post{ID: models.NewPostID(), UserID: 1}

	assert.True(t, CanMutate(post, 1))
	assert.False(t, CanMutate(post, 2))
	assert.False(t, CanMutate(post, 0))
}

func TestPostService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPostRepository(ctrl)
	svc := NewPostService(repo)

	want := &models.Post{ID: models.NewPostID(), UserID: 3, Title: "T", Content: "C"}
	repo.EXPECT().
		Create(gomock.Any(), models.UserID(3), models.Title("T"), models.Content("C")).
		Return(want, nil)

	got, err := svc.Create(context.Background(), 3, &proto.PostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPostService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPostRepository(ctrl)
	svc := NewPostService(repo)

	id := models.NewPostID()
	repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_Update(t *testing.T) {
	id := models.NewPostID()
	owned := &models.Post{ID: id, UserID: 1, Title: "T", Content: "C"}
	req := &proto.PostRequest{Title: "T2", Content: "C2"}
	storeErr := errors.New("store unavailable")

	tests := []struct {
		name    string
		actor   models.UserID
		setup   func(repo *mocks.MockPostRepository)
		wantErr error
	}{
		{
			name:  "owner updates",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Update(gomock.Any(), id, models.Title("T2"), models.Content("C2")).
					Return(&models.Post{ID: id, UserID: 1, Title: "T2", Content: "C2"}, nil)
			},
		},
		{
			name:  "non-owner is rejected without touching the store",
			actor: 2,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: ErrNotOwner,
		},
		{
			name:  "unknown post",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:  "removed between check and update",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Update(gomock.Any(), id, gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:  "store failure propagates",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, storeErr)
			},
			wantErr: storeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockPostRepository(ctrl)
			tt.setup(repo)

			got, err := NewPostService(repo).Update(context.Background(), tt.actor, id, req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.Title("T2"), got.Title)
			assert.Equal(t, models.UserID(1), got.UserID)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	id := models.NewPostID()
	owned := &models.Post{ID: id, UserID: 1}

	tests := []struct {
		name    string
		actor   models.UserID
		setup   func(repo *mocks.MockPostRepository)
		wantErr error
	}{
		{
			name:  "owner deletes",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Delete(gomock.Any(), id).Return(true, nil)
			},
		},
		{
			name:  "non-owner is rejected",
			actor: 9,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: ErrNotOwner,
		},
		{
			name:  "unknown post never reaches delete",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: ErrPostNotFound,
		},
		{
			name:  "already gone",
			actor: 1,
			setup: func(repo *mocks.MockPostRepository) {
				repo.EXPECT().FindByID(gomock.Any(), id).Return(owned, nil)
				repo.EXPECT().Delete(gomock.Any(), id).Return(false, nil)
			},
			wantErr: ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockPostRepository(ctrl)
			tt.setup(repo)

			err := NewPostService(repo).Delete(context.Background(), tt.actor, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
