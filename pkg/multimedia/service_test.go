package multimedia_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipnote/multimedia/pkg/multimedia"
	"github.com/clipnote/multimedia/pkg/multimedia/repo/memory"
)

func TestServiceCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []multimedia.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []multimedia.Option{},
			expectError: true,
		},
		{
			name: "with repository should succeed",
			options: []multimedia.Option{
				multimedia.WithRepository(memory.New()),
			},
			expectError: false,
		},
		{
			name: "with repository, validator and event sink should succeed",
			options: []multimedia.Option{
				multimedia.WithRepository(memory.New()),
				multimedia.WithValidator(multimedia.NewValidator()),
				multimedia.WithEventSink(multimedia.NewNoopEventSink()),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := multimedia.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) (multimedia.Service, *memory.Repository) {
	t.Helper()

	repo := memory.New()
	svc, err := multimedia.New(
		multimedia.WithRepository(repo),
		multimedia.WithEventSink(multimedia.NewNoopEventSink()),
	)
	require.NoError(t, err)
	require.NotNil(t, svc)

	return svc, repo
}

func seedUser(repo *memory.Repository, username string) *multimedia.User {
	user := &multimedia.User{
		ID:       uuid.New(),
		Username: username,
		Name:     "Test " + username,
	}
	repo.PutUser(user)
	return user
}

func validVideoInput() multimedia.VideoInput {
	return multimedia.VideoInput{
		URL:         "https://videos.example.com/watch?v=abc123",
		Title:       "Test Video",
		Description: "A test video",
	}
}

func TestCategoryOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateCategory_Idempotent", func(t *testing.T) {
		svc, _ := setupTestService(t)

		first, err := svc.CreateCategory(ctx, "Action")
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "Action", first.Name)
		assert.False(t, first.CreatedAt.IsZero())

		second, err := svc.CreateCategory(ctx, "Action")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		categories, err := svc.ListAlphabeticalCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("ListAlphabeticalCategories_Ordering", func(t *testing.T) {
		svc, _ := setupTestService(t)

		for _, name := range []string{"Drama", "Action", "Comedy"} {
			_, err := svc.CreateCategory(ctx, name)
			require.NoError(t, err)
		}

		categories, err := svc.ListAlphabeticalCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 3)
		for i := 0; i < len(categories)-1; i++ {
			assert.LessOrEqual(t, categories[i].Name, categories[i+1].Name)
		}
	})
}

func TestVideoOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateVideo", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)
		require.NotNil(t, video)
		assert.Equal(t, user.ID, video.UserID)
		require.NotNil(t, video.Owner)
		assert.Equal(t, user.ID, video.Owner.ID)
		assert.Equal(t, "Test Video", video.Title)
		assert.False(t, video.CreatedAt.IsZero())
	})

	t.Run("CreateVideo_ValidationFailure", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, multimedia.VideoInput{})
		assert.Nil(t, video)

		var verrs multimedia.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		fields := verrs.ByField()
		assert.Contains(t, fields, "url")
		assert.Contains(t, fields, "title")

		// Storage untouched on validation failure
		videos, err := svc.ListVideos(ctx)
		require.NoError(t, err)
		assert.Empty(t, videos)
	})

	t.Run("CreateVideo_InvalidURL", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		in := validVideoInput()
		in.URL = "not a url"
		_, err := svc.CreateVideo(ctx, user.ID, in)

		var verrs multimedia.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ByField(), "url")
	})

	t.Run("GetVideo_NotFound", func(t *testing.T) {
		svc, _ := setupTestService(t)

		video, err := svc.GetVideo(ctx, uuid.New())
		assert.Nil(t, video)
		assert.ErrorIs(t, err, multimedia.ErrVideoNotFound)
	})

	t.Run("GetUserVideo_HidesForeignOwnership", func(t *testing.T) {
		svc, repo := setupTestService(t)
		alice := seedUser(repo, "alice")
		bob := seedUser(repo, "bob")

		video, err := svc.CreateVideo(ctx, bob.ID, validVideoInput())
		require.NoError(t, err)

		// The video exists, but alice does not own it
		got, err := svc.GetUserVideo(ctx, alice.ID, video.ID)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, multimedia.ErrVideoNotFound)

		// The owner sees it
		got, err = svc.GetUserVideo(ctx, bob.ID, video.ID)
		require.NoError(t, err)
		assert.Equal(t, video.ID, got.ID)
	})

	t.Run("ListUserVideos", func(t *testing.T) {
		svc, repo := setupTestService(t)
		alice := seedUser(repo, "alice")
		bob := seedUser(repo, "bob")

		var aliceIDs []uuid.UUID
		for i := 0; i < 2; i++ {
			in := validVideoInput()
			in.Title = fmt.Sprintf("Alice Video %d", i+1)
			video, err := svc.CreateVideo(ctx, alice.ID, in)
			require.NoError(t, err)
			aliceIDs = append(aliceIDs, video.ID)
		}
		_, err := svc.CreateVideo(ctx, bob.ID, validVideoInput())
		require.NoError(t, err)

		videos, err := svc.ListUserVideos(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, videos, 2)
		for _, video := range videos {
			assert.Contains(t, aliceIDs, video.ID)
			require.NotNil(t, video.Owner)
			assert.Equal(t, alice.ID, video.Owner.ID)
		}
	})

	t.Run("ListVideos_IncludesOwners", func(t *testing.T) {
		svc, repo := setupTestService(t)
		alice := seedUser(repo, "alice")
		bob := seedUser(repo, "bob")

		_, err := svc.CreateVideo(ctx, alice.ID, validVideoInput())
		require.NoError(t, err)
		_, err = svc.CreateVideo(ctx, bob.ID, validVideoInput())
		require.NoError(t, err)

		videos, err := svc.ListVideos(ctx)
		require.NoError(t, err)
		require.Len(t, videos, 2)
		for _, video := range videos {
			require.NotNil(t, video.Owner)
			assert.Equal(t, video.UserID, video.Owner.ID)
		}
	})

	t.Run("UpdateVideo", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		in := validVideoInput()
		in.Title = "Updated Title"
		updated, err := svc.UpdateVideo(ctx, video, in)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)
		assert.Equal(t, user.ID, updated.UserID)
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		stored, err := svc.GetVideo(ctx, video.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", stored.Title)
	})

	t.Run("UpdateVideo_ValidationFailureLeavesRecordUnchanged", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		in := validVideoInput()
		in.Title = ""
		updated, err := svc.UpdateVideo(ctx, video, in)
		assert.Nil(t, updated)

		var verrs multimedia.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ByField(), "title")

		stored, err := svc.GetVideo(ctx, video.ID)
		require.NoError(t, err)
		assert.Equal(t, "Test Video", stored.Title)
		assert.Equal(t, video.UpdatedAt, stored.UpdatedAt)
	})

	t.Run("DeleteVideo", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		deleted, err := svc.DeleteVideo(ctx, video)
		require.NoError(t, err)
		assert.Equal(t, video.ID, deleted.ID)
		assert.Equal(t, video.Title, deleted.Title)

		_, err = svc.GetVideo(ctx, video.ID)
		assert.ErrorIs(t, err, multimedia.ErrVideoNotFound)
	})

	t.Run("DeleteVideo_WithAnnotationsFails", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)
		_, err = svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: 1, Body: "note"})
		require.NoError(t, err)

		_, err = svc.DeleteVideo(ctx, video)
		require.Error(t, err)

		var verr *multimedia.VideoError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "delete", verr.Op)

		// The refusal left the record in place
		_, err = svc.GetVideo(ctx, video.ID)
		assert.NoError(t, err)
	})
}

func TestAnnotationOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("AnnotateVideo", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		annotation, err := svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{
			At:   12,
			Body: "nice shot",
		})
		require.NoError(t, err)
		assert.Greater(t, annotation.ID, int64(0))
		assert.Equal(t, video.ID, annotation.VideoID)
		assert.Equal(t, user.ID, annotation.UserID)
		require.NotNil(t, annotation.Author)
		assert.Equal(t, user.ID, annotation.Author.ID)
	})

	t.Run("AnnotateVideo_ValidationFailure", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		_, err = svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: 3})
		var verrs multimedia.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ByField(), "body")

		_, err = svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: -1, Body: "x"})
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ByField(), "at")

		annotations, err := svc.ListAnnotations(ctx, video)
		require.NoError(t, err)
		assert.Empty(t, annotations)
	})

	t.Run("AnnotateVideo_DanglingVideoID", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		_, err := svc.AnnotateVideo(ctx, user.ID, uuid.New(), multimedia.AnnotationInput{At: 1, Body: "x"})
		require.Error(t, err)

		var aerr *multimedia.AnnotationError
		assert.ErrorAs(t, err, &aerr)
	})

	t.Run("ListAnnotations_OrderedByAtThenID", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		// Insert out of playback order, with a timestamp tie
		late, err := svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: 5, Body: "late"})
		require.NoError(t, err)
		tieFirst, err := svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: 2, Body: "tie first"})
		require.NoError(t, err)
		tieSecond, err := svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{At: 2, Body: "tie second"})
		require.NoError(t, err)
		require.Less(t, tieFirst.ID, tieSecond.ID)

		annotations, err := svc.ListAnnotations(ctx, video)
		require.NoError(t, err)
		require.Len(t, annotations, 3)

		assert.Equal(t, tieFirst.ID, annotations[0].ID)
		assert.Equal(t, tieSecond.ID, annotations[1].ID)
		assert.Equal(t, late.ID, annotations[2].ID)
		for _, annotation := range annotations {
			require.NotNil(t, annotation.Author)
			assert.Equal(t, user.ID, annotation.Author.ID)
		}
	})

	t.Run("ListAnnotations_CappedAt500", func(t *testing.T) {
		svc, repo := setupTestService(t)
		user := seedUser(repo, "alice")

		video, err := svc.CreateVideo(ctx, user.ID, validVideoInput())
		require.NoError(t, err)

		for i := 0; i < 510; i++ {
			_, err := svc.AnnotateVideo(ctx, user.ID, video.ID, multimedia.AnnotationInput{
				At:   i,
				Body: fmt.Sprintf("note %d", i),
			})
			require.NoError(t, err)
		}

		annotations, err := svc.ListAnnotations(ctx, video)
		require.NoError(t, err)
		assert.Len(t, annotations, 500)
		// The cap keeps the earliest timestamps
		assert.Equal(t, 0, annotations[0].At)
		assert.Equal(t, 499, annotations[len(annotations)-1].At)
	})
}

func TestValidationErrorsAreNotStoreErrors(t *testing.T) {
	svc, repo := setupTestService(t)
	user := seedUser(repo, "alice")

	_, err := svc.CreateVideo(context.Background(), user.ID, multimedia.VideoInput{})
	require.Error(t, err)

	var verr *multimedia.VideoError
	assert.False(t, errors.As(err, &verr), "validation failures must not be wrapped as store errors")
}
