package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clipnote/multimedia/pkg/multimedia"
	"github.com/google/uuid"
)

// Repository implements multimedia.Repository using in-memory storage.
// Reads hand out copies so callers cannot mutate stored records.
type Repository struct {
	mu                 sync.RWMutex
	categories         map[uuid.UUID]*multimedia.Category
	categoryIDsByName  map[string]uuid.UUID
	users              map[uuid.UUID]*multimedia.User
	videos             map[uuid.UUID]*multimedia.Video
	annotations        map[int64]*multimedia.Annotation
	annotationsByVideo map[uuid.UUID][]int64
	nextAnnotationID   int64
}

var _ multimedia.Repository = (*Repository)(nil)

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		categories:         make(map[uuid.UUID]*multimedia.Category),
		categoryIDsByName:  make(map[string]uuid.UUID),
		users:              make(map[uuid.UUID]*multimedia.User),
		videos:             make(map[uuid.UUID]*multimedia.Video),
		annotations:        make(map[int64]*multimedia.Annotation),
		annotationsByVideo: make(map[uuid.UUID][]int64),
	}
}

// PutUser seeds a reference user. Users are owned by an external accounts
// system; this seam exists so tests and dev setups can satisfy the owner
// foreign key.
func (r *Repository) PutUser(user *multimedia.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userCopy := *user
	r.users[user.ID] = &userCopy
}

// Category operations

func (r *Repository) CreateCategory(ctx context.Context, category *multimedia.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categoryIDsByName[category.Name]; exists {
		return fmt.Errorf("category name %q already exists", category.Name)
	}

	categoryCopy := *category
	r.categories[category.ID] = &categoryCopy
	r.categoryIDsByName[category.Name] = category.ID

	return nil
}

func (r *Repository) GetCategoryByName(ctx context.Context, name string) (*multimedia.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.categoryIDsByName[name]
	if !exists {
		return nil, multimedia.ErrCategoryNotFound
	}

	categoryCopy := *r.categories[id]
	return &categoryCopy, nil
}

func (r *Repository) ListCategoriesByName(ctx context.Context) ([]*multimedia.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*multimedia.Category, 0, len(r.categories))
	for _, category := range r.categories {
		categoryCopy := *category
		result = append(result, &categoryCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// User operations

func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*multimedia.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, multimedia.ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// Video operations

func (r *Repository) CreateVideo(ctx context.Context, video *multimedia.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Owner must exist, mirroring the database foreign key
	owner, exists := r.users[video.UserID]
	if !exists {
		return multimedia.ErrUserNotFound
	}

	videoCopy := *video
	videoCopy.Owner = nil
	r.videos[video.ID] = &videoCopy

	ownerCopy := *owner
	video.Owner = &ownerCopy

	return nil
}

func (r *Repository) GetVideo(ctx context.Context, id uuid.UUID) (*multimedia.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[id]
	if !exists {
		return nil, multimedia.ErrVideoNotFound
	}

	return r.videoWithOwner(video), nil
}

func (r *Repository) GetVideoOwned(ctx context.Context, userID, id uuid.UUID) (*multimedia.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	video, exists := r.videos[id]
	if !exists || video.UserID != userID {
		// A foreign video and a missing one are indistinguishable here
		return nil, multimedia.ErrVideoNotFound
	}

	return r.videoWithOwner(video), nil
}

func (r *Repository) UpdateVideo(ctx context.Context, video *multimedia.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[video.ID]; !exists {
		return multimedia.ErrVideoNotFound
	}

	videoCopy := *video
	videoCopy.Owner = nil
	r.videos[video.ID] = &videoCopy

	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.videos[id]; !exists {
		return multimedia.ErrVideoNotFound
	}

	// Annotations reference videos restrictively, as the database schema does
	if len(r.annotationsByVideo[id]) > 0 {
		return fmt.Errorf("video %s has dependent annotations", id)
	}

	delete(r.videos, id)
	return nil
}

func (r *Repository) ListVideos(ctx context.Context) ([]*multimedia.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*multimedia.Video, 0, len(r.videos))
	for _, video := range r.videos {
		result = append(result, r.videoWithOwner(video))
	}

	sortVideos(result)
	return result, nil
}

func (r *Repository) ListVideosByOwner(ctx context.Context, userID uuid.UUID) ([]*multimedia.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*multimedia.Video
	for _, video := range r.videos {
		if video.UserID == userID {
			result = append(result, r.videoWithOwner(video))
		}
	}

	sortVideos(result)
	return result, nil
}

// Annotation operations

func (r *Repository) CreateAnnotation(ctx context.Context, annotation *multimedia.Annotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Both foreign keys enforced, as in the database schema
	if _, exists := r.videos[annotation.VideoID]; !exists {
		return multimedia.ErrVideoNotFound
	}
	author, exists := r.users[annotation.UserID]
	if !exists {
		return multimedia.ErrUserNotFound
	}

	r.nextAnnotationID++
	annotation.ID = r.nextAnnotationID

	annotationCopy := *annotation
	annotationCopy.Author = nil
	r.annotations[annotation.ID] = &annotationCopy
	r.annotationsByVideo[annotation.VideoID] = append(r.annotationsByVideo[annotation.VideoID], annotation.ID)

	authorCopy := *author
	annotation.Author = &authorCopy

	return nil
}

func (r *Repository) ListAnnotationsByVideo(ctx context.Context, videoID uuid.UUID, limit int) ([]*multimedia.Annotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.annotationsByVideo[videoID]
	result := make([]*multimedia.Annotation, 0, len(ids))
	for _, id := range ids {
		annotation, exists := r.annotations[id]
		if !exists {
			continue
		}
		annotationCopy := *annotation
		if author, ok := r.users[annotation.UserID]; ok {
			authorCopy := *author
			annotationCopy.Author = &authorCopy
		}
		result = append(result, &annotationCopy)
	}

	// (at, id) ascending; the id tie-break keeps equal timestamps stable
	sort.Slice(result, func(i, j int) bool {
		if result[i].At != result[j].At {
			return result[i].At < result[j].At
		}
		return result[i].ID < result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}

// videoWithOwner copies video and attaches a copy of its owner. Callers
// must hold at least a read lock.
func (r *Repository) videoWithOwner(video *multimedia.Video) *multimedia.Video {
	videoCopy := *video
	if owner, exists := r.users[video.UserID]; exists {
		ownerCopy := *owner
		videoCopy.Owner = &ownerCopy
	}
	return &videoCopy
}

// sortVideos orders by creation time, newest first, with id as a stable
// tie-break.
func sortVideos(videos []*multimedia.Video) {
	sort.Slice(videos, func(i, j int) bool {
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].ID.String() < videos[j].ID.String()
	})
}
