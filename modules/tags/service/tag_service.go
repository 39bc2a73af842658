package service

import (
	"context"
	"strings"

	"github.com/andreypavlenko/jobber/modules/tags/model"
)

// TagRepository is the slice of modules/tags/repository.TagRepository this
// service needs.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	List(ctx context.Context, userID string) ([]*model.Tag, error)
	Delete(ctx context.Context, userID, tagID string) error
	AddRelation(ctx context.Context, rel *model.TagRelation) error
	RemoveRelation(ctx context.Context, tagID, entityID string) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.Tag, error)
}

type TagService struct {
	repo TagRepository
}

func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

func (s *TagService) Create(ctx context.Context, userID string, req *model.CreateTagRequest) (*model.TagDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.ErrTagNameRequired
	}

	tag := &model.Tag{
		UserID: userID,
		Name:   name,
		Color:  req.Color,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag.ToDTO(), nil
}

func (s *TagService) List(ctx context.Context, userID string) ([]*model.TagDTO, error) {
	tags, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.TagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = t.ToDTO()
	}
	return dtos, nil
}

func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	return s.repo.Delete(ctx, userID, tagID)
}

func (s *TagService) Attach(ctx context.Context, tagID, entityType, entityID string) error {
	return s.repo.AddRelation(ctx, &model.TagRelation{TagID: tagID, EntityType: entityType, EntityID: entityID})
}

func (s *TagService) Detach(ctx context.Context, tagID, entityID string) error {
	return s.repo.RemoveRelation(ctx, tagID, entityID)
}

func (s *TagService) ListByEntity(ctx context.Context, entityType, entityID string) ([]*model.TagDTO, error) {
	tags, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.TagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = t.ToDTO()
	}
	return dtos, nil
}
