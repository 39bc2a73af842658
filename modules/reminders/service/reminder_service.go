package service

import (
	"context"
	"strings"

	"github.com/andreypavlenko/jobber/modules/reminders/model"
)

// ReminderRepository is the slice of modules/reminders/repository.ReminderRepository
// this service needs.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *model.Reminder) error
	ListByUser(ctx context.Context, userID string) ([]*model.Reminder, error)
	Update(ctx context.Context, reminder *model.Reminder) error
	GetByID(ctx context.Context, userID, reminderID string) (*model.Reminder, error)
}

type ReminderService struct {
	repo ReminderRepository
}

func NewReminderService(repo ReminderRepository) *ReminderService {
	return &ReminderService{repo: repo}
}

func (s *ReminderService) Create(ctx context.Context, userID string, req *model.CreateReminderRequest) (*model.ReminderDTO, error) {
	message := strings.TrimSpace(req.Message)
	reminder := &model.Reminder{
		UserID:        userID,
		ApplicationID: req.ApplicationID,
		StageID:       req.StageID,
		RemindAt:      req.RemindAt,
		Message:       message,
	}
	if err := s.repo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder.ToDTO(), nil
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]*model.ReminderDTO, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.ReminderDTO, len(reminders))
	for i, r := range reminders {
		dtos[i] = r.ToDTO()
	}
	return dtos, nil
}

func (s *ReminderService) Update(ctx context.Context, userID, reminderID string, req *model.UpdateReminderRequest) (*model.ReminderDTO, error) {
	reminder, err := s.repo.GetByID(ctx, userID, reminderID)
	if err != nil {
		return nil, err
	}
	if req.IsDone != nil {
		reminder.IsDone = *req.IsDone
	}
	if err := s.repo.Update(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder.ToDTO(), nil
}
