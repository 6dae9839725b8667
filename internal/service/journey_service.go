package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"journeys/internal/model"
	"journeys/internal/repository"
)

// ErrValidation marks input rejected before reaching the store.
var ErrValidation = errors.New("invalid journey")

// JourneyInput represents data required to create or edit a journey.
type JourneyInput struct {
	Name      string
	Icon      model.JourneyIcon
	GoalType  model.GoalType
	Value     int
	Unit      string
	Frequency model.GoalFrequency
}

// JourneyService wraps journey CRUD with edge validation, so invalid
// values never reach the persistence layer.
type JourneyService struct {
	journeys *repository.JourneyRepository
	history  *repository.GoalHistoryRepository
}

func NewJourneyService(journeys *repository.JourneyRepository, history *repository.GoalHistoryRepository) *JourneyService {
	return &JourneyService{journeys: journeys, history: history}
}

func (s *JourneyService) Create(ctx context.Context, input JourneyInput) (*model.Journey, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	journey := model.Journey{
		Name: strings.TrimSpace(input.Name),
		Icon: input.Icon,
		Goal: model.Goal{
			Type:      input.GoalType,
			Value:     input.Value,
			Unit:      strings.TrimSpace(input.Unit),
			Frequency: input.Frequency,
		},
	}

	if err := s.journeys.Create(ctx, &journey); err != nil {
		return nil, err
	}
	return &journey, nil
}

func (s *JourneyService) Get(ctx context.Context, id uint) (*model.Journey, error) {
	return s.journeys.Get(ctx, id)
}

func (s *JourneyService) List(ctx context.Context) ([]model.Journey, error) {
	return s.journeys.GetAll(ctx)
}

// Update edits a journey's name, icon and goal. Progress is carried over,
// clamped to the new target.
func (s *JourneyService) Update(ctx context.Context, id uint, input JourneyInput) (*model.Journey, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	journey, err := s.journeys.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	journey.Name = strings.TrimSpace(input.Name)
	journey.Icon = input.Icon
	journey.Goal.Type = input.GoalType
	journey.Goal.Value = input.Value
	journey.Goal.Unit = strings.TrimSpace(input.Unit)
	journey.Goal.Frequency = input.Frequency
	if journey.Goal.Progress > journey.Goal.Value {
		journey.Goal.Progress = journey.Goal.Value
	}

	if err := s.journeys.Update(ctx, journey); err != nil {
		return nil, err
	}
	return journey, nil
}

// Delete removes a journey and, by cascade, its history.
func (s *JourneyService) Delete(ctx context.Context, id uint) error {
	return s.journeys.Delete(ctx, id)
}

// ResetProgress zeroes one journey on user request. Unlike the periodic
// reset this writes no history entry.
func (s *JourneyService) ResetProgress(ctx context.Context, id uint) error {
	_, err := s.journeys.ResetProgress(ctx, id)
	return err
}

func (s *JourneyService) History(ctx context.Context, id uint) ([]model.GoalHistory, error) {
	return s.history.GetForJourney(ctx, id)
}

func validate(input JourneyInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !input.Icon.Valid() {
		return fmt.Errorf("%w: unknown icon %q", ErrValidation, input.Icon)
	}
	if !input.GoalType.Valid() {
		return fmt.Errorf("%w: unknown goal type %q", ErrValidation, input.GoalType)
	}
	if !input.Frequency.Valid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrValidation, input.Frequency)
	}
	if input.Value <= 0 || input.Value > model.MaxGoalValue {
		return fmt.Errorf("%w: goal value must be between 1 and %d", ErrValidation, model.MaxGoalValue)
	}
	if strings.TrimSpace(input.Unit) == "" {
		return fmt.Errorf("%w: unit is required", ErrValidation)
	}
	return nil
}
